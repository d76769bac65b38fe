package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gymlog-backend/internal/models"
	"gymlog-backend/internal/services"
)

// ─── JSON Response Tests ───

func TestJSONResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusOK, map[string]interface{}{
		"message": "API running",
	})

	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]interface{}
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result["message"] != "API running" {
		t.Errorf("Expected message 'API running', got %v", result["message"])
	}
}

func TestErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDetail(rr, http.StatusInternalServerError, "OpenAI request failed")

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}

	var result models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Detail != "OpenAI request failed" {
		t.Errorf("Expected detail 'OpenAI request failed', got %q", result.Detail)
	}
}

func TestHandleServiceError_ValidationWithoutFields(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)

	handleServiceError(rr, req, services.ValidationFailed(errors.New("read error")))

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected status 422, got %d", rr.Code)
	}
}
