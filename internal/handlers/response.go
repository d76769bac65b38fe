package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"gymlog-backend/internal/middleware"
	"gymlog-backend/internal/models"
	"gymlog-backend/internal/services"
	"gymlog-backend/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail})
}

// handleServiceError maps a ChatService error to a response. Causes are
// logged and never written to the client.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeDetail(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}

	var svcErr *services.Error
	if !errors.As(err, &svcErr) {
		log.Printf("[%s] unexpected error: %v", requestID, err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	switch svcErr.Kind {
	case services.KindValidation:
		var verrs *validation.Errors
		if errors.As(err, &verrs) {
			writeJSON(w, http.StatusUnprocessableEntity, models.ValidationErrorResponse{Detail: verrs.Fields})
			return
		}
		writeDetail(w, http.StatusUnprocessableEntity, svcErr.Message)
	case services.KindConfig:
		log.Printf("[%s] configuration error: %s", requestID, svcErr.Message)
		writeDetail(w, http.StatusInternalServerError, svcErr.Message)
	case services.KindProvider:
		log.Printf("[%s] %v", requestID, svcErr)
		writeDetail(w, http.StatusInternalServerError, svcErr.Message)
	default:
		log.Printf("[%s] unexpected error: %v", requestID, err)
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
