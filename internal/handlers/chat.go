package handlers

import (
	"context"
	"net/http"

	"gymlog-backend/internal/models"
	"gymlog-backend/internal/services"
	"gymlog-backend/internal/validation"
)

type chatService interface {
	LogRows(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
	Reply(ctx context.Context, message string) (models.ReplyResponse, error)
}

type ChatHandler struct {
	chatService chatService
}

func NewChatHandler(chatService chatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Rows turns a message into new workout rows, using the rows the caller
// already has as context.
func (h *ChatHandler) Rows(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeChatRequest(r.Body)
	if err != nil {
		handleServiceError(w, r, services.ValidationFailed(err))
		return
	}

	resp, err := h.chatService.LogRows(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	if resp.Rows == nil {
		resp.Rows = []models.WorkoutRow{}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Reply answers a message with the model's free text.
func (h *ChatHandler) Reply(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeChatRequest(r.Body)
	if err != nil {
		handleServiceError(w, r, services.ValidationFailed(err))
		return
	}

	resp, err := h.chatService.Reply(r.Context(), req.Message)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
