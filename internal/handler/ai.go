package handler

import (
	"context"
	"log"
	"net/http"

	"floppahub-rest-api/internal/upstream/chat"
	"floppahub-rest-api/pkg/apierror"
	"floppahub-rest-api/pkg/response"
)

// Completer produces a chat completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatHandler handles chat-proxy HTTP requests.
type ChatHandler struct {
	completer Completer
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(completer Completer) *ChatHandler {
	return &ChatHandler{completer: completer}
}

// Complete handles GET /ai/gpt4?input=. Backend failures degrade to the
// fixed fallback text so chat-bot callers always get something to relay.
func (h *ChatHandler) Complete(w http.ResponseWriter, r *http.Request) {
	input := r.URL.Query().Get("input")
	if input == "" {
		response.Error(w, apierror.BadRequest("input is required"))
		return
	}

	text, err := h.completer.Complete(r.Context(), input)
	if err != nil {
		log.Printf("[ChatHandler] completion failed: %v", err)
		text = chat.FallbackText
	}

	response.OK(w, map[string]string{"text": text})
}
