package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xiuxiu06/leos-kitchen/internal/application/chat"
	"github.com/xiuxiu06/leos-kitchen/internal/infrastructure/http/session"
	"go.uber.org/zap"
)

// ChatAPIHandlers handles kitchen assistant chat requests
type ChatAPIHandlers struct {
	chatService *chat.Service
	sessions    *session.Store
	logger      *zap.Logger
}

// NewChatAPIHandlers creates a new chat API handlers instance
func NewChatAPIHandlers(
	chatService *chat.Service,
	sessions *session.Store,
	logger *zap.Logger,
) *ChatAPIHandlers {
	return &ChatAPIHandlers{
		chatService: chatService,
		sessions:    sessions,
		logger:      logger,
	}
}

// ChatRequest is the POST body for a chat message
type ChatRequest struct {
	Message string `json:"message"`
}

// Stream handles POST /api/v1/chat. The reply is delivered as
// server-sent events, one delta per event, terminated by [DONE].
func (h *ChatAPIHandlers) Stream(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid JSON payload")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, APIResponse{
			Success: false,
			Error:   "Streaming unsupported",
		})
		return
	}

	sess := h.sessions.Load(r)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	headerSent := false
	err := h.chatService.Stream(r.Context(), sess, req.Message, func(delta string) error {
		if !headerSent {
			w.WriteHeader(http.StatusOK)
			headerSent = true
		}
		payload, err := json.Marshal(map[string]string{"delta": delta})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		if !headerSent {
			// Nothing streamed yet, fall back to a JSON error
			w.Header().Del("Content-Type")
			w.Header().Set("Content-Type", "application/json")
			writeAppError(w, h.logger, err)
			return
		}
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", "The assistant is unavailable right now")
		flusher.Flush()
		return
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
}

// History handles GET /api/v1/chat/history
func (h *ChatAPIHandlers) History(w http.ResponseWriter, r *http.Request) {
	messages, err := h.chatService.History(h.sessions.Load(r))
	if err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: messages})
}

// Reset handles DELETE /api/v1/chat
func (h *ChatAPIHandlers) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.chatService.Reset(h.sessions.Load(r)); err != nil {
		writeAppError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Message: "Conversation cleared"})
}
