package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/credana/delinq-engine/pkg/apperrors"
	"github.com/credana/delinq-engine/pkg/models"
	"github.com/credana/delinq-engine/pkg/services"
)

// SendMessageRequest for POST /api/sessions/{sid}/message
type SendMessageRequest struct {
	Message string `json:"message"`
}

// SessionResponse for session creation.
type SessionResponse struct {
	SessionID string                `json:"session_id"`
	CreatedAt string                `json:"created_at"`
	Messages  []ChatMessageResponse `json:"messages"`
}

// ChatMessageResponse is one turn in a history payload.
type ChatMessageResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ChatHistoryResponse for GET /api/sessions/{sid}/history
type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
	Total    int                   `json:"total"`
}

// ChatHandler exposes the conversation pipeline over HTTP.
type ChatHandler struct {
	sessions    *services.SessionManager
	chatService services.ChatService
	logger      *zap.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(sessions *services.SessionManager, chatService services.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		sessions:    sessions,
		chatService: chatService,
		logger:      logger,
	}
}

// RegisterRoutes registers the chat handler's routes on the given mux.
func (h *ChatHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.CreateSession)
	mux.HandleFunc("DELETE /api/sessions/{sid}", h.DestroySession)
	mux.HandleFunc("POST /api/sessions/{sid}/message", h.SendMessage)
	mux.HandleFunc("GET /api/sessions/{sid}/history", h.GetHistory)
	mux.HandleFunc("DELETE /api/sessions/{sid}/history", h.ResetHistory)
}

// CreateSession handles POST /api/sessions. The new session comes back with
// its seeded welcome turn.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Create(r.Context())
	if err != nil {
		h.logger.Error("Failed to create session", zap.Error(err))
		if err := ErrorResponse(w, http.StatusInternalServerError, "session_create_failed", "Failed to create session"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	response := SessionResponse{
		SessionID: session.ID.String(),
		CreatedAt: session.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		Messages:  toMessageResponses(session.History()),
	}
	if err := WriteJSON(w, http.StatusCreated, response); err != nil {
		h.logger.Error("Failed to encode session response", zap.Error(err))
	}
}

// DestroySession handles DELETE /api/sessions/{sid}.
func (h *ChatHandler) DestroySession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	if err := h.sessions.Destroy(sessionID); err != nil {
		h.writeSessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendMessage handles POST /api/sessions/{sid}/message.
// This endpoint uses Server-Sent Events (SSE) to stream the response.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Message == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_message", "Message is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.logger.Error("SSE not supported")
		if err := ErrorResponse(w, http.StatusInternalServerError, "sse_unsupported", "SSE not supported"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	eventChan := make(chan models.ChatEvent, 100)

	// Start the turn in the background; the service writes events and the
	// handler owns the channel.
	go func() {
		defer close(eventChan)
		if err := h.chatService.HandleTurn(r.Context(), sessionID, req.Message, eventChan); err != nil {
			h.logger.Error("Chat turn error",
				zap.String("session_id", sessionID.String()),
				zap.Error(err))
			eventChan <- models.NewErrorEvent(err.Error())
		}
	}()

	// Stream events to client
	for event := range eventChan {
		data, err := json.Marshal(event)
		if err != nil {
			h.logger.Error("Failed to marshal event", zap.Error(err))
			continue
		}

		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()

		// Stop on done or error
		if event.Type == models.ChatEventDone || event.Type == models.ChatEventError {
			break
		}
	}
}

// GetHistory handles GET /api/sessions/{sid}/history.
func (h *ChatHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Get(sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	messages := toMessageResponses(session.History())
	response := ChatHistoryResponse{
		Messages: messages,
		Total:    len(messages),
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode history response", zap.Error(err))
	}
}

// ResetHistory handles DELETE /api/sessions/{sid}/history. The session
// survives with a fresh insight report and the seeded welcome turn.
func (h *ChatHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.parseSessionID(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Reset(r.Context(), sessionID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	messages := toMessageResponses(session.History())
	response := ChatHistoryResponse{
		Messages: messages,
		Total:    len(messages),
	}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode reset response", zap.Error(err))
	}
}

func (h *ChatHandler) parseSessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sessionID, err := uuid.Parse(r.PathValue("sid"))
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_session_id", "Session ID must be a UUID"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return uuid.Nil, false
	}
	return sessionID, true
}

func (h *ChatHandler) writeSessionError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound):
		status = http.StatusNotFound
		code = "session_not_found"
	case errors.Is(err, apperrors.ErrSessionBusy):
		status = http.StatusConflict
		code = "session_busy"
	}
	if writeErr := ErrorResponse(w, status, code, err.Error()); writeErr != nil {
		h.logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}

func toMessageResponses(messages []models.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, len(messages))
	for i, msg := range messages {
		out[i] = ChatMessageResponse{
			ID:        msg.ID.String(),
			SessionID: msg.SessionID.String(),
			Role:      string(msg.Role),
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}
	return out
}
