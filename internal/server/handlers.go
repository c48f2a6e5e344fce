package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dotcommander/cryptobot/internal/agent"
	"github.com/dotcommander/cryptobot/internal/chat"
)

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Author  string `json:"author,omitempty"`
	Message string `json:"message"`
}

// ChatResponse is the reply to a ChatRequest.
type ChatResponse struct {
	ID       string `json:"id"`
	Response string `json:"response"`
}

// ErrorResponse is returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		s.writeError(w, "message is required", http.StatusBadRequest)
		return
	}
	if req.Author == "" {
		req.Author = "api"
	}

	msg := chat.NewMessage(req.Author, req.Message)
	var reply string
	sent := false
	h := chat.NewHandler(s.agent, s.pool, chat.SenderFunc(func(_ context.Context, text string) error {
		reply, sent = text, true
		return nil
	}), s.opts...)

	if err := h.OnMessage(r.Context(), msg); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("message_id", msg.ID.String()).Msg("chat error")
		s.writeError(w, agent.Describe(err).ReasonText(), statusFor(err))
		return
	}
	if !sent {
		s.writeError(w, "no reply", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, ChatResponse{ID: msg.ID.String(), Response: reply})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusBadGateway
}

func (s *Server) writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		s.logger.Error().Err(err).Msg("write error response")
	}
}
