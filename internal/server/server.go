package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"todo-bot/internal/logger"
)

const homeBody = "✅ Telegram To-Do Bot running via webhook."

// UpdateHandler consumes one decoded Telegram update.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update) error
}

// Server exposes the liveness endpoint and the webhook intake endpoint.
type Server struct {
	http    *http.Server
	handler UpdateHandler
}

func New(addr string, handler UpdateHandler) *Server {
	s := &Server{handler: handler}

	r := chi.NewRouter()
	r.Get("/", s.home)
	r.Post("/webhook", s.webhook)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routing handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) home(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(homeBody))
}

// webhook translates the Telegram payload into an update and hands it to the
// bot. Any failure is logged and collapsed into a generic server error; the
// platform retries delivery per its own policy.
func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	logger.HTTPRequestInfo(r, "webhook received")

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Error("webhook decode failed", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := s.handler.HandleUpdate(r.Context(), update); err != nil {
		logger.Error("webhook processing failed", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
