// Package http exposes the chat pipeline over a JSON API plus a small
// embedded browser UI.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"portfoliochat/internal/domain/entities"
	"portfoliochat/internal/domain/usecases"
)

// sessionHeader selects the conversation a chat request belongs to. When a
// client sends none, the server assigns one and returns it in the response.
const sessionHeader = "X-Session-ID"

// Server is the HTTP server for the chat API.
type Server struct {
	chat      *usecases.ChatUseCase
	recordsMu sync.RWMutex
	records   []entities.PortfolioRecord
	sessions  *sessionRegistry
	notReady  error
	addr      string
}

// SetRecords replaces the portfolio rows, used after a reindex.
func (s *Server) SetRecords(records []entities.PortfolioRecord) {
	s.recordsMu.Lock()
	s.records = records
	s.recordsMu.Unlock()
}

// NewServer creates a ready server.
func NewServer(chat *usecases.ChatUseCase, records []entities.PortfolioRecord, addr string) *Server {
	return &Server{
		chat:     chat,
		records:  records,
		sessions: newSessionRegistry(),
		addr:     addr,
	}
}

// NewNotReadyServer creates a server whose chat endpoint fails fast with
// the given cause. Liveness and portfolio endpoints still work, so an
// operator can see what is wrong instead of a connection refused.
func NewNotReadyServer(cause error, records []entities.PortfolioRecord, addr string) *Server {
	return &Server{
		records:  records,
		sessions: newSessionRegistry(),
		notReady: cause,
		addr:     addr,
	}
}

// Handler builds the routing table. Split out from Start for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/portfolio", s.handlePortfolio)
	mux.HandleFunc("/session/clear", s.handleClearSession)
	mux.HandleFunc("/ui", s.handleUI)
	return corsMiddleware(loggingMiddleware(mux))
}

// Start runs the HTTP server until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 300 * time.Second, // model calls can be slow
	}

	log.Printf("[INFO] RealEstateGPT API starting on %s", s.addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleRoot returns a liveness message.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "RealEstateGPT API is running"})
}

// handleChat answers one question within the caller's session.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "question is required"})
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	w.Header().Set(sessionHeader, sessionID)

	if s.notReady != nil {
		log.Printf("[ERROR] chat rejected, index not ready: %v", s.notReady)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "index not ready"})
		return
	}

	log.Printf("[INFO] received question (session %s): %s", sessionID, req.Question)

	sess := s.sessions.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	answer, sources, err := s.chat.Answer(r.Context(), req.Question, &sess.history)
	if err != nil {
		// The wrapped cause may mention hosts or models but never keys;
		// clients still only get a generic failure.
		log.Printf("[ERROR] answering %q failed: %v", req.Question, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: failureMessage(err)})
		return
	}

	log.Printf("[INFO] answered with %d context documents", len(sources))
	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

// handlePortfolio exposes the loaded rows for display.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	type row struct {
		ID           int     `json:"id"`
		Address      string  `json:"address"`
		Type         string  `json:"type"`
		Value        string  `json:"value"`
		VacancyRate  float64 `json:"vacancy_rate"`
		AnnualIncome string  `json:"annual_income"`
		EndLease     string  `json:"end_lease"`
	}
	s.recordsMu.RLock()
	defer s.recordsMu.RUnlock()
	rows := make([]row, len(s.records))
	for i, rec := range s.records {
		rows[i] = row{
			ID:           rec.ID,
			Address:      rec.Address,
			Type:         rec.Type,
			Value:        rec.Value,
			VacancyRate:  rec.VacancyRate,
			AnnualIncome: rec.AnnualIncome,
			EndLease:     rec.EndLease,
		}
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleClearSession resets the caller's conversation.
func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if id := r.Header.Get(sessionHeader); id != "" {
		s.sessions.clear(id)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// failureMessage maps the error taxonomy to client-safe text.
func failureMessage(err error) string {
	var chatErr *entities.ChatError
	var embErr *entities.EmbeddingError
	switch {
	case errors.Is(err, entities.ErrIndexUnavailable):
		return "index not ready"
	case errors.As(err, &chatErr):
		return "chat provider failed"
	case errors.As(err, &embErr):
		return "embedding provider failed"
	default:
		return "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+sessionHeader)
		w.Header().Set("Access-Control-Expose-Headers", sessionHeader)
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
