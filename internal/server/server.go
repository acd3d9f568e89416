package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"interview-chat/internal/llm"
	"interview-chat/internal/session"
	"interview-chat/internal/storage"
)

// Server exposes the chat API consumed by the browser UI. It owns no
// conversation state itself; everything lives in the session store.
type Server struct {
	store     *session.Store
	llm       llm.Client
	recorder  storage.Recorder
	dev       bool
	staticDir string
	port      int
	server    *http.Server
	startTime time.Time
}

func New(store *session.Store, client llm.Client, recorder storage.Recorder, port int, dev bool, staticDir string) *Server {
	return &Server{
		store:     store,
		llm:       client,
		recorder:  recorder,
		dev:       dev,
		staticDir: staticDir,
		port:      port,
		startTime: time.Now(),
	}
}

// Start runs the HTTP server and blocks until Stop or failure.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/generate", s.handleGenerate) // Один ход интервью
	mux.HandleFunc("/api/status", s.handleStatus)     // Health check endpoint
	mux.HandleFunc("/api/stats", s.handleStats)       // Дневная статистика по журналу ходов
	if s.staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	}

	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: withRequestLog(mux),
		// The completion call can take a while; keep the write timeout
		// well above typical provider latency.
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("🌐 Starting interview web server on http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
