package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"interview-chat/internal/config"
	"interview-chat/internal/llm"
	"interview-chat/internal/scheduler"
	"interview-chat/internal/server"
	"interview-chat/internal/session"
	"interview-chat/internal/storage"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg := config.New()

	llmClient, err := llm.NewFactory(cfg).CreateClient(string(cfg.LLMProvider), cfg.OpenAIModel)
	if err != nil {
		log.Fatalf("failed to create llm client: %v", err)
	}

	var rec storage.Recorder
	if cfg.TurnLogPath != "" {
		fr, err := storage.NewFileRecorder(cfg.TurnLogPath)
		if err != nil {
			log.Printf("failed to init turn recorder: %v", err)
		} else {
			rec = fr
		}
	}

	store := session.NewStore(cfg.MaxMessages)

	sweeper := scheduler.New(store, cfg.SweepInterval, cfg.SessionIdleTimeout)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("failed to start session sweep: %v", err)
	}

	srv := server.New(store, llmClient, rec, cfg.Port, cfg.IsDevelopment(), cfg.StaticDir)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down")
	if err := srv.Stop(); err != nil {
		log.Printf("http server shutdown: %v", err)
	}
	sweeper.Stop()
}
