package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymlog-backend/internal/config"
	"gymlog-backend/internal/handlers"
	"gymlog-backend/internal/router"
	"gymlog-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Gymlog Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("✗ Invalid configuration: %v", err)
	}
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Model Provider ────
	var provider services.Provider
	apiKey, credErr := cfg.Credential()
	if credErr != nil {
		// Keep serving /health; /chat reports the missing key per request.
		log.Printf("⚠ %v; /chat will return 500 until it is set", credErr)
	} else {
		switch cfg.Provider {
		case config.ProviderGemini:
			gemini, err := services.NewGeminiProvider(context.Background(), apiKey, cfg.GeminiModel)
			if err != nil {
				log.Fatalf("✗ Gemini client initialization failed: %v", err)
			}
			defer gemini.Close()
			provider = gemini
			log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
		default:
			provider = services.NewOpenAIProvider(apiKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
			log.Printf("✓ OpenAI client initialized (%s)", cfg.OpenAIModel)
		}
	}

	// ──── Step 3: Initialize Services & Handlers ────
	chatService := services.NewChatService(provider, services.ChatOptions{
		CredentialEnv: cfg.CredentialEnv(),
		Configured:    credErr == nil,
		Timeout:       cfg.ProviderTimeout,
	})
	chatHandler := handlers.NewChatHandler(chatService)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, cfg.ChatMode, cfg.MaxBodyBytes)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ProviderTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Gymlog Backend ready on http://localhost:%s (mode: %s)", cfg.Port, cfg.ChatMode)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
