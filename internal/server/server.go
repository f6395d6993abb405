// Package server provides the HTTP REST API for the content engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aetherium/content-engine/internal/config"
	"github.com/aetherium/content-engine/internal/db"
	"github.com/aetherium/content-engine/internal/extract"
	"github.com/aetherium/content-engine/internal/llm"
	"github.com/aetherium/content-engine/internal/pipeline"
	"github.com/aetherium/content-engine/internal/trends"
	"github.com/aetherium/content-engine/internal/types"
)

// Runner executes the generation pipeline for one request.
type Runner interface {
	Run(ctx context.Context, req pipeline.Request) (*types.GenerateResult, error)
}

// Store is the persistence surface the handlers write to and read from.
type Store interface {
	GetPersona(ctx context.Context, userID string) (*types.Persona, error)
	UpsertPersona(ctx context.Context, userID, brandVoice, targetAudience, contentGoal string) (*types.Persona, error)
	InsertExemplar(ctx context.Context, userID, platform, content string, embedding []float32) (*types.Exemplar, error)
}

// Embedder computes content embeddings for the feedback endpoint.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Server represents the HTTP server and its long-lived collaborators.
type Server struct {
	httpServer *http.Server
	database   *db.DB
	llmClient  llm.Client
	store      Store
	embedder   Embedder
	runner     Runner
	auth       *Authenticator
}

// New creates a server from configuration: it connects the database,
// builds the LLM client for the configured provider, and wires the
// pipeline. All clients are constructed once and shared by every request.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	llmClient, err := newLLMClient(ctx, cfg)
	if err != nil {
		database.Close()
		return nil, err
	}

	var extractOpts []extract.Option
	if cfg.UseBrowser {
		extractOpts = append(extractOpts, extract.WithBrowserFallback())
	}

	runner := pipeline.New(pipeline.Config{
		LLM:         llmClient,
		Store:       database,
		Trends:      trends.NewClient(cfg.SerperAPIKey),
		Extractor:   extract.New(extractOpts...),
		CallTimeout: cfg.CallTimeout,
	})

	s := newServer(cfg.Port, database, llmClient, database, llmClient, runner, NewAuthenticator(cfg.JWTSecret))
	return s, nil
}

// newServer wires the router and middleware. Split from New so tests can
// supply stub collaborators.
func newServer(port int, database *db.DB, llmClient llm.Client, store Store, embedder Embedder, runner Runner, auth *Authenticator) *Server {
	s := &Server{
		database:  database,
		llmClient: llmClient,
		store:     store,
		embedder:  embedder,
		runner:    runner,
		auth:      auth,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/v1/persona/{userId}", s.handleGetPersona)
	mux.HandleFunc("POST /api/v1/persona", s.handleSavePersona)
	mux.HandleFunc("POST /api/v1/feedback", s.handleFeedback)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:        fmt.Sprintf(":%d", port),
		Handler:     s.withLogging(s.withCORS(s.withAuth(mux))),
		ReadTimeout: 30 * time.Second,
		// Pipeline runs wait on several chained generation calls.
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		client, err := llm.NewOpenAIClient(llm.DefaultOpenAIConfig(), cfg.OpenAIAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return client, nil
	default:
		client, err := llm.NewGeminiClient(ctx, llm.DefaultGeminiConfig(), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	}
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response with an optional details
// string sourced from the underlying error message.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message, details string) {
	s.jsonResponse(w, status, ErrorBody{Error: message, Details: details})
}
