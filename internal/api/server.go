package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/docanchor/docanchor/internal/config"
	"github.com/docanchor/docanchor/internal/filestore"
	"github.com/docanchor/docanchor/internal/pipeline"
	"github.com/docanchor/docanchor/internal/rag"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server.
type Server struct {
	router       chi.Router
	svc          *rag.Service
	orchestrator *pipeline.Orchestrator
	policy       *rag.SingleDocumentPolicy
	files        *filestore.Store
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server. policy may be nil when
// multi-document mode is enabled.
func NewServer(svc *rag.Service, orch *pipeline.Orchestrator, policy *rag.SingleDocumentPolicy, files *filestore.Store, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		svc:          svc,
		orchestrator: orch,
		policy:       policy,
		files:        files,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Post("/api/upload", s.handleUpload)
	r.Post("/api/upload/async", s.handleUploadAsync)
	r.Get("/api/jobs/{jobID}", s.handleJobStatus)

	r.Post("/api/query", s.handleQuery)

	r.Get("/api/documents", s.handleListDocuments)
	r.Get("/api/documents/{docID}", s.handleGetDocument)
	r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}
