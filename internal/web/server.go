package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"gapscan/internal/store"
	"gapscan/pkg/model"
)

//go:embed templates
var templateFiles embed.FS

// Analyzer runs the gap-day pipeline for one ticker.
type Analyzer interface {
	FindGapDays(ctx context.Context, ticker string) (*model.ResultTable, error)
}

// Server serves the ticker form, the HTML results table, and the
// spreadsheet download.
type Server struct {
	analyzer  Analyzer
	store     store.Store
	templates *template.Template
	srv       *http.Server
}

// NewServer creates a new web server
func NewServer(a Analyzer, st store.Store) (*Server, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	return &Server{
		analyzer:  a,
		store:     st,
		templates: tmpl,
	}, nil
}

// Start starts the web server on the specified port
func (s *Server) Start(port int) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/download/", s.handleDownload)
	mux.HandleFunc("/api/analyze", s.handleAPIAnalyze)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting gapscan web UI at http://localhost:%d", port)
	log.Printf("Press Ctrl+C to stop")

	return s.srv.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv != nil {
		return s.srv.Shutdown(ctx)
	}
	return nil
}
