package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"gapscan/internal/store"
)

type indexView struct {
	Error string
}

type resultsView struct {
	Ticker  string
	Columns []string
	Rows    [][]string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.renderTemplate(w, "index.html", indexView{})
}

// handleAnalyze runs the pipeline for the submitted ticker and renders
// the results table.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(r.FormValue("ticker")))
	if ticker == "" {
		s.renderTemplate(w, "index.html", indexView{Error: "Please enter a ticker symbol."})
		return
	}

	table, err := s.analyzer.FindGapDays(r.Context(), ticker)
	if err != nil {
		log.Printf("[%s] analyze failed: %v", ticker, err)
		s.renderTemplate(w, "index.html", indexView{
			Error: fmt.Sprintf("Could not fetch data for %s.", ticker),
		})
		return
	}

	if len(table.Records) == 0 {
		s.renderTemplate(w, "index.html", indexView{
			Error: fmt.Sprintf("No significant gap ups found for %s.", ticker),
		})
		return
	}

	if err := s.store.Put(r.Context(), table); err != nil {
		log.Printf("[%s] storing results: %v", ticker, err)
	}

	view := resultsView{
		Ticker:  ticker,
		Columns: resultColumns,
		Rows:    make([][]string, 0, len(table.Records)),
	}
	for i := range table.Records {
		view.Rows = append(view.Rows, recordRow(&table.Records[i]))
	}

	s.renderTemplate(w, "results.html", view)
}

// handleDownload serves the stored result table as a spreadsheet.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimPrefix(r.URL.Path, "/download/"))
	if ticker == "" || strings.Contains(ticker, "/") {
		http.NotFound(w, r)
		return
	}

	table, err := s.store.Get(r.Context(), ticker)
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Data not found for this ticker.", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[%s] download failed: %v", ticker, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s_gap_up_analysis.xlsx"`, ticker))

	if err := writeXLSX(w, table); err != nil {
		log.Printf("[%s] writing spreadsheet: %v", ticker, err)
	}
}

// handleAPIAnalyze returns the raw result table as JSON.
func (s *Server) handleAPIAnalyze(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("ticker")))
	if ticker == "" {
		http.Error(w, "ticker parameter is required", http.StatusBadRequest)
		return
	}

	table, err := s.analyzer.FindGapDays(r.Context(), ticker)
	if err != nil {
		log.Printf("[%s] analyze failed: %v", ticker, err)
		http.Error(w, "could not fetch data", http.StatusBadGateway)
		return
	}

	if err := s.store.Put(r.Context(), table); err != nil {
		log.Printf("[%s] storing results: %v", ticker, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(table)
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("rendering %s: %v", name, err)
	}
}
