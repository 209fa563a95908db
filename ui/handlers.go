package ui

import (
	"encoding/json"
	"net/http"

	"github.com/anushkasingh-09/excel-sheet-reader-chatbot/domain/sheet"
)

// askRequest is the POST /ask body.
type askRequest struct {
	Question string `json:"question"`
}

// askResponse mirrors the query interface result, plus the rendered forms
// the browser shell consumes.
type askResponse struct {
	Question    string           `json:"question"`
	SQL         string           `json:"sql_query"`
	Success     bool             `json:"success"`
	ResultsJSON []map[string]any `json:"results_json"`
	ResultsHTML string           `json:"results_html"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		s.logger.Error("[Server] Template error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "No question provided")
		return
	}

	answer := s.engine.Ask(r.Context(), req.Question)

	resp := askResponse{
		Question:    answer.Question,
		SQL:         answer.SQL,
		Success:     answer.Success,
		ResultsJSON: []map[string]any{},
		ResultsHTML: "<p>No results found.</p>",
	}
	if answer.Success && !answer.Results.Empty() {
		resp.ResultsJSON = answer.Results.Rows
		resp.ResultsHTML = renderResultsHTML(answer.Results)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"columns": s.engine.Columns()})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.TableStats(r.Context(), s.table, s.schema)
	if err != nil {
		s.logger.Error("[Server] Stats failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleSampleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"questions": sheet.SampleQuestions})
}
