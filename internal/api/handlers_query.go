package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type queryRequest struct {
	Question     string `json:"question"`
	DocumentID   string `json:"document_id,omitempty"`
	MaxCitations int    `json:"max_citations,omitempty"`
}

// handleQuery answers a question from indexed content with citations.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}
	if req.MaxCitations <= 0 {
		req.MaxCitations = s.cfg.DefaultMaxCitations
	}

	answer, err := s.svc.Query(r.Context(), req.Question, req.DocumentID, req.MaxCitations)
	if err != nil {
		jsonError(w, "query failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(answer)
}
