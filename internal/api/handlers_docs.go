package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListDocuments lists indexed documents with their chunk counts.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	ids, err := s.svc.ListDocuments(r.Context())
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}

	docs := make([]map[string]any, 0, len(ids))
	for _, id := range ids {
		count, err := s.svc.ChunkCount(r.Context(), id)
		if err != nil {
			jsonError(w, "failed to count chunks: "+err.Error(), http.StatusInternalServerError)
			return
		}
		docs = append(docs, map[string]any{
			"document_id": id,
			"chunk_count": count,
			"stored_file": s.files.Find(id),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs, "count": len(docs)})
}

// handleGetDocument reports index state for one document.
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	count, err := s.svc.ChunkCount(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to count chunks: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if count == 0 {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"document_id": docID,
		"chunk_count": count,
		"stored_file": s.files.Find(docID),
	})
}

// handleDeleteDocument removes a document's chunks and its stored original.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	deleted, err := s.svc.DeleteDocument(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "document not found", http.StatusNotFound)
		return
	}

	if err := s.files.Remove(docID); err != nil {
		s.log.Warn("stored file removal failed", "document_id", docID, "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message":     "Document deleted",
		"document_id": docID,
	})
}
