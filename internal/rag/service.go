package rag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/docanchor/docanchor/internal/chunker"
	"github.com/docanchor/docanchor/internal/citation"
	"github.com/docanchor/docanchor/internal/extract"
	"github.com/docanchor/docanchor/internal/index"
)

// NoContextAnswer is returned when retrieval finds nothing relevant. It is a
// normal answer, not an error condition.
const NoContextAnswer = "I couldn't find any relevant information in the documents to answer this question."

// promptTemplate is the citation-aware answering prompt. Citations are
// attached separately, so the model is told not to emit its own markers.
const promptTemplate = `You are a helpful AI assistant that provides clear, concise answers from documents.

INSTRUCTIONS:
1. Read the context and find information that directly answers the question
2. Give a SHORT, SIMPLE answer using ONLY the information from the context
3. Answer in 2-3 sentences maximum - be direct and to the point
4. Use simple, clear English that anyone can understand
5. Do NOT include citation markers like [1], [2], [Source 1] - citations are shown separately
6. If the answer is not in the context, say "I cannot find this information in the document"

Context from documents:
%s

Question: %s

Provide a short, direct answer in simple English (2-3 sentences maximum). NO citation markers.`

// Completer generates an answer from a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Answer is the result of one question.
type Answer struct {
	Answer           string              `json:"answer"`
	Citations        []citation.Citation `json:"citations"`
	Question         string              `json:"question"`
	ProcessingTimeMs float64             `json:"processing_time_ms"`
}

// IndexStats summarizes one document's ingestion.
type IndexStats struct {
	DocumentID   string `json:"document_id"`
	Filename     string `json:"filename"`
	PageCount    int    `json:"page_count"`
	SegmentCount int    `json:"segment_count"`
	ChunkCount   int    `json:"chunk_count"`
	TotalChars   int    `json:"total_chars"`
}

// Service runs the document pipeline and answers questions with citations.
type Service struct {
	index     index.Index
	completer Completer
	chunker   *chunker.Chunker
	log       *slog.Logger
}

func NewService(idx index.Index, completer Completer, ch *chunker.Chunker, log *slog.Logger) *Service {
	return &Service{
		index:     idx,
		completer: completer,
		chunker:   ch,
		log:       log,
	}
}

// IndexDocument extracts, chunks, and stores one document. The whole run is
// synchronous; it either completes or returns the first error.
func (s *Service) IndexDocument(ctx context.Context, documentID, filename, path string) (IndexStats, error) {
	segments, meta, err := extract.Extract(path)
	if err != nil {
		return IndexStats{}, err
	}
	s.log.Info("extracted document",
		"doc_id", documentID,
		"segments", len(segments),
		"pages", meta.PageCount,
	)

	chunks := s.chunker.ChunkSegments(segments, documentID, filename)
	s.log.Info("chunked document", "doc_id", documentID, "chunks", len(chunks))

	if _, err := s.index.Upsert(ctx, chunks); err != nil {
		return IndexStats{}, fmt.Errorf("store chunks for %s: %w", documentID, err)
	}

	return IndexStats{
		DocumentID:   documentID,
		Filename:     filename,
		PageCount:    meta.PageCount,
		SegmentCount: len(segments),
		ChunkCount:   len(chunks),
		TotalChars:   meta.TotalChars,
	}, nil
}

// Query answers a question from indexed content. An empty documentID
// searches across all documents. Zero retrieval hits yields the fixed
// no-context answer with no citations.
func (s *Service) Query(ctx context.Context, question, documentID string, maxCitations int) (*Answer, error) {
	start := time.Now()

	var filter map[string]string
	if documentID != "" {
		filter = map[string]string{chunker.MetaDocumentID: documentID}
	}

	results, err := s.index.Search(ctx, question, maxCitations, filter)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	if len(results) == 0 {
		s.log.Warn("no relevant chunks found", "question", question)
		return &Answer{
			Answer:           NoContextAnswer,
			Citations:        []citation.Citation{},
			Question:         question,
			ProcessingTimeMs: msSince(start),
		}, nil
	}

	// Adjacent chunks overlap by construction; collapse near-duplicates so
	// the prompt does not repeat itself. Citations still come from the raw
	// results.
	retrieved := make([]chunker.DocumentChunk, len(results))
	for i, r := range results {
		retrieved[i] = r.Chunk
	}
	merged := chunker.MergeOverlapping(retrieved)

	contextParts := make([]string, len(merged))
	for i, c := range merged {
		contextParts[i] = c.Text + "\n"
	}
	prompt := fmt.Sprintf(promptTemplate, strings.Join(contextParts, "\n---\n"), question)

	answer, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &Answer{
		Answer:           answer,
		Citations:        citation.FromResults(results),
		Question:         question,
		ProcessingTimeMs: msSince(start),
	}, nil
}

// DeleteDocument removes every chunk carrying the document id.
func (s *Service) DeleteDocument(ctx context.Context, documentID string) (bool, error) {
	return s.index.DeleteWhere(ctx, documentID)
}

// ChunkCount reports how many chunks the index holds for a document.
func (s *Service) ChunkCount(ctx context.Context, documentID string) (int, error) {
	return s.index.CountWhere(ctx, documentID)
}

// ListDocuments returns the distinct document ids in the index.
func (s *Service) ListDocuments(ctx context.Context) ([]string, error) {
	return s.index.ListDocumentIDs(ctx)
}

func msSince(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
