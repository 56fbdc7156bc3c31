package index

import (
	"context"
	"strconv"

	"github.com/docanchor/docanchor/internal/chunker"
)

// ScoredChunk is one retrieval hit. Score scale depends on the backing
// index; the only contract is that higher means more relevant.
type ScoredChunk struct {
	Chunk chunker.DocumentChunk
	Score float64
}

// Index is the external similarity index the pipeline hands chunks to.
type Index interface {
	// Upsert stores chunks and returns their chunk ids.
	Upsert(ctx context.Context, chunks []chunker.DocumentChunk) ([]string, error)
	// Search returns up to k chunks ranked by relevance. A non-empty filter
	// restricts hits by metadata equality (e.g. document_id).
	Search(ctx context.Context, query string, k int, filter map[string]string) ([]ScoredChunk, error)
	// DeleteWhere removes every chunk belonging to a document and reports
	// whether anything was removed.
	DeleteWhere(ctx context.Context, documentID string) (bool, error)
	// CountWhere counts the stored chunks for a document.
	CountWhere(ctx context.Context, documentID string) (int, error)
	// ListDocumentIDs returns the distinct document ids in the index.
	ListDocumentIDs(ctx context.Context) ([]string, error)
}

// ChunkFromMetadata rebuilds a chunk from the flat metadata stored alongside
// it. The chunk index is not part of the stored fields, so the rebuilt chunk
// always reports index 0.
func ChunkFromMetadata(text string, meta map[string]string) chunker.DocumentChunk {
	page, _ := strconv.Atoi(meta[chunker.MetaPage])
	charStart, _ := strconv.Atoi(meta[chunker.MetaCharStart])
	charEnd, _ := strconv.Atoi(meta[chunker.MetaCharEnd])
	return chunker.DocumentChunk{
		ChunkID:    meta[chunker.MetaChunkID],
		Text:       text,
		PageNumber: page,
		CharStart:  charStart,
		CharEnd:    charEnd,
		DocumentID: meta[chunker.MetaDocumentID],
		Metadata:   meta,
	}
}
