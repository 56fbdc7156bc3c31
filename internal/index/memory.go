package index

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/docanchor/docanchor/internal/chunker"
	"github.com/docanchor/docanchor/internal/embed"
)

// MemoryIndex is an in-process Index backed by brute-force cosine
// similarity. Useful for development and tests; not persistent.
type MemoryIndex struct {
	mu       sync.RWMutex
	embedder embed.Embedder
	entries  map[string]memoryEntry // keyed by chunk id
}

type memoryEntry struct {
	chunk  chunker.DocumentChunk
	vector []float32
}

func NewMemoryIndex(embedder embed.Embedder) *MemoryIndex {
	return &MemoryIndex{
		embedder: embedder,
		entries:  make(map[string]memoryEntry),
	}
}

func (m *MemoryIndex) Upsert(ctx context.Context, chunks []chunker.DocumentChunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, len(chunks))
	for i, c := range chunks {
		m.entries[c.ChunkID] = memoryEntry{chunk: c, vector: vectors[i]}
		ids[i] = c.ChunkID
	}
	return ids, nil
}

func (m *MemoryIndex) Search(ctx context.Context, query string, k int, filter map[string]string) ([]ScoredChunk, error) {
	qv, err := m.embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []ScoredChunk
	for _, e := range m.entries {
		if !matchesFilter(e.chunk.Metadata, filter) {
			continue
		}
		// Rebuild from stored metadata only, like a remote index would.
		rebuilt := ChunkFromMetadata(e.chunk.Text, e.chunk.Metadata)
		results = append(results, ScoredChunk{
			Chunk: rebuilt,
			Score: float64(cosineSimilarity(qv, e.vector)),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if k > 0 && len(results) > k {
		results = results[:k]
	}
	return results, nil
}

func (m *MemoryIndex) DeleteWhere(ctx context.Context, documentID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := false
	for id, e := range m.entries {
		if e.chunk.DocumentID == documentID {
			delete(m.entries, id)
			deleted = true
		}
	}
	return deleted, nil
}

func (m *MemoryIndex) CountWhere(ctx context.Context, documentID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, e := range m.entries {
		if e.chunk.DocumentID == documentID {
			count++
		}
	}
	return count, nil
}

func (m *MemoryIndex) ListDocumentIDs(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var ids []string
	for _, e := range m.entries {
		if !seen[e.chunk.DocumentID] {
			seen[e.chunk.DocumentID] = true
			ids = append(ids, e.chunk.DocumentID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func matchesFilter(meta, filter map[string]string) bool {
	for k, v := range filter {
		if meta[k] != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
