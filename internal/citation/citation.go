package citation

import "github.com/docanchor/docanchor/internal/index"

// SnippetLimit is the maximum citation snippet length before truncation.
const SnippetLimit = 200

// Citation links an answer back to a chunk's page and character span in the
// source document. Built per query, never persisted.
type Citation struct {
	ChunkID        string  `json:"chunk_id"`
	Text           string  `json:"text"`
	PageNumber     int     `json:"page_number"`
	CharStart      int     `json:"char_start"`
	CharEnd        int     `json:"char_end"`
	RelevanceScore float64 `json:"relevance_score"`
}

// FromResults builds one citation per retrieved chunk. Positions come
// verbatim from the chunk's stored metadata; the score is passed through
// exactly as the index reported it. An empty result set yields an empty
// slice, never an error.
func FromResults(results []index.ScoredChunk) []Citation {
	citations := make([]Citation, 0, len(results))
	for _, r := range results {
		citations = append(citations, Citation{
			ChunkID:        r.Chunk.ChunkID,
			Text:           Snippet(r.Chunk.Text),
			PageNumber:     r.Chunk.PageNumber,
			CharStart:      r.Chunk.CharStart,
			CharEnd:        r.Chunk.CharEnd,
			RelevanceScore: r.Score,
		})
	}
	return citations
}

// Snippet truncates text to SnippetLimit characters, marking the cut.
func Snippet(text string) string {
	if len(text) > SnippetLimit {
		return text[:SnippetLimit] + "..."
	}
	return text
}
