package chunker

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/docanchor/docanchor/internal/segment"
)

// Config controls chunking behavior.
type Config struct {
	ChunkSize    int // target chunk size in characters
	ChunkOverlap int // characters of trailing context carried into the next chunk
}

// DefaultConfig returns the standard retrieval-sized configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 200,
	}
}

// Metadata keys duplicated onto every chunk so a storage-only roundtrip
// through the index can rebuild the chunk without a side database.
const (
	MetaFilename   = "filename"
	MetaDocumentID = "document_id"
	MetaPage       = "page"
	MetaCharStart  = "char_start"
	MetaCharEnd    = "char_end"
	MetaChunkID    = "chunk_id"
)

// DocumentChunk is one retrieval unit derived from exactly one segment.
type DocumentChunk struct {
	ChunkID    string            `json:"chunk_id"`
	Text       string            `json:"text"`
	PageNumber int               `json:"page_number"`
	CharStart  int               `json:"char_start"`
	CharEnd    int               `json:"char_end"`
	DocumentID string            `json:"document_id"`
	ChunkIndex int               `json:"chunk_index"`
	Metadata   map[string]string `json:"metadata"`
}

// ChunkID composes the deterministic chunk identifier for a document and a
// zero-based sequence index.
func ChunkID(documentID string, index int) string {
	return fmt.Sprintf("%s_chunk_%d", documentID, index)
}

// Chunker splits extracted segments into retrieval-sized chunks while
// remapping each chunk back into the document's absolute coordinates.
type Chunker struct {
	cfg Config
	log *slog.Logger
}

// New creates a Chunker. Non-positive config fields fall back to defaults.
func New(cfg Config, log *slog.Logger) *Chunker {
	def := DefaultConfig()
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = def.ChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = def.ChunkOverlap
	}
	if log == nil {
		log = slog.Default()
	}
	return &Chunker{cfg: cfg, log: log}
}

// ChunkSegments splits each segment's text and emits chunks carrying
// absolute positions. The chunk index runs across the whole document, never
// resetting per segment. Never fails for well-formed input; an empty segment
// list yields an empty result.
func (c *Chunker) ChunkSegments(segments []segment.TextSegment, documentID, filename string) []DocumentChunk {
	var chunks []DocumentChunk
	chunkIndex := 0

	for _, seg := range segments {
		// Local cursor into the segment's text; split positions are
		// remapped through it into document coordinates.
		cursor := 0

		for _, chunkText := range splitText(seg.Text, c.cfg.ChunkSize, c.cfg.ChunkOverlap) {
			var absStart int
			if pos, ok := locate(seg.Text[cursor:], chunkText); ok {
				absStart = seg.CharStart + cursor + pos
				cursor += pos + len(chunkText)
			} else {
				// The splitter reshaped whitespace and the text no longer
				// appears verbatim past the cursor. Advance by length and
				// accept approximate offsets for the rest of this segment.
				c.log.Warn("chunk text not found in segment, offsets approximate",
					"document_id", documentID,
					"chunk_index", chunkIndex,
					"page", seg.PageNumber,
				)
				absStart = seg.CharStart + cursor
				cursor += len(chunkText)
			}
			absEnd := absStart + len(chunkText)

			id := ChunkID(documentID, chunkIndex)
			chunks = append(chunks, DocumentChunk{
				ChunkID:    id,
				Text:       chunkText,
				PageNumber: seg.PageNumber,
				CharStart:  absStart,
				CharEnd:    absEnd,
				DocumentID: documentID,
				ChunkIndex: chunkIndex,
				Metadata: map[string]string{
					MetaFilename:   filename,
					MetaDocumentID: documentID,
					MetaPage:       strconv.Itoa(seg.PageNumber),
					MetaCharStart:  strconv.Itoa(absStart),
					MetaCharEnd:    strconv.Itoa(absEnd),
					MetaChunkID:    id,
				},
			})
			chunkIndex++
		}
	}

	return chunks
}
