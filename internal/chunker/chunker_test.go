package chunker

import (
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"github.com/docanchor/docanchor/internal/segment"
)

func testChunker(t *testing.T, cfg Config) *Chunker {
	t.Helper()
	return New(cfg, slog.New(slog.DiscardHandler))
}

func TestChunkSegments_SmallSegmentsOneChunkEach(t *testing.T) {
	segs := []segment.TextSegment{
		{Text: "Alpha beta.", PageNumber: 1, CharStart: 0, CharEnd: 11},
		{Text: "Gamma delta.", PageNumber: 1, CharStart: 13, CharEnd: 25},
	}

	c := testChunker(t, DefaultConfig())
	chunks := c.ChunkSegments(segs, "doc-1", "notes.txt")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].CharStart != 0 || chunks[0].CharEnd != 11 {
		t.Errorf("chunk 0 span = [%d,%d), want [0,11)", chunks[0].CharStart, chunks[0].CharEnd)
	}
	if chunks[1].CharStart != 13 || chunks[1].CharEnd != 25 {
		t.Errorf("chunk 1 span = [%d,%d), want [13,25)", chunks[1].CharStart, chunks[1].CharEnd)
	}
	if chunks[0].ChunkID != "doc-1_chunk_0" {
		t.Errorf("expected chunk id doc-1_chunk_0, got %q", chunks[0].ChunkID)
	}
	if chunks[1].ChunkID != "doc-1_chunk_1" {
		t.Errorf("expected chunk id doc-1_chunk_1, got %q", chunks[1].ChunkID)
	}
}

func TestChunkSegments_IndexRunsAcrossSegments(t *testing.T) {
	segs := []segment.TextSegment{
		{Text: strings.Repeat("A", 1500), PageNumber: 1, CharStart: 0, CharEnd: 1500},
		{Text: "Trailing paragraph.", PageNumber: 2, CharStart: 1502, CharEnd: 1521},
	}

	c := testChunker(t, Config{ChunkSize: 1000, ChunkOverlap: 200})
	chunks := c.ChunkSegments(segs, "doc-2", "long.pdf")

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if ch.ChunkIndex != i {
			t.Errorf("chunk %d has index %d", i, ch.ChunkIndex)
		}
		if ch.ChunkID != ChunkID("doc-2", i) {
			t.Errorf("chunk %d has id %q", i, ch.ChunkID)
		}
	}
	if chunks[2].PageNumber != 2 {
		t.Errorf("expected chunk 2 on page 2, got %d", chunks[2].PageNumber)
	}
}

func TestChunkSegments_OversizedSegmentHardCuts(t *testing.T) {
	segs := []segment.TextSegment{
		{Text: strings.Repeat("A", 1500), PageNumber: 1, CharStart: 0, CharEnd: 1500},
	}

	c := testChunker(t, Config{ChunkSize: 1000, ChunkOverlap: 200})
	chunks := c.ChunkSegments(segs, "doc-3", "big.txt")

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].CharStart != 0 || chunks[0].CharEnd != 1000 {
		t.Errorf("chunk 0 span = [%d,%d), want [0,1000)", chunks[0].CharStart, chunks[0].CharEnd)
	}
	if len(chunks[1].Text) != 700 {
		t.Errorf("expected 700 chars in chunk 1, got %d", len(chunks[1].Text))
	}
	// The overlap region repeats, so the second chunk's start cannot be
	// relocated verbatim past the cursor; length accounting still holds.
	if chunks[1].CharEnd-chunks[1].CharStart != len(chunks[1].Text) {
		t.Errorf("chunk 1 span width %d != text length %d",
			chunks[1].CharEnd-chunks[1].CharStart, len(chunks[1].Text))
	}
}

func TestChunkSegments_MetadataComplete(t *testing.T) {
	segs := []segment.TextSegment{
		{Text: "Some content on page four.", PageNumber: 4, CharStart: 120, CharEnd: 146},
	}

	c := testChunker(t, DefaultConfig())
	chunks := c.ChunkSegments(segs, "doc-4", "report.pdf")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}

	meta := chunks[0].Metadata
	want := map[string]string{
		MetaFilename:   "report.pdf",
		MetaDocumentID: "doc-4",
		MetaPage:       "4",
		MetaCharStart:  "120",
		MetaCharEnd:    strconv.Itoa(120 + len(segs[0].Text)),
		MetaChunkID:    "doc-4_chunk_0",
	}
	for k, v := range want {
		if meta[k] != v {
			t.Errorf("metadata[%s] = %q, want %q", k, meta[k], v)
		}
	}
}

func TestChunkSegments_EmptyInput(t *testing.T) {
	c := testChunker(t, DefaultConfig())
	if chunks := c.ChunkSegments(nil, "doc-5", "empty.txt"); len(chunks) != 0 {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestChunkSegments_Deterministic(t *testing.T) {
	segs := []segment.TextSegment{
		{Text: strings.Repeat("First sentence here. Second sentence there. ", 40), PageNumber: 1, CharStart: 0, CharEnd: 1800},
	}

	c := testChunker(t, Config{ChunkSize: 500, ChunkOverlap: 100})
	a := c.ChunkSegments(segs, "doc-6", "a.txt")
	b := c.ChunkSegments(segs, "doc-6", "a.txt")

	if len(a) != len(b) {
		t.Fatalf("expected equal chunk counts, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Text != b[i].Text || a[i].CharStart != b[i].CharStart || a[i].ChunkID != b[i].ChunkID {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestNew_DefaultsOnZeroConfig(t *testing.T) {
	c := New(Config{}, nil)
	if c.cfg.ChunkSize != 1000 {
		t.Errorf("expected default chunk size 1000, got %d", c.cfg.ChunkSize)
	}
	if c.cfg.ChunkOverlap != 0 {
		t.Errorf("expected explicit zero overlap kept, got %d", c.cfg.ChunkOverlap)
	}
}
