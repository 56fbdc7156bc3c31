package chunker

import (
	"strings"
	"testing"
)

func TestMergeOverlapping_MajorityOverlapMerges(t *testing.T) {
	base := strings.Repeat("x", 60) + strings.Repeat("y", 40)
	next := strings.Repeat("y", 60) + strings.Repeat("z", 40)
	chunks := []DocumentChunk{
		{Text: base, PageNumber: 1, CharStart: 0, CharEnd: 100},
		{Text: next, PageNumber: 1, CharStart: 40, CharEnd: 140},
	}

	merged := MergeOverlapping(chunks)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged chunk, got %d", len(merged))
	}
	if merged[0].CharStart != 0 || merged[0].CharEnd != 140 {
		t.Errorf("merged span = [%d,%d), want [0,140)", merged[0].CharStart, merged[0].CharEnd)
	}
	// Only the non-overlapping suffix is appended.
	want := base + next[60:]
	if merged[0].Text != want {
		t.Errorf("merged text = %q, want %q", merged[0].Text, want)
	}
}

func TestMergeOverlapping_MinorOverlapKeepsBoth(t *testing.T) {
	chunks := []DocumentChunk{
		{Text: strings.Repeat("a", 100), PageNumber: 1, CharStart: 0, CharEnd: 100},
		{Text: strings.Repeat("b", 100), PageNumber: 1, CharStart: 60, CharEnd: 160},
	}

	merged := MergeOverlapping(chunks)
	if len(merged) != 2 {
		t.Fatalf("expected 2 chunks (overlap of 40 is below half of 100), got %d", len(merged))
	}
}

func TestMergeOverlapping_DifferentPagesNeverMerge(t *testing.T) {
	chunks := []DocumentChunk{
		{Text: strings.Repeat("a", 100), PageNumber: 1, CharStart: 0, CharEnd: 100},
		{Text: strings.Repeat("a", 100), PageNumber: 2, CharStart: 10, CharEnd: 110},
	}

	merged := MergeOverlapping(chunks)
	if len(merged) != 2 {
		t.Fatalf("expected chunks on different pages to stay separate, got %d", len(merged))
	}
}

func TestMergeOverlapping_SortsBeforeMerging(t *testing.T) {
	chunks := []DocumentChunk{
		{Text: "later", PageNumber: 2, CharStart: 0, CharEnd: 5},
		{Text: "early", PageNumber: 1, CharStart: 0, CharEnd: 5},
	}

	merged := MergeOverlapping(chunks)
	if len(merged) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(merged))
	}
	if merged[0].Text != "early" || merged[1].Text != "later" {
		t.Errorf("expected page order, got %q then %q", merged[0].Text, merged[1].Text)
	}
}

func TestMergeOverlapping_ContainedChunkAppendsNothing(t *testing.T) {
	chunks := []DocumentChunk{
		{Text: strings.Repeat("a", 100), PageNumber: 1, CharStart: 0, CharEnd: 100},
		{Text: strings.Repeat("a", 20), PageNumber: 1, CharStart: 30, CharEnd: 50},
	}

	merged := MergeOverlapping(chunks)
	if len(merged) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(merged))
	}
	if len(merged[0].Text) != 100 {
		t.Errorf("expected contained chunk to add no text, got %d chars", len(merged[0].Text))
	}
	// The span end follows the last merged chunk even when it shrinks.
	if merged[0].CharEnd != 50 {
		t.Errorf("expected CharEnd 50, got %d", merged[0].CharEnd)
	}
}

func TestMergeOverlapping_Idempotent(t *testing.T) {
	chunks := []DocumentChunk{
		{Text: strings.Repeat("a", 50), PageNumber: 1, CharStart: 0, CharEnd: 50},
		{Text: strings.Repeat("b", 50), PageNumber: 1, CharStart: 60, CharEnd: 110},
		{Text: strings.Repeat("c", 50), PageNumber: 2, CharStart: 0, CharEnd: 50},
	}

	once := MergeOverlapping(chunks)
	twice := MergeOverlapping(once)
	if len(once) != len(twice) {
		t.Fatalf("expected stable result, got %d then %d chunks", len(once), len(twice))
	}
	for i := range once {
		if once[i].Text != twice[i].Text || once[i].CharStart != twice[i].CharStart {
			t.Errorf("chunk %d changed on second merge pass", i)
		}
	}
}

func TestMergeOverlapping_Empty(t *testing.T) {
	if got := MergeOverlapping(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
}
