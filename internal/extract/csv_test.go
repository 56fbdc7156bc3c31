package extract

import (
	"strings"
	"testing"
)

func TestCSVExtract_RowsJoined(t *testing.T) {
	path := writeFile(t, "data.csv", "name,age\nalice,30\nbob,25\n")

	segs, meta, err := (&CSVExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}

	want := "name | age\nalice | 30\nbob | 25"
	if segs[0].Text != want {
		t.Errorf("text = %q, want %q", segs[0].Text, want)
	}
	if segs[0].CharStart != 0 || segs[0].CharEnd != len(want) {
		t.Errorf("span = [%d,%d), want [0,%d)", segs[0].CharStart, segs[0].CharEnd, len(want))
	}
	if meta.TotalChars != len(want) {
		t.Errorf("total chars = %d, want %d", meta.TotalChars, len(want))
	}
	if meta.FileType != "csv" {
		t.Errorf("file type = %q, want csv", meta.FileType)
	}
}

func TestCSVExtract_RaggedRows(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b,c\nd,e\nf\n")

	segs, _, err := (&CSVExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("expected ragged rows to extract, got %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	lines := strings.Split(segs[0].Text, "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 rows, got %d", len(lines))
	}
}

func TestCSVExtract_EmptyFile(t *testing.T) {
	path := writeFile(t, "data.csv", "")

	segs, meta, err := (&CSVExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 0 {
		t.Errorf("expected no segments, got %d", len(segs))
	}
	if meta.PageCount != 1 {
		t.Errorf("expected page count 1, got %d", meta.PageCount)
	}
}
