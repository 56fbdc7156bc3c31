package extract

import "testing"

func TestHTMLExtract_TextNodes(t *testing.T) {
	src := `<html><head><title>Page</title></head><body><h1>Heading</h1><p>Body text.</p></body></html>`
	path := writeFile(t, "doc.html", src)

	segs, meta, err := (&HTMLExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments (title, heading, body), got %d", len(segs))
	}
	if segs[0].Text != "Page" || segs[1].Text != "Heading" || segs[2].Text != "Body text." {
		t.Errorf("unexpected texts: %q, %q, %q", segs[0].Text, segs[1].Text, segs[2].Text)
	}
	if meta.FileType != "html" {
		t.Errorf("file type = %q, want html", meta.FileType)
	}
}

func TestHTMLExtract_SkipsScriptAndStyle(t *testing.T) {
	src := `<html><body><script>var x = 1;</script><style>body { color: red; }</style><p>Visible.</p></body></html>`
	path := writeFile(t, "doc.html", src)

	segs, _, err := (&HTMLExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 1 {
		t.Fatalf("expected only the visible paragraph, got %d segments", len(segs))
	}
	if segs[0].Text != "Visible." {
		t.Errorf("text = %q, want %q", segs[0].Text, "Visible.")
	}
}

func TestHTMLExtract_OffsetsAdvanceOnlyOnEmit(t *testing.T) {
	// Whitespace-only text nodes between elements are dropped without
	// moving the cursor: the first retained node starts at zero.
	src := "<html><body>\n  <p>First.</p>\n  <p>Second.</p>\n</body></html>"
	path := writeFile(t, "doc.html", src)

	segs, _, err := (&HTMLExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].CharStart != 0 {
		t.Errorf("first segment starts at %d, want 0", segs[0].CharStart)
	}
	// "First." is 6 chars plus the 2-char separator.
	if segs[1].CharStart != 8 {
		t.Errorf("second segment starts at %d, want 8", segs[1].CharStart)
	}
}
