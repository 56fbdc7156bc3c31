package extract

import "testing"

func TestMarkdownExtract_TopLevelBlocks(t *testing.T) {
	src := "# Title\n\nFirst paragraph of prose.\n\nSecond paragraph."
	path := writeFile(t, "doc.md", src)

	segs, meta, err := (&MarkdownExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].Text != "Title" {
		t.Errorf("expected heading text without markup, got %q", segs[0].Text)
	}
	if segs[1].Text != "First paragraph of prose." {
		t.Errorf("segment 1 text = %q", segs[1].Text)
	}
	if meta.FileType != "markdown" {
		t.Errorf("file type = %q, want markdown", meta.FileType)
	}
	if meta.PageCount != 1 {
		t.Errorf("page count = %d, want 1", meta.PageCount)
	}
}

func TestMarkdownExtract_OffsetsMonotonic(t *testing.T) {
	src := "# One\n\nTwo.\n\nThree four five.\n\n- item a\n- item b"
	path := writeFile(t, "doc.md", src)

	segs, _, err := (&MarkdownExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) < 3 {
		t.Fatalf("expected at least 3 segments, got %d", len(segs))
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].CharStart <= segs[i-1].CharStart {
			t.Errorf("segment %d start %d not after segment %d start %d",
				i, segs[i].CharStart, i-1, segs[i-1].CharStart)
		}
	}
}

func TestMarkdownExtract_CodeBlock(t *testing.T) {
	src := "Intro.\n\n```\nfunc main() {}\n```\n"
	path := writeFile(t, "doc.md", src)

	segs, _, err := (&MarkdownExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[1].Text != "func main() {}" {
		t.Errorf("expected code block contents, got %q", segs[1].Text)
	}
}

func TestMarkdownExtract_EmptyFile(t *testing.T) {
	path := writeFile(t, "doc.md", "")

	segs, _, err := (&MarkdownExtractor{}).Extract(path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(segs) != 0 {
		t.Errorf("expected no segments, got %d", len(segs))
	}
}
