package extract

import (
	"bytes"
	"os"
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Each top-level
// block (heading, paragraph, list, code block) becomes one segment with the
// markup stripped; the document is a single page.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	meta := segment.Metadata{
		PageCount:     1,
		TotalChars:    len(src),
		FileSizeBytes: fileSize(path),
		FileType:      "markdown",
	}

	var segs []segment.TextSegment
	var off flowOffsets
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		block := blockText(n, src)
		trimmed := strings.TrimSpace(block)
		if trimmed != "" {
			start, end := off.segmentBounds(len(block))
			segs = append(segs, segment.TextSegment{
				Text:       trimmed,
				PageNumber: 1,
				CharStart:  start,
				CharEnd:    end,
			})
		}
		off.advance(len(block))
	}

	return segs, meta, nil
}

// blockText extracts the plain text content of a goldmark AST block.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer

	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		// Leaf blocks without inline children (code blocks) carry raw lines.
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return buf.String()
	}

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		default:
			if c.Type() == ast.TypeBlock && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(blockText(c, src))
		}
	}
	return buf.String()
}
