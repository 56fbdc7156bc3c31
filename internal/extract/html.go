package extract

import (
	"os"
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
	"golang.org/x/net/html"
)

// HTMLExtractor handles HTML files. Each retained text node in document
// order becomes one segment; script and style subtrees are excluded.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}

	var segs []segment.TextSegment
	var off flowOffsets

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				start, end := off.segmentBounds(len(text))
				segs = append(segs, segment.TextSegment{
					Text:       text,
					PageNumber: 1,
					CharStart:  start,
					CharEnd:    end,
				})
				off.advance(len(text))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	meta := segment.Metadata{
		PageCount:     1,
		TotalChars:    off.pos,
		FileSizeBytes: fileSize(path),
		FileType:      "html",
	}

	return segs, meta, nil
}
