package extract

import (
	"os"
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. There is no page concept in the XML;
// every paragraph lands on page 1 with a single running offset.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}

	var segs []segment.TextSegment
	var off flowOffsets

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			continue
		}
		start, end := off.segmentBounds(len(text))
		segs = append(segs, segment.TextSegment{
			Text:       text,
			PageNumber: 1,
			CharStart:  start,
			CharEnd:    end,
		})
		off.advance(len(text))
	}

	meta := segment.Metadata{
		PageCount:     1,
		TotalChars:    off.pos,
		FileSizeBytes: info.Size(),
		FileType:      "docx",
	}

	return segs, meta, nil
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
