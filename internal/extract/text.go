package extract

import (
	"os"
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
)

// TextExtractor handles plain text files. The whole file is one "page";
// blank-line-delimited paragraphs become segments.
type TextExtractor struct{}

func (e *TextExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}

	meta := segment.Metadata{
		PageCount:     1,
		TotalChars:    len(data),
		FileSizeBytes: fileSize(path),
		FileType:      "txt",
	}

	var segs []segment.TextSegment
	var off flowOffsets
	for _, para := range splitParagraphs(string(data)) {
		text := strings.TrimSpace(para)
		if text != "" {
			start, end := off.segmentBounds(len(para))
			segs = append(segs, segment.TextSegment{
				Text:       text,
				PageNumber: 1,
				CharStart:  start,
				CharEnd:    end,
			})
		}
		off.advance(len(para))
	}

	return segs, meta, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
