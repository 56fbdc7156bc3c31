package extract

import (
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor handles PDF files. Pages are walked in order; each page's
// text is split on blank-line boundaries into paragraph segments positioned
// by the paged offset policy.
type PDFExtractor struct{}

func (e *PDFExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	meta := segment.Metadata{
		PageCount:     reader.NumPage(),
		FileSizeBytes: fileSize(path),
		FileType:      "pdf",
	}

	var segs []segment.TextSegment
	var off pagedOffsets

	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil || pageText == "" {
			// Pages without recoverable text do not advance the offsets.
			continue
		}

		region := mediaBox(page)
		for _, para := range splitParagraphs(pageText) {
			text := strings.TrimSpace(para)
			if text != "" {
				start, end := off.segmentBounds(len(para))
				segs = append(segs, segment.TextSegment{
					Text:       text,
					PageNumber: pageNum,
					CharStart:  start,
					CharEnd:    end,
					Region:     region,
				})
			}
			off.advanceParagraph(len(para))
		}

		meta.TotalChars += len(pageText)
		off.advancePage(len(pageText))
	}

	return segs, meta, nil
}

// mediaBox reads the page's MediaBox rectangle, walking up the page tree if
// the entry is inherited. Returns a zero region when absent or malformed.
func mediaBox(page pdflib.Page) segment.Region {
	v := page.V
	for !v.IsNull() {
		box := v.Key("MediaBox")
		if !box.IsNull() && box.Len() == 4 {
			return segment.Region{
				X0: box.Index(0).Float64(),
				Y0: box.Index(1).Float64(),
				X1: box.Index(2).Float64(),
				Y1: box.Index(3).Float64(),
			}
		}
		v = v.Key("Parent")
	}
	return segment.Region{}
}
