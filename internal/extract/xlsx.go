package extract

import (
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
	"github.com/xuri/excelize/v2"
)

// XLSXExtractor handles Excel workbooks. Each non-empty sheet becomes one
// segment; the 1-based sheet index stands in for the page number. The stored
// text carries a "Sheet: name" header while the offset accounting charges
// only the row text, so CharEnd understates the stored length.
type XLSXExtractor struct{}

func (e *XLSXExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	meta := segment.Metadata{
		PageCount:     len(sheets),
		FileSizeBytes: fileSize(path),
		FileType:      "xlsx",
	}

	var segs []segment.TextSegment
	var off flowOffsets

	for sheetNum, name := range sheets {
		rows, err := wb.GetRows(name)
		if err != nil {
			return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
		}

		var lines []string
		for _, row := range rows {
			line := strings.Join(row, cellDelimiter)
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}

		combined := strings.Join(lines, "\n")
		start, end := off.segmentBounds(len(combined))
		segs = append(segs, segment.TextSegment{
			Text:       "Sheet: " + name + "\n" + combined,
			PageNumber: sheetNum + 1,
			CharStart:  start,
			CharEnd:    end,
		})
		off.advance(len(combined))
	}
	// Total follows the cursor, separator width included.
	meta.TotalChars = off.pos

	return segs, meta, nil
}
