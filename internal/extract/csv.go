package extract

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
)

// cellDelimiter joins row values in tabular extraction output.
const cellDelimiter = " | "

// CSVExtractor handles delimited files. All rows become a single segment:
// cells joined by the delimiter, rows joined by newlines.
type CSVExtractor struct{}

func (e *CSVExtractor) Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, segment.Metadata{}, &ExtractionError{Path: path, Err: err}
	}

	var rows []string
	for _, record := range records {
		row := strings.Join(record, cellDelimiter)
		if strings.TrimSpace(row) != "" {
			rows = append(rows, row)
		}
	}

	meta := segment.Metadata{
		PageCount:     1,
		FileSizeBytes: fileSize(path),
		FileType:      "csv",
	}

	if len(rows) == 0 {
		return nil, meta, nil
	}

	combined := strings.Join(rows, "\n")
	meta.TotalChars = len(combined)

	segs := []segment.TextSegment{{
		Text:       combined,
		PageNumber: 1,
		CharStart:  0,
		CharEnd:    len(combined),
	}}
	return segs, meta, nil
}
