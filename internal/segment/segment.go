package segment

// TextSegment is one contiguous span of extracted text, positioned in the
// document-wide character stream. Segments are produced in reading order and
// consumed once by the chunker; they are never persisted.
type TextSegment struct {
	Text       string // trimmed content
	PageNumber int    // 1-based page, slide, or sheet number
	CharStart  int    // absolute offset into the whole-document text stream
	CharEnd    int    // CharStart + untrimmed source length
	Region     Region // page bounding box, zero for layout-less formats
}

// Region is an opaque rectangle in the source page's coordinate space.
type Region struct {
	X0, Y0, X1, Y1 float64
}

// IsZero reports whether the region is degenerate (no layout information).
func (r Region) IsZero() bool {
	return r == Region{}
}

// Metadata describes one extracted document.
type Metadata struct {
	PageCount     int    `json:"page_count"`
	TotalChars    int    `json:"total_chars"`
	FileSizeBytes int64  `json:"file_size_bytes"`
	FileType      string `json:"file_type"`
}
