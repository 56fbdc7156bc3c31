package extract

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/docanchor/docanchor/internal/segment"
)

// Extractor walks one document format and emits text segments in reading
// order, each positioned in the document-wide character stream.
type Extractor interface {
	Extract(path string) ([]segment.TextSegment, segment.Metadata, error)
}

// UnsupportedFormatError is returned when a file's extension is not in the
// supported set. It is fatal to the single upload only.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Ext)
}

// ExtractionError wraps a failure to read or walk a document's structure.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

var supportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".xlsx":     true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the extractor for a filename's extension.
func ForFile(path string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".xlsx":
		return &XLSXExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, &UnsupportedFormatError{Ext: ext}
	}
}

// Extract dispatches to the format extractor for path.
func Extract(path string) ([]segment.TextSegment, segment.Metadata, error) {
	ex, err := ForFile(path)
	if err != nil {
		return nil, segment.Metadata{}, err
	}
	return ex.Extract(path)
}

// IsSupported checks whether a file's extension is in the supported set.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions lists the supported extensions in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Validate runs a full extraction and reports whether it produced any
// segments, swallowing extraction errors into false. Meant for upload-time
// sanity checks, not for citation accuracy.
func Validate(path string) bool {
	segs, _, err := Extract(path)
	if err != nil {
		return false
	}
	return len(segs) > 0
}
