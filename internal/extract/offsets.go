package extract

import "strings"

// paragraphSeparatorWidth is the width charged for the blank-line separator
// between paragraphs, whether or not the source actually contained one.
const paragraphSeparatorWidth = 2

// pagedOffsets is the offset policy for page-bearing formats. It keeps two
// independent accumulators: a document-wide counter that advances by each
// page's full text length, and a page-local counter that resets every page
// and advances by untrimmed paragraph length plus the separator width. The
// two counters are deliberately not reconciled; stored offsets produced by
// earlier versions of this accounting depend on the drift, so correcting it
// would shift every highlight. Swapping in a reconciled policy only requires
// replacing this type.
type pagedOffsets struct {
	document int
	page     int
}

// segmentBounds returns the absolute span for a paragraph of the given
// untrimmed length at the current cursor position.
func (o *pagedOffsets) segmentBounds(untrimmedLen int) (start, end int) {
	start = o.document + o.page
	return start, start + untrimmedLen
}

// advanceParagraph moves the page-local cursor past one paragraph.
func (o *pagedOffsets) advanceParagraph(untrimmedLen int) {
	o.page += untrimmedLen + paragraphSeparatorWidth
}

// advancePage moves the document-wide cursor past one page and resets the
// page-local cursor.
func (o *pagedOffsets) advancePage(pageTextLen int) {
	o.document += pageTextLen
	o.page = 0
}

// flowOffsets is the offset policy for formats without pages: a single
// running cursor that advances by untrimmed unit length plus the separator
// width after each unit, emitted or not.
type flowOffsets struct {
	pos int
}

func (o *flowOffsets) segmentBounds(untrimmedLen int) (start, end int) {
	return o.pos, o.pos + untrimmedLen
}

func (o *flowOffsets) advance(untrimmedLen int) {
	o.pos += untrimmedLen + paragraphSeparatorWidth
}

// splitParagraphs splits text on blank-line boundaries, keeping parts
// untrimmed so offset accounting sees the source lengths.
func splitParagraphs(text string) []string {
	return strings.Split(text, "\n\n")
}
