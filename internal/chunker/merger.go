package chunker

import "sort"

// mergeOverlapRatio is the share of a chunk's text that must be covered by
// the previous retained chunk before the two collapse into one.
const mergeOverlapRatio = 0.5

// MergeOverlapping collapses near-duplicate adjacent chunks, a best-effort
// pass for when re-chunking could have produced overlapping units. Chunks
// are sorted by (page, charStart); a chunk folds into the previous retained
// chunk when both share a page, their spans overlap, and the overlap exceeds
// half the current chunk's text length. Merging appends only the
// non-overlapping suffix and extends the retained span. It may under- or
// over-merge when the stored text was normalized between the two chunks.
func MergeOverlapping(chunks []DocumentChunk) []DocumentChunk {
	if len(chunks) == 0 {
		return nil
	}

	sorted := make([]DocumentChunk, len(chunks))
	copy(sorted, chunks)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].PageNumber != sorted[j].PageNumber {
			return sorted[i].PageNumber < sorted[j].PageNumber
		}
		return sorted[i].CharStart < sorted[j].CharStart
	})

	merged := []DocumentChunk{sorted[0]}

	for _, cur := range sorted[1:] {
		last := &merged[len(merged)-1]

		if cur.PageNumber == last.PageNumber && cur.CharStart < last.CharEnd {
			overlapEnd := cur.CharEnd
			if last.CharEnd < overlapEnd {
				overlapEnd = last.CharEnd
			}
			overlap := overlapEnd - cur.CharStart

			if float64(overlap) > float64(len(cur.Text))*mergeOverlapRatio {
				if overlap < len(cur.Text) {
					last.Text += cur.Text[overlap:]
				}
				last.CharEnd = cur.CharEnd
				continue
			}
		}

		merged = append(merged, cur)
	}

	return merged
}
