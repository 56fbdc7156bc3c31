package chunker

import "strings"

// separators in priority order: paragraph breaks, line breaks, sentence
// endings, words, then hard character cuts.
var separators = []string{"\n\n", "\n", ". ", " "}

// splitText breaks text into pieces of at most chunkSize characters,
// preferring the highest-priority separator that yields fitting pieces and
// carrying overlap characters of trailing context into each next piece.
func splitText(text string, chunkSize, overlap int) []string {
	if len(text) <= chunkSize {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}
	return splitRecursive(text, separators, chunkSize, overlap)
}

func splitRecursive(text string, seps []string, chunkSize, overlap int) []string {
	if len(seps) == 0 {
		return splitHard(text, chunkSize, overlap)
	}

	sep := seps[0]
	if !strings.Contains(text, sep) {
		return splitRecursive(text, seps[1:], chunkSize, overlap)
	}

	parts := splitKeepingSeparator(text, sep)

	var result []string
	var current strings.Builder

	flush := func() {
		chunk := current.String()
		current.Reset()
		if strings.TrimSpace(chunk) == "" {
			return
		}
		result = append(result, chunk)
		if overlap > 0 {
			if tail := overlapTail(chunk, overlap); tail != "" {
				current.WriteString(tail)
			}
		}
	}

	for _, part := range parts {
		if len(part) > chunkSize {
			// A single part exceeds the budget: flush what we have and
			// recurse with the lower-priority separators.
			flush()
			current.Reset()
			result = append(result, splitRecursive(part, seps[1:], chunkSize, overlap)...)
			continue
		}
		if current.Len()+len(part) > chunkSize && current.Len() > 0 {
			flush()
			// The seeded overlap tail plus this part can still exceed the
			// budget; shrink the tail from the front until the piece fits.
			if current.Len() > 0 && current.Len()+len(part) > chunkSize {
				tail := overlapTail(current.String(), chunkSize-len(part))
				current.Reset()
				current.WriteString(tail)
			}
		}
		current.WriteString(part)
	}
	if strings.TrimSpace(current.String()) != "" {
		result = append(result, current.String())
	}

	return result
}

// splitHard cuts text into fixed windows with overlap characters repeated at
// each boundary.
func splitHard(text string, chunkSize, overlap int) []string {
	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize
	}

	var result []string
	for start := 0; start < len(text); start += step {
		end := start + chunkSize
		if end > len(text) {
			end = len(text)
		}
		result = append(result, text[start:end])
		if end == len(text) {
			break
		}
	}
	return result
}

// splitKeepingSeparator splits text on sep, keeping the separator attached
// to the end of each piece so joined lengths match the source.
func splitKeepingSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	result := make([]string, 0, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 {
			p += sep
		}
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// overlapTail returns trailing words of text totalling at most n characters,
// used to seed the next chunk with cross-boundary context.
func overlapTail(text string, n int) string {
	if n <= 0 || len(text) <= n {
		return ""
	}
	words := strings.Fields(text[len(text)-n:])
	if len(words) <= 1 {
		return ""
	}
	// Drop the first field, likely a partial word cut by the window.
	return strings.Join(words[1:], " ") + " "
}

// locate finds needle in haystack and reports whether it was found. Kept as
// a pure function so the found and not-found remapping paths stay explicit.
func locate(haystack, needle string) (int, bool) {
	idx := strings.Index(haystack, needle)
	return idx, idx >= 0
}
