package extractor

import "strings"

// DefaultMaxChunkSize and DefaultChunkOverlap match the generation
// defaults in config.
const (
	DefaultMaxChunkSize = 2000
	DefaultChunkOverlap = 200
)

// ChunkText splits text into chunks of at most maxChunkSize characters with
// the given overlap between consecutive chunks. It prefers to break at a
// paragraph boundary, then at a sentence boundary, and only then mid-text.
func ChunkText(text string, maxChunkSize, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}
	if overlap < 0 || overlap >= maxChunkSize {
		overlap = DefaultChunkOverlap
	}

	if len(text) <= maxChunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + maxChunkSize
		if end < len(text) {
			window := text[start:end]
			if idx := strings.LastIndex(window, "\n\n"); idx > 0 {
				end = start + idx
			} else if idx := strings.LastIndex(window, "."); idx > 0 {
				// Keep the period with the chunk.
				end = start + idx + 1
			}
		} else {
			end = len(text)
		}

		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= len(text) {
			break
		}
		// Move to the next chunk with overlap. A break point that lands
		// within the overlap distance of the current start would move the
		// cursor backwards; skip the overlap then so the scan always
		// advances.
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}
