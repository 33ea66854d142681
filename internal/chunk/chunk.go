// Package chunk partitions normalized text into bounded-size blocks for
// per-block processing.
package chunk

import (
	"errors"
	"fmt"
)

// Split partitions text into contiguous blocks of at most maxRunes runes
// each. Boundaries are spaced evenly across ceil(len/maxRunes) blocks so
// block sizes differ by at most one rune. The blocks cover the text exactly
// once, in order: concatenating them reconstructs the input.
func Split(text string, maxRunes int) ([]string, error) {
	if maxRunes <= 0 {
		return nil, fmt.Errorf("block size must be positive, got %d", maxRunes)
	}

	if text == "" {
		return nil, errors.New("text is empty")
	}

	runes := []rune(text)
	total := len(runes)
	if total <= maxRunes {
		return []string{text}, nil
	}

	count := (total + maxRunes - 1) / maxRunes
	base := total / count
	extra := total % count

	blocks := make([]string, 0, count)
	offset := 0
	for i := range count {
		size := base
		if i < extra {
			size++
		}

		blocks = append(blocks, string(runes[offset:offset+size]))
		offset += size
	}

	return blocks, nil
}
