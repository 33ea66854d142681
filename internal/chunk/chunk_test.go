package chunk

import (
	"strings"
	"testing"
)

func TestSplitShortTextReturnsSingleBlock(t *testing.T) {
	text := strings.Repeat("a", 500)

	blocks, err := Split(text, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}

	if blocks[0] != text {
		t.Fatalf("expected block to equal full text")
	}
}

func TestSplitExactFitReturnsSingleBlock(t *testing.T) {
	text := strings.Repeat("a", 1000)

	blocks, err := Split(text, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(blocks) != 1 {
		t.Fatalf("expected one block, got %d", len(blocks))
	}
}

func TestSplitLongTextCoversInputExactly(t *testing.T) {
	var builder strings.Builder
	for i := range 2500 {
		builder.WriteByte(byte('a' + i%26))
	}
	text := builder.String()

	blocks, err := Split(text, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(blocks) != 3 {
		t.Fatalf("expected three blocks, got %d", len(blocks))
	}

	for i, block := range blocks {
		if n := len([]rune(block)); n > 1000 {
			t.Fatalf("block %d exceeds budget: %d runes", i, n)
		}
	}

	if strings.Join(blocks, "") != text {
		t.Fatalf("expected blocks to reconstruct input exactly")
	}
}

func TestSplitBlockSizesDifferByAtMostOne(t *testing.T) {
	text := strings.Repeat("x", 2501)

	blocks, err := Split(text, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minLen, maxLen := len(blocks[0]), len(blocks[0])
	for _, block := range blocks {
		minLen = min(minLen, len(block))
		maxLen = max(maxLen, len(block))
	}

	if maxLen-minLen > 1 {
		t.Fatalf("uneven block sizes: min %d, max %d", minLen, maxLen)
	}
}

func TestSplitCountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("é", 10)

	blocks, err := Split(text, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(blocks) != 1 {
		t.Fatalf("expected one block for 10 runes, got %d", len(blocks))
	}
}

func TestSplitRejectsInvalidInput(t *testing.T) {
	if _, err := Split("text", 0); err == nil {
		t.Fatalf("expected error for non-positive block size")
	}

	if _, err := Split("", 100); err == nil {
		t.Fatalf("expected error for empty text")
	}
}
