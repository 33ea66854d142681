// Package clipboard is the thin system clipboard edge of the tool.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Read returns the current clipboard text.
func Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}

	return text, nil
}

// Write replaces the clipboard content with text.
func Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}

	return nil
}
