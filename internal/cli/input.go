package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"textdigest/internal/clipboard"
	"textdigest/internal/fetch"
)

// inputFlags are the shared input-source flags of text commands.
type inputFlags struct {
	fromClipboard bool
	filePath      string
	pageURL       string
}

// resolveInput picks the text to process: --url wins, then --file, then
// --clipboard, then arguments, then piped stdin.
func resolveInput(
	ctx context.Context,
	flags inputFlags,
	args []string,
) (string, error) {
	switch {
	case flags.pageURL != "":
		pageURL, err := fetch.ExtractURL(flags.pageURL)
		if err != nil {
			return "", err
		}

		return fetch.NewFetcher(log).PageText(ctx, pageURL)

	case flags.filePath != "":
		data, err := os.ReadFile(flags.filePath)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}

		return string(data), nil

	case flags.fromClipboard:
		return clipboard.Read()

	case len(args) > 0:
		return strings.Join(args, " "), nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && info.Mode()&os.ModeCharDevice == 0 {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			return "", fmt.Errorf("read stdin: %w", readErr)
		}

		return string(data), nil
	}

	return "", errors.New("no input: pass text, --file, --url, --clipboard or pipe stdin")
}
