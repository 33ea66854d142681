package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
)

// DefaultEmbeddingModel is used whenever no embedding model is configured.
const DefaultEmbeddingModel = "text-embedding-3-small"

// Embed converts a single text into its embedding vector.
func (c *OpenAIClient) Embed(
	ctx context.Context,
	text string,
	model string,
) ([]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultEmbeddingModel
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("embedding data is missing")
	}

	return resp.Data[0].Embedding, nil
}
