package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go/v3"
)

const (
	// DefaultImageModel is used whenever no image model is configured.
	DefaultImageModel = "dall-e-3"
	// DefaultImageSize matches the API default square resolution.
	DefaultImageSize = "1024x1024"
)

// GenerateImage renders a prompt into PNG bytes via the Images API.
func (c *OpenAIClient) GenerateImage(
	ctx context.Context,
	prompt string,
	model string,
	size string,
) ([]byte, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultImageModel
	}

	size = strings.TrimSpace(size)
	if size == "" {
		size = DefaultImageSize
	}

	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModel(model),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize(size),
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("image data is missing")
	}

	decoded, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return decoded, nil
}

// EditImage transforms a source image according to a prompt via the Images
// API. The reader must yield a PNG; name is used for the multipart part.
func (c *OpenAIClient) EditImage(
	ctx context.Context,
	image io.Reader,
	name string,
	prompt string,
	model string,
) ([]byte, error) {
	if image == nil {
		return nil, errors.New("image is nil")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, errors.New("prompt is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = "gpt-image-1"
	}

	resp, err := c.client.Images.Edit(ctx, openai.ImageEditParams{
		Image: openai.ImageEditParamsImageUnion{
			OfFile: openai.File(image, name, "image/png"),
		},
		Prompt: prompt,
		Model:  openai.ImageModel(model),
		N:      openai.Int(1),
	})
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, errors.New("image data is missing")
	}

	decoded, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return decoded, nil
}
