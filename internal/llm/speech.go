package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/openai/openai-go/v3"
)

const (
	// DefaultSpeechModel is used whenever no speech model is configured.
	DefaultSpeechModel = "tts-1"
	// DefaultVoice is the voice used when none is configured.
	DefaultVoice = "alloy"
)

// Speak converts text into spoken audio bytes (MP3) via the Speech API.
func (c *OpenAIClient) Speak(
	ctx context.Context,
	text string,
	model string,
	voice string,
) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text is empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultSpeechModel
	}

	voice = strings.TrimSpace(voice)
	if voice == "" {
		voice = DefaultVoice
	}

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: openai.SpeechModel(model),
		Voice: openai.AudioSpeechNewParamsVoiceUnion{OfString: openai.String(voice)},
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return audio, nil
}
