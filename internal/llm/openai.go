package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// DefaultChatModel is used whenever no model is configured.
const DefaultChatModel = "gpt-4.1-mini"

// OpenAIClient calls OpenAI's Chat Completions API.
type OpenAIClient struct {
	client openai.Client
}

// NewOpenAIClient builds a new client instance.
func NewOpenAIClient(apiKey string) (*OpenAIClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is empty")
	}

	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}, nil
}

// Send implements Client on top of the Chat Completions API.
func (c *OpenAIClient) Send(
	ctx context.Context,
	messages []Message,
	model string,
	temperature float64,
) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("messages are empty")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultChatModel
	}

	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			params = append(params, openai.SystemMessage(m.Content))
		case RoleUser:
			params = append(params, openai.UserMessage(m.Content))
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			return "", fmt.Errorf("unknown message role %q", m.Role)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    params,
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion choices are missing")
	}

	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		return "", errors.New("chat completion choice message content is missing")
	}

	return reply, nil
}
