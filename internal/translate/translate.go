// Package translate wraps the OpenAI chat API as a text translator.
package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// ErrUnavailable is returned when no API key was configured.
var ErrUnavailable = errors.New("translation is not configured")

type Translator struct {
	client *openai.Client
}

// New builds a translator. An empty API key yields a translator whose
// Translate always fails with ErrUnavailable.
func New(apiKey string) *Translator {
	if apiKey == "" {
		return &Translator{}
	}
	return &Translator{client: openai.NewClient(apiKey)}
}

// Available reports whether translation is configured.
func (t *Translator) Available() bool {
	return t != nil && t.client != nil
}

// Translate renders text into the target language.
func (t *Translator) Translate(ctx context.Context, text, target string) (string, error) {
	if !t.Available() {
		return "", ErrUnavailable
	}

	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You are a translation engine. Translate the user's message into %s. Reply with the translation only.",
					target,
				),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("error calling translation API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("translation API returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
