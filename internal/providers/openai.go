package providers

import (
	"bytes"
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements analysis.Client against the OpenAI API: Whisper for
// transcription and a chat completion for scoring.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates an OpenAI-backed analysis client
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey)}
}

// Transcribe converts raw audio to text with Whisper
func (c *OpenAIClient) Transcribe(ctx context.Context, audio []byte, language string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio.webm",
		Reader:   bytes.NewReader(audio),
		Language: language,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Score sends the scoring prompt and returns the first completion verbatim.
// Parsing and shape validation are the caller's concern.
func (c *OpenAIClient) Score(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4o,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a professional sales coach. Always respond with valid JSON only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// ErrEmptyCompletion is returned when the completion has no choices
var ErrEmptyCompletion = emptyCompletionError{}

type emptyCompletionError struct{}

func (emptyCompletionError) Error() string { return "no response from AI" }
