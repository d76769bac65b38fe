package services

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

type OpenAIProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider builds a client for the OpenAI API or any
// OpenAI-compatible endpoint when baseURL is set. SDK retries are disabled:
// each chat request maps to exactly one upstream call.
func NewOpenAIProvider(apiKey, model, baseURL string) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

func (p *OpenAIProvider) Name() string { return "OpenAI" }

func (p *OpenAIProvider) StructuredRows(ctx context.Context, systemPrompt, input string) ([]byte, error) {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "workout_rows",
		Description: openai.String("New workout rows inferred from the user's message"),
		Schema:      ChatResponseSchema,
		Strict:      openai.Bool(true),
	}

	chat, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(input),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(chat.Choices) == 0 {
		return nil, nil
	}
	msg := chat.Choices[0].Message
	if msg.Refusal != "" || msg.Content == "" {
		return nil, nil
	}
	return []byte(msg.Content), nil
}

func (p *OpenAIProvider) Text(ctx context.Context, systemPrompt, message string) (string, error) {
	chat, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(message),
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(chat.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return chat.Choices[0].Message.Content, nil
}
