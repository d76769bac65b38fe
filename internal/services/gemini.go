package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) Name() string { return "Gemini" }

// generativeModel returns a fresh model handle; GenerativeModel carries
// mutable settings, so one is built per call.
func (p *GeminiProvider) generativeModel(systemPrompt string) *genai.GenerativeModel {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.2)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	return model
}

func (p *GeminiProvider) StructuredRows(ctx context.Context, systemPrompt, input string) ([]byte, error) {
	model := p.generativeModel(systemPrompt)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = geminiRowsSchema()

	resp, err := model.GenerateContent(ctx, genai.Text(input))
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := strings.TrimSpace(extractText(resp))
	if text == "" {
		return nil, nil
	}
	return []byte(text), nil
}

func (p *GeminiProvider) Text(ctx context.Context, systemPrompt, message string) (string, error) {
	model := p.generativeModel(systemPrompt)

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini returned no candidates")
	}
	return extractText(resp), nil
}

// geminiRowsSchema mirrors models.ChatResponse.
func geminiRowsSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: desc}
	}

	row := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"exercise":  str("Exercise name, empty string if missing"),
			"set":       {Type: genai.TypeInteger, Description: "Set number, auto-incremented per exercise"},
			"weightLbs": str("Weight in pounds as a bare number with no units, empty string if missing"),
			"reps":      str("Number of reps, empty string if missing"),
			"notes":     str("Free-form notes, empty string if missing"),
		},
		Required: []string{"exercise", "set", "weightLbs", "reps", "notes"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"rows": {Type: genai.TypeArray, Items: row},
		},
		Required: []string{"rows"},
	}
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
