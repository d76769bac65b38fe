package services

import (
	"context"
	"fmt"
	"time"

	"gymlog-backend/internal/models"
	"gymlog-backend/internal/validation"
)

// Provider is a hosted model endpoint. Implementations make exactly one
// upstream call per method invocation.
type Provider interface {
	// Name is used in the error message shown to callers.
	Name() string
	// StructuredRows returns the raw JSON the model produced under the
	// ChatResponse schema. Empty output means the model gave nothing usable.
	StructuredRows(ctx context.Context, systemPrompt, input string) ([]byte, error)
	Text(ctx context.Context, systemPrompt, message string) (string, error)
}

type ChatOptions struct {
	// CredentialEnv names the environment variable holding the provider key.
	CredentialEnv string
	// Configured is false when that key was empty at startup.
	Configured bool
	Timeout    time.Duration
}

type ChatService struct {
	provider Provider
	opts     ChatOptions
}

func NewChatService(provider Provider, opts ChatOptions) *ChatService {
	return &ChatService{provider: provider, opts: opts}
}

// LogRows asks the model for the rows implied by req.Message, given the
// caller's existing rows. The model's rows are returned unchanged.
func (s *ChatService) LogRows(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error) {
	if err := s.checkConfigured(); err != nil {
		return models.ChatResponse{}, err
	}

	input, err := buildRowsInput(req)
	if err != nil {
		return models.ChatResponse{}, s.providerFailed(err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.provider.StructuredRows(ctx, RowsSystemPrompt, input)
	if err != nil {
		return models.ChatResponse{}, s.providerFailed(err)
	}
	if len(raw) == 0 {
		return models.ChatResponse{}, s.providerFailed(ErrNoStructuredOutput)
	}

	parsed, err := validation.DecodeChatResponse(raw)
	if err != nil {
		return models.ChatResponse{}, s.providerFailed(fmt.Errorf("%w: %v", ErrNoStructuredOutput, err))
	}
	return parsed, nil
}

// Reply relays the model's free-text answer to message verbatim.
func (s *ChatService) Reply(ctx context.Context, message string) (models.ReplyResponse, error) {
	if err := s.checkConfigured(); err != nil {
		return models.ReplyResponse{}, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	text, err := s.provider.Text(ctx, ReplySystemPrompt, message)
	if err != nil {
		return models.ReplyResponse{}, s.providerFailed(err)
	}
	return models.ReplyResponse{Reply: text}, nil
}

func (s *ChatService) checkConfigured() error {
	if s.opts.Configured {
		return nil
	}
	return &Error{
		Kind:    KindConfig,
		Message: fmt.Sprintf("%s is not set on the server", s.opts.CredentialEnv),
	}
}

func (s *ChatService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.opts.Timeout)
}

func (s *ChatService) providerFailed(err error) *Error {
	return &Error{
		Kind:    KindProvider,
		Message: s.provider.Name() + " request failed",
		Err:     err,
	}
}
