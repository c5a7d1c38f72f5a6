// Package generate produces candidate artifacts from user requests via
// an OpenAI-compatible chat completion API.
//
// The replacement core treats candidate text as opaque input; this
// package is the host-side collaborator that produces it. Network I/O
// lives entirely here - nothing in the core performs transport.
package generate

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o"

// Models lists the chat models offered by the customize flow.
var Models = []string{"gpt-4o", "gpt-4o-mini", "o1-mini"}

// Generator calls a chat completion API to produce candidate artifacts.
type Generator struct {
	client *openai.Client
	model  string
}

// Config configures a Generator.
type Config struct {
	// APIKey authenticates against the API. Required.
	APIKey string

	// BaseURL overrides the API endpoint. Empty means the OpenAI
	// default; tests point this at a local httptest server.
	BaseURL string

	// Model selects the chat model. Empty means DefaultModel.
	Model string
}

// New creates a Generator.
func New(cfg Config) (*Generator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Generator{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Generate asks the model for a full replacement artifact.
//
// request is the user's customization request; current is the full
// current artifact, included so the model rewrites rather than invents.
// The response is sanitized (fences stripped) before being returned as
// the opaque candidate text; validation is the core's job, not ours.
func (g *Generator) Generate(ctx context.Context, request string, current []byte) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(request, current)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return Sanitize(resp.Choices[0].Message.Content), nil
}
