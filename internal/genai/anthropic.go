package genai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicProvider implements Provider on the Anthropic messages API.
type anthropicProvider struct {
	client *anthropic.Client
	model  string
}

func newAnthropicProvider(cfg Config) (*anthropicProvider, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}
	client := anthropic.NewClient(option.WithAPIKey(cfg.AnthropicAPIKey))
	return &anthropicProvider{
		client: &client,
		model:  cfg.AnthropicModel,
	}, nil
}

func (p *anthropicProvider) Complete(ctx context.Context, req Request) (json.RawMessage, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(req.MaxTokens),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(req.Prompt),
				},
			},
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}
	if req.Schema != nil {
		params.OutputConfig = anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{
				Schema: req.Schema,
			},
		}
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic completion: %w", err)
	}

	var content json.RawMessage
	for _, block := range msg.Content {
		if block.Type == "text" {
			content = json.RawMessage(block.Text)
			break
		}
	}
	if content == nil {
		return nil, &ErrBadCompletion{Err: fmt.Errorf("no text block in response")}
	}
	if msg.StopReason == "max_tokens" {
		return nil, &ErrTruncated{Raw: content}
	}
	return content, nil
}

func (p *anthropicProvider) ModelID() string {
	return p.model
}
