// Package openai implements the llms.Model interface over the
// chat-completions wire protocol. Azure and Perplexity deployments speak the
// same protocol and reuse this implementation.
package openai

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/pkg/llms/openai/internal/openaiclient"
)

type ChatMessage = openaiclient.ChatMessage

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// APIError is a non-2xx reply from the provider, re-exported for callers
// that need the status code and body.
type APIError = openaiclient.APIError

type LLM struct {
	client   *openaiclient.Client
	provider ProviderType
}

var _ llms.Model = (*LLM)(nil)

// New returns a new OpenAI-format LLM.
func New(opts ...Option) (*LLM, error) {
	o, c, err := newClient(opts...)
	if err != nil {
		return nil, err
	}
	return &LLM{
		client:   c,
		provider: o.provider,
	}, nil
}

// GetProviderType implements the Model interface.
func (o *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderType(o.provider)
}

// GetName implements the Model interface.
func (o *LLM) GetName() string {
	return o.client.Model
}

// GenerateContent implements the Model interface. The message log is
// replayed verbatim, in order; the tool catalogue, when present, is attached
// with the configured tool choice.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}

	chatMsgs := make([]*ChatMessage, 0, len(messages))
	for _, mc := range messages {
		msg, err := chatMessageFromMessage(mc)
		if err != nil {
			return nil, err
		}
		// The protocol requires every tool message to follow an assistant
		// message carrying the matching tool_calls entry. The transcript
		// stores only the tool result, so the predecessor is synthesized
		// here when a replayed history lacks it.
		if msg.Role == RoleTool && !precededByToolCall(chatMsgs, msg.ToolCallID) {
			chatMsgs = append(chatMsgs, &ChatMessage{
				Role: RoleAssistant,
				ToolCalls: []openaiclient.ToolCall{{
					ID:   msg.ToolCallID,
					Type: openaiclient.ToolTypeFunction,
					Function: openaiclient.ToolFunction{
						Name:      msg.Name,
						Arguments: "{}",
					},
				}},
			})
		}
		chatMsgs = append(chatMsgs, msg)
	}

	req := &openaiclient.ChatRequest{
		Model:               opts.Model,
		Messages:            chatMsgs,
		Temperature:         opts.Temperature,
		MaxCompletionTokens: opts.MaxTokens,
	}

	for _, tool := range opts.Tools {
		t, err := toolFromTool(tool)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to convert tool definition")
		}
		req.Tools = append(req.Tools, t)
	}
	if len(req.Tools) > 0 {
		req.ToolChoice = opts.ToolChoice
		if req.ToolChoice == nil {
			req.ToolChoice = openaiclient.DefaultFunctionCallBehavior
		}
	}

	result, err := o.client.CreateChat(ctx, req)
	if err != nil {
		return nil, err
	}

	choices := make([]*llms.ContentChoice, len(result.Choices))
	for i, c := range result.Choices {
		choice := &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: c.FinishReason,
		}
		for _, tool := range c.Message.ToolCalls {
			choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
				ID:   tool.ID,
				Type: string(tool.Type),
				FunctionCall: &llms.FunctionCall{
					Name:      tool.Function.Name,
					Arguments: tool.Function.Arguments,
				},
			})
		}
		choices[i] = choice
	}
	return &llms.ContentResponse{Choices: choices}, nil
}

// precededByToolCall reports whether the last message already carries a
// tool_calls entry for the given call ID.
func precededByToolCall(chatMsgs []*ChatMessage, toolCallID string) bool {
	if len(chatMsgs) == 0 {
		return false
	}
	last := chatMsgs[len(chatMsgs)-1]
	if last.Role != RoleAssistant {
		return false
	}
	for _, tc := range last.ToolCalls {
		if tc.ID == toolCallID {
			return true
		}
	}
	return false
}

// chatMessageFromMessage converts a log entry into its wire form.
func chatMessageFromMessage(mc llms.Message) (*ChatMessage, error) {
	msg := &ChatMessage{}
	switch mc.Role {
	case llms.RoleSystem:
		msg.Role = RoleSystem
	case llms.RoleHuman:
		msg.Role = RoleUser
	case llms.RoleAI:
		msg.Role = RoleAssistant
	case llms.RoleTool:
		msg.Role = RoleTool
		// A tool message carries exactly one ToolCallResponse part; its call
		// ID and tool name correlate the result with the originating request.
		if len(mc.Parts) != 1 {
			return nil, errors.Newf("expected exactly one part for role %v, got %v", mc.Role, len(mc.Parts))
		}
		p, ok := mc.Parts[0].(llms.ToolCallResponse)
		if !ok {
			return nil, errors.Newf("expected part of type ToolCallResponse for role %v, got %T", mc.Role, mc.Parts[0])
		}
		msg.ToolCallID = p.ToolCallID
		msg.Name = p.Name
		msg.Content = p.Content
		return msg, nil
	default:
		return nil, errors.WithMessagef(llms.ErrUnexpectedRole, "role %v not supported", mc.Role)
	}

	for _, part := range mc.Parts {
		switch p := part.(type) {
		case llms.TextContent:
			msg.Content += p.Text
		case llms.ToolCall:
			msg.ToolCalls = append(msg.ToolCalls, openaiclient.ToolCall{
				ID:   p.ID,
				Type: openaiclient.ToolType(p.Type),
				Function: openaiclient.ToolFunction{
					Name:      p.FunctionCall.Name,
					Arguments: p.FunctionCall.Arguments,
				},
			})
		default:
			return nil, errors.Newf("unsupported content part for role %v: %T", mc.Role, part)
		}
	}
	return msg, nil
}

// toolFromTool converts an llms.Tool to its wire form.
func toolFromTool(t llms.Tool) (openaiclient.Tool, error) {
	if t.Type != string(openaiclient.ToolTypeFunction) {
		return openaiclient.Tool{}, errors.Newf("tool type %v not supported", t.Type)
	}
	return openaiclient.Tool{
		Type: openaiclient.ToolTypeFunction,
		Function: openaiclient.FunctionDefinition{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Parameters:  t.Function.Parameters,
		},
	}, nil
}
