package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"
)

// ChatRequest is a request to the chat-completions endpoint.
type ChatRequest struct {
	Model               string         `json:"model"`
	Messages            []*ChatMessage `json:"messages"`
	Temperature         *float64       `json:"temperature,omitempty"`
	MaxCompletionTokens int            `json:"max_completion_tokens,omitempty"`

	Tools      []Tool `json:"tools,omitempty"`
	ToolChoice any    `json:"tool_choice,omitempty"`
}

// ChatMessage is one wire message of the ordered log.
type ChatMessage struct {
	// Role is one of "system", "user", "assistant" or "tool".
	Role string `json:"role"`
	// Content may be empty on an assistant message that carries only tool
	// calls pending resolution.
	Content string `json:"content"`

	// ToolCalls is only populated on assistant messages.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID correlates a tool message with the originating call.
	ToolCallID string `json:"tool_call_id,omitempty"`
	// Name identifies the tool that produced a tool message.
	Name string `json:"name,omitempty"`
}

// Tool is a tool definition advertised to the model.
type Tool struct {
	Type     ToolType           `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes one callable function.
type FunctionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     ToolType     `json:"type"`
	Function ToolFunction `json:"function"`
}

// ToolFunction names the function and carries its serialized arguments.
type ToolFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ChatCompletionChoice is one response alternative.
type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatUsage reports token accounting for the exchange.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletionResponse is the provider's reply to a ChatRequest.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   ChatUsage              `json:"usage"`
}

// APIError is a non-2xx reply from the provider. The status code and body
// are carried verbatim so callers can surface a diagnosable failure.
type APIError struct {
	StatusCode int
	Body       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return errors.Newf("provider returned status %d: %s", e.StatusCode, e.Message).Error()
	}
	return errors.Newf("provider returned status %d: %s", e.StatusCode, e.Body).Error()
}

// CreateChat performs one chat-completions exchange.
func (c *Client) CreateChat(ctx context.Context, r *ChatRequest) (*ChatCompletionResponse, error) {
	if r.Model == "" {
		if c.Model == "" {
			r.Model = DefaultChatModel
		} else {
			r.Model = c.Model
		}
	}
	resp, err := c.createChat(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.WithStack(ErrEmptyResponse)
	}
	return resp, nil
}

func (c *Client) createChat(ctx context.Context, payload *ChatRequest) (*ChatCompletionResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to marshal chat request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.buildURL("/chat/completions", payload.Model), bytes.NewReader(body))
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WithMessage(err, "completion request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to read response body")
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		var em errorMessage
		if err := json.Unmarshal(respBody, &em); err == nil && em.Error.Message != "" {
			apiErr.Message = em.Error.Message
		}
		return nil, apiErr
	}

	var response ChatCompletionResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, errors.WithMessage(err, "failed to unmarshal chat response")
	}
	return &response, nil
}
