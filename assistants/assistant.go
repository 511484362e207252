package assistants

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"

	"github.com/sorcery-ai/concierge/chatmodel"
	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/pkg/llmutils"
	"github.com/sorcery-ai/concierge/tools"
)

// Assistant runs the conversation turn loop. Each turn makes at most two
// provider exchanges: the first carries the tool catalogue, and when the
// model requests a tool, the second carries the tool result and no
// catalogue, so the model answers in plain text.
//
// Only the first tool call of a response is honored, extra calls are
// dropped. This mirrors the observed protocol of one tool per turn.
type Assistant struct {
	LLM llms.Model

	cfg          *Config
	name         string
	description  string
	systemPrompt string
	registry     *tools.Registry
	runMessages  []llms.Message
}

var _ IAssistant = (*Assistant)(nil)

// NewAssistant initializes the Assistant.
func NewAssistant(llmModel llms.Model, systemPrompt string, options ...Option) *Assistant {
	return &Assistant{
		cfg:          NewConfig(options...),
		LLM:          llmModel,
		systemPrompt: strings.TrimRight(systemPrompt, "\n"),
		name:         "Concierge",
		description:  "An AI assistant that can tell the time and send emails.",
		registry:     tools.NewRegistry(),
	}
}

// DefaultSystemPrompt returns the assistant persona instruction with the
// configured sender identity pinned. The model never chooses the sender.
func DefaultSystemPrompt(sender string) string {
	return fmt.Sprintf(
		"You are a helpful assistant with access to tools. When sending emails, always use %s as the sender address.",
		sender)
}

// WithName sets the name of the Assistant.
func (a *Assistant) WithName(name string) *Assistant {
	a.name = name
	return a
}

// WithDescription sets the description of the Assistant.
func (a *Assistant) WithDescription(description string) *Assistant {
	a.description = description
	return a
}

// WithTools adds new tools to the Assistant,
// existing tools are not replaced.
func (a *Assistant) WithTools(list ...tools.ITool) *Assistant {
	a.registry.Register(list...)
	return a
}

func (a *Assistant) Name() string {
	return a.name
}

func (a *Assistant) Description() string {
	return a.description
}

// GetTools returns the registered tools in registration order.
func (a *Assistant) GetTools() []tools.ITool {
	return a.registry.List()
}

func (a *Assistant) GetCallConfig(opts ...Option) *Config {
	return a.cfg.Apply(opts...)
}

// LastRunMessages returns the messages produced by the last turn, in the
// order they were appended to the transcript.
func (a *Assistant) LastRunMessages() []llms.Message {
	return a.runMessages
}

// Chat runs one turn for the user utterance.
func (a *Assistant) Chat(ctx context.Context, input string, options ...Option) (*llms.ContentResponse, error) {
	// reset the run messages
	a.runMessages = nil
	// create a per call config
	cfg := a.GetCallConfig(options...)

	callback := cfg.CallbackHandler
	if callback != nil {
		callback.OnAssistantStart(ctx, a, input)
	}

	resp, err := a.run(ctx, cfg, input)
	if err != nil {
		if callback != nil {
			callback.OnAssistantError(ctx, a, input, err)
		}
		return nil, err
	}
	if callback != nil {
		callback.OnAssistantEnd(ctx, a, input, resp)
	}
	return resp, nil
}

func (a *Assistant) run(ctx context.Context, cfg *Config, input string) (*llms.ContentResponse, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, errors.New("empty input")
	}
	if cfg.Store != nil && chatmodel.GetChatID(ctx) == "" {
		return nil, errors.WithStack(chatmodel.ErrInvalidChatContext)
	}

	messageHistory := []llms.Message{
		llms.MessageFromTextParts(llms.RoleSystem, a.systemPrompt),
	}
	if cfg.Store != nil {
		prevMessages := cfg.Store.Messages(ctx)
		logger.ContextKV(ctx, xlog.DEBUG,
			"assistant", a.name,
			"chat_id", chatmodel.GetChatID(ctx),
			"message_history", len(prevMessages))
		messageHistory = append(messageHistory, prevMessages...)
	}

	userMessage := llms.MessageFromTextParts(llms.RoleHuman, input)
	messageHistory = append(messageHistory, userMessage)

	if len(messageHistory) >= cfg.MaxMessages {
		return nil, errors.Newf("assistant %s: the messages count exceeded limit", a.name)
	}
	if llmutils.CountMessagesContentSize(messageHistory) > uint64(cfg.MaxLength) {
		return nil, errors.Newf("assistant %s: the content size exceeded limit", a.name)
	}

	// First exchange carries the tool catalogue, the provider decides
	// whether a tool is needed.
	callOpts := cfg.GetCallOptions()
	if defs := a.registry.Definitions(); len(defs) > 0 {
		if !a.LLM.GetProviderType().Supports(llms.CapabilityFunctionCalling) {
			return nil, errors.Newf("assistant %s: the LLM does not support function calling", a.name)
		}
		callOpts = append(callOpts,
			llms.WithTools(defs),
			llms.WithToolChoice(llms.ToolChoiceAuto),
		)
	}

	resp, err := a.LLM.GenerateContent(ctx, messageHistory, callOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate content from LLM")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.Newf("assistant %s: LLM returned empty response", a.name)
	}

	choice := resp.Choices[0]
	if len(choice.ToolCalls) == 0 {
		// Plain answer, the turn ends after one exchange.
		a.runMessages = []llms.Message{
			userMessage,
			llms.MessageFromTextParts(llms.RoleAI, choice.Content),
		}
		a.persist(ctx, cfg)
		return resp, nil
	}

	toolCall := choice.ToolCalls[0]
	if toolCall.ID == "" {
		toolCall.ID = fmt.Sprintf("%s_0", toolCall.FunctionCall.Name)
	}
	toolCall.Type = values.StringsCoalesce(toolCall.Type, "function")
	if len(choice.ToolCalls) > 1 {
		logger.ContextKV(ctx, xlog.WARNING,
			"assistant", a.name,
			"status", "extra_tool_calls_ignored",
			"count", len(choice.ToolCalls)-1,
		)
	}

	content := a.executeToolCall(ctx, cfg, toolCall)

	toolResponse := llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
		ToolCallID: toolCall.ID,
		Name:       toolCall.FunctionCall.Name,
		Content:    content,
	})

	// The assistant tool-call message is turn-local wire state, only the
	// user, tool and final assistant messages land in the transcript.
	messageHistory = append(messageHistory,
		llms.MessageFromToolCalls(llms.RoleAI, toolCall),
		toolResponse,
	)

	// Second exchange carries no catalogue, the provider must answer.
	resp, err = a.LLM.GenerateContent(ctx, messageHistory, cfg.GetCallOptions()...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to generate content from LLM")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.Newf("assistant %s: LLM returned empty response", a.name)
	}

	finalContent := resp.Choices[0].Content
	if finalContent == "" {
		// No catalogue was offered, so a repeated tool request cannot be
		// honored. Fall back to the tool result so the transcript never
		// carries an empty assistant message.
		logger.ContextKV(ctx, xlog.WARNING,
			"assistant", a.name,
			"status", "empty_final_answer",
			"tool", toolCall.FunctionCall.Name,
		)
		finalContent = content
		resp.Choices[0].Content = finalContent
	}

	a.runMessages = []llms.Message{
		userMessage,
		toolResponse,
		llms.MessageFromTextParts(llms.RoleAI, finalContent),
	}
	a.persist(ctx, cfg)
	return resp, nil
}

// executeToolCall resolves and runs the tool, returning the text reported
// back to the provider. Tool failures never fail the turn, they become
// conversation content.
func (a *Assistant) executeToolCall(ctx context.Context, cfg *Config, toolCall llms.ToolCall) string {
	toolName := toolCall.FunctionCall.Name
	toolArgs := toolCall.FunctionCall.Arguments

	tool, err := a.registry.Resolve(toolName)
	if err != nil {
		if cfg.CallbackHandler != nil {
			cfg.CallbackHandler.OnToolNotFound(ctx, a, toolName)
		}
		availableTools := strings.Join(a.registry.Names(), ", ")
		logger.ContextKV(ctx, xlog.WARNING,
			"assistant", a.name,
			"status", "tool_not_found",
			"tool_name", toolName,
			"available_tools", availableTools,
		)
		return fmt.Sprintf("Tool `%s` not found. Please check the tool name and try again with exact match. Available tools: %s", toolName, availableTools)
	}

	if cfg.CallbackHandler != nil {
		cfg.CallbackHandler.OnToolStart(ctx, tool, toolArgs)
	}

	res, err := tool.Call(ctx, toolArgs)
	if err != nil {
		if cfg.CallbackHandler != nil {
			cfg.CallbackHandler.OnToolError(ctx, tool, toolArgs, err)
		}
		logger.ContextKV(ctx, xlog.WARNING,
			"assistant", a.name,
			"status", "tool_call_failed",
			"tool", toolName,
			"err", err.Error(),
		)
		if errors.Is(err, chatmodel.ErrFailedUnmarshalInput) {
			return "Failed to unmarshal input, check the JSON schema and try again."
		}
		return fmt.Sprintf("Tool call failed: %s", err.Error())
	}

	if cfg.CallbackHandler != nil {
		cfg.CallbackHandler.OnToolEnd(ctx, tool, toolArgs, res)
	}
	return res
}

func (a *Assistant) persist(ctx context.Context, cfg *Config) {
	if cfg.Store == nil || cfg.SkipMessageHistory {
		return
	}
	if err := cfg.Store.Add(ctx, a.runMessages...); err != nil {
		logger.ContextKV(ctx, xlog.ERROR,
			"assistant", a.name,
			"status", "failed_to_store_messages",
			"err", err.Error(),
		)
	}
}
