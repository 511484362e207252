// Package assistants implements the conversation turn loop between the
// user, the completion provider and the registered tools.
package assistants

import (
	"context"

	"github.com/effective-security/xlog"

	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/tools"
)

var logger = xlog.NewPackageLogger("github.com/sorcery-ai/concierge", "assistants")

//go:generate mockgen -destination=../mocks/mockllms/llm_mock.gen.go -package mockllms github.com/sorcery-ai/concierge/pkg/llms Model

// IAssistant is the conversational surface exposed to callers.
type IAssistant interface {
	// Name returns the name of the Assistant.
	Name() string
	// Description returns the description of the Assistant.
	Description() string

	// Chat runs one turn: the user utterance through to the final
	// assistant reply, including at most one tool execution in between.
	Chat(ctx context.Context, input string, options ...Option) (*llms.ContentResponse, error)
}

// Callback receives turn lifecycle events.
type Callback interface {
	tools.Callback
	OnAssistantStart(ctx context.Context, assistant IAssistant, input string)
	OnAssistantEnd(ctx context.Context, assistant IAssistant, input string, resp *llms.ContentResponse)
	OnAssistantError(ctx context.Context, assistant IAssistant, input string, err error)
	OnToolNotFound(ctx context.Context, assistant IAssistant, tool string)
}
