// Package store persists conversation transcripts.
package store

import (
	"context"

	"github.com/sorcery-ai/concierge/pkg/llms"
)

// MessageStore keeps the per-chat transcript. Implementations resolve the
// chat from the chatmodel context. Messages are append-only and returned
// in the order they were added.
type MessageStore interface {
	Messages(ctx context.Context) []llms.Message
	Add(ctx context.Context, msgs ...llms.Message) error
	Reset(ctx context.Context) error
}
