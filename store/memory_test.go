package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/chatmodel"
	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/store"
)

func Test_MemoryStore(t *testing.T) {
	st := store.NewMemoryStore()

	msg1 := llms.MessageFromTextParts(llms.RoleHuman, "Hello")
	msg2 := llms.MessageFromTextParts(llms.RoleAI, "Hi there!")

	ctx := context.Background()
	expErr := "invalid chat context"
	assert.EqualError(t, st.Reset(ctx), expErr)
	assert.EqualError(t, st.Add(ctx, msg1), expErr)
	assert.Empty(t, st.Messages(ctx))

	chatCtx := chatmodel.NewChatContext("chat1", nil)
	ctx = chatmodel.WithChatContext(ctx, chatCtx)

	require.NoError(t, st.Add(ctx, msg1))
	require.NoError(t, st.Add(ctx, msg2))

	messages := st.Messages(ctx)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello", messages[0].GetText())
	assert.Equal(t, "Hi there!", messages[1].GetText())

	// messages from another chat are not visible
	otherCtx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat2", nil))
	assert.Empty(t, st.Messages(otherCtx))

	require.NoError(t, st.Reset(ctx))
	assert.Empty(t, st.Messages(ctx))
}

func Test_MemoryStore_AppendOrder(t *testing.T) {
	st := store.NewMemoryStore()
	ctx := chatmodel.WithChatContext(context.Background(), chatmodel.NewChatContext("chat1", nil))

	turn := []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "What time is it?"),
		llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
			ToolCallID: "call_1",
			Name:       "current_time",
			Content:    "2024-01-01T00:00:00+00:00",
		}),
		llms.MessageFromTextParts(llms.RoleAI, "It is 2024-01-01T00:00:00+00:00 UTC."),
	}
	require.NoError(t, st.Add(ctx, turn...))

	messages := st.Messages(ctx)
	require.Len(t, messages, 3)
	assert.Equal(t, llms.RoleHuman, messages[0].Role)
	assert.Equal(t, llms.RoleTool, messages[1].Role)
	assert.Equal(t, llms.RoleAI, messages[2].Role)
}
