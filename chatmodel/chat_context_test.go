package chatmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/chatmodel"
)

func Test_ChatContext(t *testing.T) {
	chatCtx := chatmodel.NewChatContext("chat1", map[string]string{"key": "value"})
	assert.Equal(t, "chat1", chatCtx.GetChatID())
	assert.Equal(t, map[string]string{"key": "value"}, chatCtx.AppData())

	_, ok := chatCtx.GetMetadata("missing")
	assert.False(t, ok)
	chatCtx.SetMetadata("k", 1)
	v, ok := chatCtx.GetMetadata("k")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	ctx := context.Background()
	assert.Nil(t, chatmodel.GetChatContext(ctx))
	assert.Empty(t, chatmodel.GetChatID(ctx))

	ctx = chatmodel.WithChatContext(ctx, chatCtx)
	assert.Equal(t, chatCtx, chatmodel.GetChatContext(ctx))
	assert.Equal(t, "chat1", chatmodel.GetChatID(ctx))
}

func Test_NewChatID(t *testing.T) {
	id1 := chatmodel.NewChatID()
	id2 := chatmodel.NewChatID()
	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)

	// empty ID is replaced with a generated one
	chatCtx := chatmodel.NewChatContext("", nil)
	assert.NotEmpty(t, chatCtx.GetChatID())
}
