package llms_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/pkg/llms"
)

func Test_MessageFromParts(t *testing.T) {
	msg := llms.MessageFromTextParts(llms.RoleHuman, "Hello")
	assert.Equal(t, llms.RoleHuman, msg.Role)
	assert.Equal(t, "Hello", msg.GetText())

	msg = llms.MessageFromTextParts(llms.RoleAI, "part one", "part two")
	assert.Equal(t, "part onepart two", msg.GetText())
}

func Test_MessageFromToolCalls(t *testing.T) {
	tc := llms.ToolCall{
		ID:   "call_1",
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      "current_time",
			Arguments: "{}",
		},
	}
	msg := llms.MessageFromToolCalls(llms.RoleAI, tc)
	assert.Equal(t, llms.RoleAI, msg.Role)
	require.Len(t, msg.Parts, 1)

	got, ok := msg.Parts[0].(llms.ToolCall)
	require.True(t, ok)
	assert.Equal(t, "call_1", got.ID)
	assert.Equal(t, "current_time", got.FunctionCall.Name)
}

func Test_MessageFromToolResponse(t *testing.T) {
	msg := llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
		ToolCallID: "call_1",
		Name:       "current_time",
		Content:    "2024-01-01T00:00:00+00:00",
	})
	assert.Equal(t, llms.RoleTool, msg.Role)
	assert.Equal(t, "2024-01-01T00:00:00+00:00", msg.GetText())
}

func Test_Message_GetText(t *testing.T) {
	// GetText returns plain content without the trailing newline or the
	// "Response:" framing that GetContent adds for transcript rendering
	msg := llms.MessageFromTextParts(llms.RoleHuman, "Hello!")
	assert.Equal(t, "Hello!", msg.GetText())
	assert.Equal(t, "Hello!\n", msg.GetContent())

	msg = llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
		ToolCallID: "call_1",
		Name:       "current_time",
		Content:    "2024-01-01T00:00:00+00:00",
	})
	assert.Equal(t, "2024-01-01T00:00:00+00:00", msg.GetText())
	assert.Contains(t, msg.GetContent(), "Response: ")

	// a tool call part carries no text
	msg = llms.MessageFromToolCalls(llms.RoleAI, llms.ToolCall{
		ID:   "call_1",
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      "current_time",
			Arguments: "{}",
		},
	})
	assert.Empty(t, msg.GetText())
}

func Test_Message_MarshalRoundTrip(t *testing.T) {
	// the transcript store depends on messages of every role surviving
	// a JSON round-trip
	original := []llms.Message{
		llms.MessageFromTextParts(llms.RoleSystem, "You are a helpful assistant."),
		llms.MessageFromTextParts(llms.RoleHuman, "What time is it?"),
		llms.MessageFromToolCalls(llms.RoleAI, llms.ToolCall{
			ID:   "call_1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      "current_time",
				Arguments: "{}",
			},
		}),
		llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
			ToolCallID: "call_1",
			Name:       "current_time",
			Content:    "2024-01-01T00:00:00+00:00",
		}),
		llms.MessageFromTextParts(llms.RoleAI, "It is 2024-01-01T00:00:00+00:00 UTC."),
	}

	for _, msg := range original {
		data, err := json.Marshal(msg)
		require.NoError(t, err)

		var decoded llms.Message
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, msg.Role, decoded.Role)
		assert.Equal(t, msg.GetContent(), decoded.GetContent())
		assert.Equal(t, len(msg.Parts), len(decoded.Parts))
	}
}

func Test_ProviderCapabilities(t *testing.T) {
	assert.True(t, llms.ProviderOpenAI.Supports(llms.CapabilityFunctionCalling))
	assert.True(t, llms.ProviderAzure.Supports(llms.CapabilityFunctionCalling))
	assert.False(t, llms.ProviderPerplexity.Supports(llms.CapabilityFunctionCalling))
	assert.True(t, llms.ProviderPerplexity.Supports(llms.CapabilityText))
}
