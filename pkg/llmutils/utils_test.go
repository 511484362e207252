package llmutils_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/pkg/llms"
	"github.com/sorcery-ai/concierge/pkg/llmutils"
)

func Test_CleanJSON(t *testing.T) {
	tcases := []struct {
		name string
		in   string
		exp  string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"prefix", `Sure, here you go: {"a":1}`, `{"a":1}`},
		{"postfix", `{"a":1} Let me know if you need anything else.`, `{"a":1}`},
		{"both", "Here it is:\n```json\n{\"a\":1}\n```\n", `{"a":1}`},
		{"array", `The list: [1,2,3] done`, `[1,2,3]`},
		{"no_json", `no json here`, `no json here`},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.exp, string(llmutils.CleanJSON([]byte(tc.in))))
		})
	}
}

func Test_UnmarshalLenient(t *testing.T) {
	type payload struct {
		Recipient string `json:"recipient"`
		Subject   string `json:"subject"`
	}

	var p payload
	err := llmutils.UnmarshalLenient([]byte("Here you go:\n{\"recipient\":\"bob@example.com\",\"subject\":\"Report\"}"), &p)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", p.Recipient)
	assert.Equal(t, "Report", p.Subject)

	// trailing comma is tolerated
	err = llmutils.UnmarshalLenient([]byte(`{"recipient":"bob@example.com",}`), &p)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", p.Recipient)
}

func Test_ToJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, llmutils.ToJSON(map[string]int{"a": 1}))
	assert.Equal(t, "```json\n{\"a\":1}\n```", llmutils.BackticksJSON(llmutils.ToJSON(map[string]int{"a": 1})))
}

func Test_PrintMessages(t *testing.T) {
	msgs := []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "What time is it?"),
		llms.MessageFromTextParts(llms.RoleAI, "It is noon."),
	}

	var buf bytes.Buffer
	llmutils.PrintMessages(&buf, msgs)
	out := buf.String()
	assert.Contains(t, out, "What time is it?")
	assert.Contains(t, out, "It is noon.")

	assert.Equal(t, uint64(len("What time is it?")+len("It is noon.")), llmutils.CountMessagesContentSize(msgs))
}
