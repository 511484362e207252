package schema_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorcery-ai/concierge/pkg/schema"
)

type sendEmailRequest struct {
	Sender    string `json:"sender" jsonschema:"title=sender,description=The email address of the sender."`
	Recipient string `json:"recipient" jsonschema:"title=recipient,description=The email address of the recipient."`
	Subject   string `json:"subject" jsonschema:"title=subject,description=The subject line of the email."`
	Body      string `json:"body" jsonschema:"title=body,description=The plain text body of the email."`
}

type nestedRequest struct {
	Origin  sendEmailRequest   `json:"origin"`
	Copies  []sendEmailRequest `json:"copies,omitempty"`
	Comment string             `json:"comment,omitempty"`
}

func Test_Schema_New(t *testing.T) {
	sc, err := schema.New(reflect.TypeOf(sendEmailRequest{}))
	require.NoError(t, err)
	require.NotNil(t, sc.Parameters)

	assert.Equal(t, "object", sc.Parameters.Type)
	assert.Equal(t, []string{"sender", "recipient", "subject", "body"}, sc.Parameters.Required)

	var names []string
	for pair := sc.Parameters.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"sender", "recipient", "subject", "body"}, names)

	prop, ok := sc.Parameters.Properties.Get("sender")
	require.True(t, ok)
	assert.Equal(t, "string", prop.Type)
	assert.Equal(t, "The email address of the sender.", prop.Description)

	// the flattened schema has no $defs references left
	js, err := json.Marshal(sc.Parameters)
	require.NoError(t, err)
	assert.NotContains(t, string(js), "$ref")
}

func Test_Schema_Cached(t *testing.T) {
	sc1, err := schema.New(reflect.TypeOf(sendEmailRequest{}))
	require.NoError(t, err)
	sc2, err := schema.New(reflect.TypeOf(sendEmailRequest{}))
	require.NoError(t, err)
	assert.Same(t, sc1, sc2)
}

func Test_Schema_EmptyStruct(t *testing.T) {
	type timeRequest struct{}
	sc, err := schema.New(reflect.TypeOf(timeRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "object", sc.Parameters.Type)
	assert.Empty(t, sc.Parameters.Required)
}

func Test_Schema_Nested(t *testing.T) {
	sc, err := schema.New(reflect.TypeOf(nestedRequest{}))
	require.NoError(t, err)

	js, err := json.Marshal(sc.Parameters)
	require.NoError(t, err)
	assert.NotContains(t, string(js), "$ref")
	assert.Contains(t, string(js), "origin")
	assert.Contains(t, string(js), "recipient")
}

func Test_MustFromAny(t *testing.T) {
	s := schema.MustFromAny(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	})
	require.NotNil(t, s)
	assert.Equal(t, "object", s.Type)
}
