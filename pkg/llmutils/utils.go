// Package llmutils provides helpers for handling model-produced text, which
// is JSON-shaped but rarely strict JSON.
package llmutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/bububa/ljson"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/sorcery-ai/concierge/pkg/llms"
)

// CleanJSON returns JSON by trimming prefixes and postfixes,
// as a model can reply like `Here you go: {json}`.
func CleanJSON(bs []byte) []byte {
	return trimPostfixAfterJSON(trimPrefixBeforeJSON(bs))
}

// Removes any prefixes before the JSON (like "Sure, here you go:")
func trimPrefixBeforeJSON(bs []byte) []byte {
	startObject := bytes.IndexByte(bs, '{')
	startArray := bytes.IndexByte(bs, '[')

	var start int
	if startObject == -1 && startArray == -1 {
		return bs
	} else if startObject == -1 {
		start = startArray
	} else if startArray == -1 {
		start = startObject
	} else {
		start = min(startObject, startArray)
	}

	return bs[start:]
}

// Removes any postfixes after the JSON
func trimPostfixAfterJSON(bs []byte) []byte {
	endObject := bytes.LastIndexByte(bs, '}')
	endArray := bytes.LastIndexByte(bs, ']')

	var end int
	if endObject == -1 && endArray == -1 {
		return bs
	} else if endObject == -1 {
		end = endArray
	} else if endArray == -1 {
		end = endObject
	} else {
		end = max(endObject, endArray)
	}

	return bs[:end+1]
}

// UnmarshalLenient decodes model-produced JSON into ret, tolerating leading
// chatter, trailing chatter and minor syntax damage.
func UnmarshalLenient(bs []byte, ret any) error {
	if err := ljson.Unmarshal(CleanJSON(bs), ret); err != nil {
		return errors.WithMessage(err, "failed to unmarshal input")
	}
	return nil
}

// ToJSON marshals the value, ignoring errors. Intended for log and tool
// output rendering only.
func ToJSON(v any) string {
	bs, _ := json.Marshal(v)
	return string(bs)
}

// ToJSONIndent marshals the value with indentation, ignoring errors.
func ToJSONIndent(v any) string {
	bs, _ := json.MarshalIndent(v, "", "  ")
	return string(bs)
}

// BackticksJSON wraps the provided JSON in a fenced code block.
func BackticksJSON(js string) string {
	return "```json\n" + js + "\n```"
}

// ToYAML marshals the value as YAML, ignoring errors.
func ToYAML(v any) string {
	bs, _ := yaml.Marshal(v)
	return string(bs)
}

// PrintMessages renders a message log in a human-readable transcript form.
func PrintMessages(w io.Writer, msgs []llms.Message) {
	for _, msg := range msgs {
		fmt.Fprintf(w, "%s:\n%s\n", msg.Role, msg.GetContent())
	}
}

// CountMessagesContentSize returns the total content size of the log in
// bytes, as sent to the provider.
func CountMessagesContentSize(messages []llms.Message) uint64 {
	var size uint64
	for _, m := range messages {
		size += uint64(len(m.GetContent()))
	}
	return size
}
