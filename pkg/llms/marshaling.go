package llms

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// partJSON is the serialized form of a ContentPart. The Type discriminator
// selects which of the optional fields is populated.
type partJSON struct {
	Type         string            `json:"type"`
	Text         string            `json:"text,omitempty"`
	ToolCall     *ToolCall         `json:"tool_call,omitempty"`
	ToolResponse *ToolCallResponse `json:"tool_response,omitempty"`
}

type messageJSON struct {
	Role  Role       `json:"role"`
	Parts []partJSON `json:"parts"`
}

const (
	partTypeText         = "text"
	partTypeToolCall     = "tool_call"
	partTypeToolResponse = "tool_response"
)

// MarshalJSON implements json.Marshaler for Message.
func (m Message) MarshalJSON() ([]byte, error) {
	out := messageJSON{
		Role:  m.Role,
		Parts: make([]partJSON, 0, len(m.Parts)),
	}
	for _, part := range m.Parts {
		switch p := part.(type) {
		case TextContent:
			out.Parts = append(out.Parts, partJSON{Type: partTypeText, Text: p.Text})
		case ToolCall:
			tc := p
			out.Parts = append(out.Parts, partJSON{Type: partTypeToolCall, ToolCall: &tc})
		case ToolCallResponse:
			tr := p
			out.Parts = append(out.Parts, partJSON{Type: partTypeToolResponse, ToolResponse: &tr})
		default:
			return nil, errors.Newf("unsupported content part: %T", part)
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler for Message.
func (m *Message) UnmarshalJSON(data []byte) error {
	var in messageJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.WithMessage(err, "failed to unmarshal message")
	}
	m.Role = in.Role
	m.Parts = make([]ContentPart, 0, len(in.Parts))
	for _, part := range in.Parts {
		switch part.Type {
		case partTypeText:
			m.Parts = append(m.Parts, TextContent{Text: part.Text})
		case partTypeToolCall:
			if part.ToolCall == nil {
				return errors.New("tool_call part without payload")
			}
			m.Parts = append(m.Parts, *part.ToolCall)
		case partTypeToolResponse:
			if part.ToolResponse == nil {
				return errors.New("tool_response part without payload")
			}
			m.Parts = append(m.Parts, *part.ToolResponse)
		default:
			return errors.Newf("unsupported content part type: %q", part.Type)
		}
	}
	return nil
}
