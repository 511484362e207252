// Package clock provides the current_time tool.
package clock

import (
	"context"
	"reflect"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/invopop/jsonschema"

	"github.com/sorcery-ai/concierge/pkg/schema"
	"github.com/sorcery-ai/concierge/tools"
)

// ToolName is the function name the model calls.
const ToolName = "current_time"

// Clock reports the current time. System code uses SystemClock,
// tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock returns the wall clock.
func SystemClock() Clock {
	return systemClock{}
}

// TimeRequest represents the tool input. The tool takes no arguments,
// anything the model sends is ignored.
type TimeRequest struct{}

// TimeResult carries the formatted timestamp.
type TimeResult struct {
	Time string `json:"Time" yaml:"Time" jsonschema:"title=Time,description=The current UTC time in ISO-8601 format."`
}

func (r *TimeResult) GetContent() string {
	return r.Time
}

// Tool reports the current UTC time in ISO-8601 format with an
// explicit +00:00 offset.
type Tool struct {
	name        string
	description string
	funcParams  *jsonschema.Schema

	clock Clock
}

var _ tools.Tool[TimeRequest, TimeResult] = (*Tool)(nil)

// New returns a current_time tool backed by the system clock.
func New() (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(TimeRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	t := &Tool{
		name:        ToolName,
		description: "Get the current date and time in ISO format.",
		funcParams:  sc.Parameters,
		clock:       SystemClock(),
	}
	return t, nil
}

// WithClock replaces the time source.
func (t *Tool) WithClock(clock Clock) *Tool {
	t.clock = clock
	return t
}

func (t *Tool) Name() string {
	return t.name
}

func (t *Tool) Description() string {
	return t.description
}

func (t *Tool) Parameters() *jsonschema.Schema {
	return t.funcParams
}

// Call ignores the input payload, malformed arguments cannot fail this tool.
func (t *Tool) Call(ctx context.Context, _ string) (string, error) {
	res, err := t.Run(ctx, &TimeRequest{})
	if err != nil {
		return "", err
	}
	return res.GetContent(), nil
}

func (t *Tool) Run(_ context.Context, _ *TimeRequest) (*TimeResult, error) {
	return &TimeResult{Time: FormatTime(t.clock.Now())}, nil
}

// FormatTime renders the time in UTC as ISO-8601 with a +00:00 offset,
// for example 2024-01-01T00:00:00+00:00.
func FormatTime(ts time.Time) string {
	return ts.UTC().Format("2006-01-02T15:04:05") + "+00:00"
}
