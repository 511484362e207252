// Package mailgun provides the send_email tool and the HTTP gateway
// behind it.
package mailgun

import (
	"context"
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"

	"github.com/sorcery-ai/concierge/chatmodel"
	"github.com/sorcery-ai/concierge/pkg/llmutils"
	"github.com/sorcery-ai/concierge/pkg/schema"
	"github.com/sorcery-ai/concierge/tools"
)

// ToolName is the function name the model calls.
const ToolName = "send_email"

// SuccessMessage is the tool output on a 200 from the provider.
const SuccessMessage = "Email sent successfully!"

// SendRequest represents the tool input. Provider credentials are held by
// the Gateway and are deliberately absent from this schema.
type SendRequest struct {
	Sender    string `json:"sender" yaml:"sender" validate:"required" jsonschema:"title=sender,description=The email address of the sender."`
	Recipient string `json:"recipient" yaml:"recipient" validate:"required" jsonschema:"title=recipient,description=The email address of the recipient."`
	Subject   string `json:"subject" yaml:"subject" validate:"required" jsonschema:"title=subject,description=The subject line of the email."`
	Body      string `json:"body" yaml:"body" validate:"required" jsonschema:"title=body,description=The plain text body of the email."`
}

// SendResult carries the outcome text reported back to the model.
type SendResult struct {
	Status string `json:"Status" yaml:"Status" jsonschema:"title=Status,description=The outcome of the send attempt."`
}

func (r *SendResult) GetContent() string {
	return r.Status
}

// Tool sends an email through the Gateway. Provider failures are reported
// in the result text so the model can relay them, they do not fail the call.
type Tool struct {
	name        string
	description string
	funcParams  *jsonschema.Schema

	gateway  *Gateway
	validate *validator.Validate
}

var _ tools.Tool[SendRequest, SendResult] = (*Tool)(nil)

// New returns a send_email tool backed by the given gateway.
func New(gateway *Gateway) (*Tool, error) {
	sc, err := schema.New(reflect.TypeOf(SendRequest{}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create schema")
	}
	t := &Tool{
		name:        ToolName,
		description: "Send an email to a recipient with a subject and body.",
		funcParams:  sc.Parameters,
		gateway:     gateway,
		validate:    validator.New(),
	}
	return t, nil
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

func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	var req SendRequest
	if err := llmutils.UnmarshalLenient([]byte(input), &req); err != nil {
		return "", errors.WithStack(chatmodel.ErrFailedUnmarshalInput)
	}
	if err := t.validate.Struct(&req); err != nil {
		return "", errors.WithStack(chatmodel.ErrFailedUnmarshalInput)
	}

	res, err := t.Run(ctx, &req)
	if err != nil {
		return "", err
	}
	return res.GetContent(), nil
}

func (t *Tool) Run(ctx context.Context, req *SendRequest) (*SendResult, error) {
	err := t.gateway.Send(ctx, Message{
		Sender:    req.Sender,
		Recipient: req.Recipient,
		Subject:   req.Subject,
		Body:      req.Body,
	})
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return &SendResult{
				Status: "Failed to send email: " + httpErr.Error(),
			}, nil
		}
		return &SendResult{
			Status: "Failed to reach the email provider: " + err.Error(),
		}, nil
	}
	return &SendResult{Status: SuccessMessage}, nil
}
