package mailgun

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

// DefaultBaseURL is the Mailgun API endpoint.
const DefaultBaseURL = "https://api.mailgun.net"

// Doer performs HTTP requests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPError is returned by the gateway when the provider responds with a
// non-200 status. It carries the status code and response body verbatim.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d, %s", e.StatusCode, e.Body)
}

// Message is one outbound email.
type Message struct {
	Sender    string
	Recipient string
	Subject   string
	Body      string
}

// Gateway submits messages to the Mailgun v3 API, scoped by the sending
// domain and authenticated with the ("api", apiKey) basic-auth pair.
// Credentials are injected at construction and never appear in any
// model-visible schema.
type Gateway struct {
	domain     string
	apiKey     string
	baseURL    string
	httpClient Doer
}

// NewGateway returns a Gateway for the given sending domain.
func NewGateway(domain, apiKey string) *Gateway {
	return &Gateway{
		domain:     domain,
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
	}
}

func (g *Gateway) WithBaseURL(baseURL string) *Gateway {
	g.baseURL = strings.TrimSuffix(baseURL, "/")
	return g
}

func (g *Gateway) WithHTTPClient(client Doer) *Gateway {
	g.httpClient = client
	return g
}

// Send submits the message. A non-200 provider response is returned as
// *HTTPError with the status and body intact. Transport failures are
// returned wrapped.
func (g *Gateway) Send(ctx context.Context, msg Message) error {
	form := url.Values{}
	form.Set("from", msg.Sender)
	form.Set("to", msg.Recipient)
	form.Set("subject", msg.Subject)
	form.Set("text", msg.Body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", g.baseURL, g.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}
	req.SetBasicAuth("api", g.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to reach the email provider")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response")
	}

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return nil
}
