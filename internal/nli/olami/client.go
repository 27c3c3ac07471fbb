// Package olami implements nli.Interpreter on top of the OLAMI cloud NLI API.
//
// Every request is authenticated with a shared-secret signature over the app
// key and a millisecond timestamp, and carries the text in a JSON envelope.
// The client keeps no per-call state, so one Client may serve concurrent
// callers as long as its http.Client does.
package olami

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/drewdunne/nlibot/internal/config"
	"github.com/drewdunne/nlibot/internal/nli"
)

const defaultBaseURL = "https://tw.olami.ai/cloudservice/api"

// Ensure Client implements nli.Interpreter.
var _ nli.Interpreter = (*Client)(nil)

func init() {
	nli.Register(nli.StrategyOlami, func(cfg config.NLIConfig) (nli.Interpreter, error) {
		return NewFromConfig(cfg.Olami)
	})
}

// NLIConfig is the reserved extension point for per-request NLI settings.
// The service side of this feature is not finished; passing one fails.
type NLIConfig struct {
	SlotDisplay bool
}

// Client talks to the OLAMI NLI endpoint.
type Client struct {
	appKey     string
	appSecret  string
	customerID string
	inputType  int
	nliConfig  *NLIConfig
	baseURL    string
	client     *http.Client
	now        func() time.Time
}

// Option configures the client.
type Option func(*Client)

// WithCustomerID sets the cusid sent with every request.
func WithCustomerID(id string) Option {
	return func(c *Client) {
		c.customerID = id
	}
}

// WithInputType sets the input type (InputTypeSpeech or InputTypeText).
func WithInputType(t int) Option {
	return func(c *Client) {
		c.inputType = t
	}
}

// WithNLIConfig sets the extension config. Not supported yet.
func WithNLIConfig(cfg *NLIConfig) Option {
	return func(c *Client) {
		c.nliConfig = cfg
	}
}

// WithBaseURL sets a custom endpoint (for testing or other regions).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithClock sets the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New creates a client for the given credentials.
func New(appKey, appSecret string, opts ...Option) (*Client, error) {
	c := &Client{
		appKey:    appKey,
		appSecret: appSecret,
		inputType: InputTypeText,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.appKey == "" {
		return nil, &nli.ConfigurationError{Field: "app key", Reason: "must not be empty"}
	}
	if c.appSecret == "" {
		return nil, &nli.ConfigurationError{Field: "app secret", Reason: "must not be empty"}
	}
	if c.inputType != InputTypeSpeech && c.inputType != InputTypeText {
		return nil, &nli.ConfigurationError{
			Field:  "input type",
			Reason: fmt.Sprintf("%d is not %d or %d", c.inputType, InputTypeSpeech, InputTypeText),
		}
	}
	if c.nliConfig != nil {
		return nil, &nli.UnsupportedFeatureError{Feature: "nli config"}
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")
	return c, nil
}

// NewFromConfig creates a client from the service configuration.
func NewFromConfig(cfg config.OlamiConfig) (*Client, error) {
	opts := []Option{WithInputType(cfg.InputType)}
	if cfg.CustomerID != "" {
		opts = append(opts, WithCustomerID(cfg.CustomerID))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, WithHTTPClient(&http.Client{Timeout: cfg.Timeout()}))
	}
	return New(cfg.AppKey, cfg.AppSecret, opts...)
}

// Parameters assembles the signed request parameters for text at the given
// timestamp.
func (c *Client) Parameters(text string, timestampMs int64) (url.Values, error) {
	rq, err := EncodeEnvelope(NewEnvelope(c.inputType, text))
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("appkey", c.appKey)
	params.Set("api", apiNLI)
	params.Set("timestamp", strconv.FormatInt(timestampMs, 10))
	params.Set("sign", Sign(c.appKey, c.appSecret, timestampMs))
	params.Set("rq", rq)
	if c.customerID != "" {
		params.Set("cusid", c.customerID)
	}
	return params, nil
}

// Query sends text to the service and returns the validated nli payload.
func (c *Client) Query(ctx context.Context, text string) (*Payload, error) {
	start := time.Now()
	payload, err := c.query(ctx, text)
	observeRequest(err, time.Since(start))
	return payload, err
}

func (c *Client) query(ctx context.Context, text string) (*Payload, error) {
	params, err := c.Parameters(text, c.now().UnixMilli())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &nli.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &nli.TransportError{StatusCode: resp.StatusCode}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &nli.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}

	if result.Status != statusOK {
		return nil, &nli.StatusError{Status: result.Status}
	}

	var data resultData
	if len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, &data); err != nil {
			return nil, &nli.MalformedResponseError{Reason: fmt.Sprintf("decoding data.nli: %v", err)}
		}
	}
	if data.NLI == nil {
		return nil, &nli.MalformedResponseError{Reason: "missing data.nli"}
	}
	return data.NLI, nil
}

// Interpret sends text to the service and extracts its first interpretation.
func (c *Client) Interpret(ctx context.Context, text string) (nli.Intent, error) {
	start := time.Now()
	intent, err := c.interpret(ctx, text)
	observeRequest(err, time.Since(start))
	return intent, err
}

func (c *Client) interpret(ctx context.Context, text string) (nli.Intent, error) {
	payload, err := c.query(ctx, text)
	if err != nil {
		return nli.Intent{}, err
	}
	return ExtractIntent(payload)
}
