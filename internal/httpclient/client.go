package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"

	"gitlab.com/phone-carrier/carrier-lookup/internal/carrier"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodySize bounds the response bodies decoded by the client
const maxBodySize = 1 << 20

var (
	// ErrUnexpectedStatus is wrapped by Error for non 2xx responses
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrInvalidBody is wrapped by Error when a body is not a JSON object
	ErrInvalidBody = errors.New("response body is not a JSON object")
)

// Options holds per request settings
type Options struct {
	// Auth is the HTTP Basic authentication pair, id and secret. It is not
	// sent when the id is empty.
	Auth [2]string
}

// Response is a successful response with its decoded JSON body
type Response struct {
	Status int
	Body   carrier.Response
}

// Error is a failed request. Response holds the decoded body when the server
// answered with a JSON object.
type Error struct {
	Status   int
	Response carrier.Response
	Err      error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("http request failed: %v", e.Err)
	}

	if code := e.Code(); code != nil {
		return fmt.Sprintf("http request failed with status %d and code %v: %v", e.Status, code, e.Err)
	}

	return fmt.Sprintf("http request failed with status %d: %v", e.Status, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Code returns the provider error code of the response, or nil
func (e *Error) Code() interface{} {
	if e.Response == nil {
		return nil
	}

	return e.Response["code"]
}

// Config configures a Client
type Config struct {
	Timeout        time.Duration
	RateLimit      float64
	RateLimitBurst int
	Transport      http.RoundTripper
}

// Client executes HTTP requests against JSON APIs
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a Client. Requests are rate limited when
// config.RateLimit is greater than zero.
func NewClient(config Config) *Client {
	transport := config.Transport
	if transport == nil {
		transport = DefaultTransport
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), config.RateLimitBurst)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
		limiter: limiter,
	}
}

// Execute performs a single request and decodes its JSON body. Failures are
// always returned as *Error.
func (c *Client) Execute(ctx context.Context, method, url string, opts Options) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &Error{Err: fmt.Errorf("waiting for rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, &Error{Err: err}
	}

	req.Header.Set("Accept", "application/json")
	if opts.Auth[0] != "" {
		req.SetBasicAuth(opts.Auth[0], opts.Auth[1])
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{Status: resp.StatusCode, Response: body, Err: ErrUnexpectedStatus}
	}

	if err != nil {
		return nil, &Error{Status: resp.StatusCode, Err: err}
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}

func decodeBody(r io.Reader) (carrier.Response, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var body carrier.Response
	if err := json.Unmarshal(data, &body); err != nil || body == nil {
		return nil, ErrInvalidBody
	}

	return body, nil
}
