package agenthttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	portdispatch "github.com/untangle-ai/agent-broker/internal/port/dispatch"
)

// Circuit breaker defaults for outbound agent calls. When deployed agents
// fail repeatedly the circuit opens and dispatches fail fast instead of
// piling requests onto a dead endpoint.
const (
	breakerMaxFailures uint32 = 5
	breakerTimeout            = 30 * time.Second
	breakerInterval           = 60 * time.Second
)

// Client is the shared HTTP client framework adapters call agents through.
// Breakers are scoped per endpoint host so one dead agent opening its
// circuit never blocks dispatches to the others; the broker imposes no
// per-call timeout of its own beyond the underlying http.Client's.
type Client struct {
	http *http.Client

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[[]byte]
}

func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		http:     httpClient,
		breakers: make(map[string]*gobreaker.CircuitBreaker[[]byte]),
	}
}

// breakerFor returns the circuit breaker for the host of rawURL, creating
// it on first use. An unparseable URL shares the "" breaker and fails on
// request construction anyway.
func (c *Client) breakerFor(rawURL string) *gobreaker.CircuitBreaker[[]byte] {
	host := ""
	if u, err := url.Parse(rawURL); err == nil {
		host = u.Host
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.breakers[host]; ok {
		return b
	}
	b := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "agent-upstream:" + host,
		MaxRequests: 1, // one probe in half-open
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("agent upstream circuit breaker state change",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	c.breakers[host] = b
	return b
}

// PostJSON sends body as JSON and returns the raw response payload.
// Transport errors and non-2xx statuses surface as ErrUpstreamUnavailable.
func (c *Client) PostJSON(ctx context.Context, url string, body any) ([]byte, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	raw, err := c.breakerFor(url).Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, payload)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", url, err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response from %s: %w", url, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", portdispatch.ErrUpstreamUnavailable, err)
	}
	return raw, nil
}
