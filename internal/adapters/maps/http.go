package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"freight-estimate-service/internal/platform/obs"
)

// StatusError is returned when a provider answers with a 4xx/5xx status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Code %d: %s", e.Code, e.Body)
}

// Retryable reports whether the status is worth another attempt.
func (e *StatusError) Retryable() bool {
	switch e.Code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// httpClient is the transport shared by the JSON-over-HTTP providers.
type httpClient struct {
	name    string
	session *http.Client
	headers map[string]string
	metrics *obs.Metrics
}

func newHTTPClient(name string, session *http.Client, headers map[string]string, metrics *obs.Metrics) *httpClient {
	if session == nil {
		// Per-call deadlines come from the caller's context.
		session = &http.Client{Timeout: 60 * time.Second}
	}
	return &httpClient{name: name, session: session, headers: headers, metrics: metrics}
}

func (c *httpClient) newRequest(
	ctx context.Context,
	method string,
	url string,
	body io.Reader,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func (c *httpClient) do(req *http.Request) (*http.Response, error) {
	resp, err := c.session.Do(req)
	if err != nil {
		c.metrics.ProviderRequest(c.name, "error")
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		c.metrics.ProviderRequest(c.name, "status_"+strconv.Itoa(resp.StatusCode))
		return nil, &StatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(b)),
		}
	}
	c.metrics.ProviderRequest(c.name, "ok")
	return resp, nil
}

// doJSON executes req and decodes the JSON body into out.
func (c *httpClient) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", c.name, err)
	}
	return nil
}
