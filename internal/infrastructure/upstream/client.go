// Package upstream is the typed HTTP client for the remote voucher API. It is
// the only place the console talks to the network: every gateway in
// internal/core/ports is implemented here.
//
// Every upstream response is a JSON envelope carrying a success gate:
//
//	{"success": true, "message": "...", "<payload key>": ...}
//
// A non-2xx status or success=false is surfaced as domain.ErrUpstream wrapping
// the upstream message verbatim when one is present.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/madahotspot/voucher-console/internal/api/metrics"
	"github.com/madahotspot/voucher-console/internal/core/domain"
)

const defaultTimeout = 15 * time.Second

// Client is the shared transport for all resource gateways.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client for the given base URL. A default timeout is
// applied when none is provided.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// envelope is the part of every upstream response common to all resources.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// do performs one upstream call. The response body is decoded twice: once
// into the envelope for the success gate, then into out (which carries the
// resource-specific payload key) when provided. cookies, when non-empty, is
// sent as the Cookie header so the upstream sees its own session.
func (c *Client) do(ctx context.Context, method, path, cookies string, query url.Values, body, out any) error {
	_, err := c.doCapture(ctx, method, path, cookies, query, body, out)
	return err
}

// doCapture is do plus capture of the cookies the upstream sets on the
// response, serialized ready for replay. Only the login flow cares.
func (c *Client) doCapture(ctx context.Context, method, path, cookies string, query url.Values, body, out any) (string, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if cookies != "" {
		req.Header.Set("Cookie", cookies)
	}

	resource := resourceLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "transport_error").Inc()
		return "", fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "transport_error").Inc()
		return "", fmt.Errorf("%w: read response: %v", domain.ErrUpstream, err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on an error status still maps below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "unauthorized").Inc()
		if env.Message != "" {
			return "", fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, env.Message)
		}
		return "", domain.ErrInvalidCredentials
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		metrics.UpstreamRequestsTotal.WithLabelValues(resource, "error").Inc()
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Str("message", env.Message).Msg("upstream request failed")
		if env.Message != "" {
			return "", fmt.Errorf("%w: %s", domain.ErrUpstream, env.Message)
		}
		return "", fmt.Errorf("%w: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(resource, "ok").Inc()

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return "", fmt.Errorf("%w: decode response: %v", domain.ErrUpstream, err)
		}
	}
	return serializeCookies(resp.Cookies()), nil
}

// resourceLabel maps a request path to its first segment for metric labels.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}

// serializeCookies joins response cookies into a Cookie header value.
func serializeCookies(cookies []*http.Cookie) string {
	if len(cookies) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	return strings.Join(pairs, "; ")
}
