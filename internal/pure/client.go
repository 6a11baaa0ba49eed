// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pure is a client for the parts of the Pure web API the import uses:
// external persons, journal search and research outputs.
package pure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pure-import/internal/httputil"
	"github.com/pdiddy/pure-import/pkg/types"
)

// maxErrorBody bounds how much of an error response is kept on APIError.
const maxErrorBody = 4 << 10

// Client talks to one Pure instance. It is safe for sequential use; the
// import pipeline never shares it across goroutines.
type Client struct {
	http       *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	maxRetries int
	log        zerolog.Logger
}

// NewClient returns a client for cfg.BaseURL. A nil httpClient gets one
// with cfg.Timeout.
func NewClient(cfg types.PureConfig, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := cfg.BaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return &Client{
		http:       httpClient,
		baseURL:    base,
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		maxRetries: cfg.MaxRetries,
		log:        log.With().Str("component", "pure").Logger(),
	}
}

// do sends a JSON request to endpoint (relative to the base URL) and decodes
// a 2xx response body into out when out is non-nil. Idempotent requests are
// retried on 429; creates are sent exactly once.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out any, idempotent bool) error {
	u, err := url.JoinPath(c.baseURL, endpoint)
	if err != nil {
		return fmt.Errorf("building %s URL: %w", endpoint, err)
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s request: %w", endpoint, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var resp *http.Response
	if idempotent {
		resp, err = httputil.DoWithRetry(ctx, c.http, req, c.maxRetries, c.log)
	} else {
		resp, err = c.http.Do(req)
	}
	if err != nil {
		return fmt.Errorf("pure %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(msg)),
		}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing %s response: %w", endpoint, err)
	}
	return nil
}
