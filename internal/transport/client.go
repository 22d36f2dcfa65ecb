// Package transport issues single GraphQL request/response round trips
// against the remote platform. It distinguishes gateway timeouts from all
// other failures and applies no retry policy of its own.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rpggio/boardsync/internal/config"
	"github.com/rpggio/boardsync/internal/errlog"
)

// Client performs authenticated GraphQL calls.
type Client struct {
	cfg    config.APIConfig
	http   *http.Client
	logger *slog.Logger
	errs   *errlog.Log
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// New creates a Client. If cfg.CACertPath is set, the file is added to
// the TLS root pool.
func New(cfg config.APIConfig, logger *slog.Logger, errs *errlog.Log) (*Client, error) {
	httpClient := &http.Client{Timeout: 5 * time.Minute}
	if cfg.CACertPath != "" {
		pem, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("transport: read ca cert: %w", err)
		}
		pool, err := x509.SystemCertPool()
		if err != nil {
			pool = x509.NewCertPool()
		}
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("transport: no certificates in %s", cfg.CACertPath)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: pool},
		}
	}
	return &Client{cfg: cfg, http: httpClient, logger: logger, errs: errs}, nil
}

// Send posts one query or mutation with its variables and returns the
// response's data payload. Failures are written to the error log and
// returned unchanged in kind: ErrNotConfigured for missing credentials,
// ErrGatewayTimeout for HTTP 504, *APIError for everything else.
func (c *Client) Send(ctx context.Context, document string, variables map[string]any) (json.RawMessage, error) {
	op := operationName(document)
	reqID := uuid.NewString()

	if c.cfg.Token == "" || c.cfg.URL == "" {
		err := fmt.Errorf("transport: %w", ErrNotConfigured)
		c.fail(op, reqID, 0, 0, "config_error", err)
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{
		"query":     document,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		apiErr := &APIError{Message: err.Error()}
		c.fail(op, reqID, 0, elapsed, "connection_error", apiErr)
		return nil, apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: err.Error()}
		c.fail(op, reqID, resp.StatusCode, elapsed, "read_error", apiErr)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusGatewayTimeout {
		err := fmt.Errorf("transport: %w while calling %s", ErrGatewayTimeout, op)
		c.fail(op, reqID, resp.StatusCode, elapsed, "timeout", err)
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		c.fail(op, reqID, resp.StatusCode, elapsed, "http_error", apiErr)
		return nil, apiErr
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "malformed response: " + err.Error()}
		c.fail(op, reqID, resp.StatusCode, elapsed, "decode_error", apiErr)
		return nil, apiErr
	}
	if len(env.Errors) > 0 {
		msgs := make([]string, len(env.Errors))
		for i, e := range env.Errors {
			msgs[i] = e.Message
		}
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "graphql: " + strings.Join(msgs, "; ")}
		c.fail(op, reqID, resp.StatusCode, elapsed, "graphql_error", apiErr)
		return nil, apiErr
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: "response missing data field"}
		c.fail(op, reqID, resp.StatusCode, elapsed, "empty_data", apiErr)
		return nil, apiErr
	}

	if c.logger != nil {
		c.logger.Debug("api call succeeded", "operation", op, "elapsed", elapsed)
	}
	return env.Data, nil
}

func (c *Client) fail(op, reqID string, status int, elapsed time.Duration, kind string, err error) {
	if c.logger != nil {
		c.logger.Error("api call failed, details in error log", "operation", op, "kind", kind)
	}
	c.errs.Write(errlog.Record{
		Operation:  op,
		RequestID:  reqID,
		StatusCode: status,
		Elapsed:    elapsed,
		Kind:       kind,
		Message:    err.Error(),
	})
}

// operationName extracts the named operation from a document, for
// diagnostics.
func operationName(document string) string {
	fields := strings.Fields(document)
	for i, f := range fields {
		if f != "query" && f != "mutation" {
			continue
		}
		if i+1 < len(fields) {
			name := fields[i+1]
			if cut := strings.IndexAny(name, "({"); cut > 0 {
				name = name[:cut]
			}
			return name
		}
		break
	}
	return "anonymous"
}
