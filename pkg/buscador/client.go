// Package buscador is the client for the portal's legacy course search
// endpoint. The endpoint speaks a non-standard JSON-RPC dialect: request
// bodies use unquoted keys and an unquoted method name, so they are built as
// raw strings and never marshaled. Responses are ordinary JSON.
package buscador

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/logging"
	"github.com/unal-mcp/sia-mcp/pkg/ratelimit"
	"github.com/unal-mcp/sia-mcp/pkg/retry"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// Client calls the legacy search endpoint. All calls are rate limited and
// retried with backoff; after exhaustion the last error surfaces verbatim.
type Client struct {
	url     string
	http    *http.Client
	limiter *ratelimit.Limiter
	retry   retry.Options
	log     *logging.Logger
}

// NewClient creates a search client sharing the process-wide rate limiter.
func NewClient(limiter *ratelimit.Limiter) *Client {
	return NewClientForURL(config.URLJSONRPC, limiter)
}

// NewClientForURL creates a search client against an explicit endpoint URL.
func NewClientForURL(url string, limiter *ratelimit.Limiter) *Client {
	log, _ := logging.NewLogger("buscador")
	return &Client{
		url:     url,
		http:    &http.Client{Timeout: 30 * time.Second},
		limiter: limiter,
		retry:   retry.DefaultOptions(),
		log:     log,
	}
}

// SearchCourses runs a paged course search. level and typology accept either
// the caller-friendly names ("pregrado", "libre_eleccion") or the wire codes;
// plan filters by study plan code. The wire format puts the level code at
// positions 1 and 3.
func (c *Client) SearchCourses(ctx context.Context, query, level, typology, plan string, page, pageSize int) (*sia.RawSubjectResult, error) {
	levelCode := level
	if code, ok := config.Levels[level]; ok {
		levelCode = code
	}
	typologyCode := typology
	if code, ok := config.Typologies[typology]; ok {
		typologyCode = code
	}

	body := fmt.Sprintf("{ method: %s, params: ['%s', '%s', '%s', '%s', '%s', '', %d, %d] }",
		config.RPCMethodSearchCourses,
		escapeParam(query), levelCode, typologyCode, levelCode, escapeParam(plan),
		page, pageSize)

	var result sia.RawSubjectResult
	if err := c.request(ctx, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CourseGroups returns the raw groups of one course, including real-time
// seat counts.
func (c *Client) CourseGroups(ctx context.Context, courseCode string) ([]sia.RawGroup, error) {
	code, err := strconv.Atoi(strings.TrimSpace(courseCode))
	if err != nil {
		return nil, fmt.Errorf("invalid course code %q", courseCode)
	}

	body := fmt.Sprintf("{ method: %s, params: [%d , 0] }", config.RPCMethodGetCourseGroups, code)

	var result sia.JavaList[sia.RawGroup]
	if err := c.request(ctx, body, &result); err != nil {
		return nil, err
	}
	return result.List, nil
}

// rpcEnvelope is the standard-JSON half of the dialect.
type rpcEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// request posts a raw body and decodes the result into out. The endpoint
// expects text/plain; an application/json content type changes its behavior.
func (c *Client) request(ctx context.Context, body string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	c.log.Debugf("rpc request: %s", body)

	return retry.Do(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "text/plain")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		var envelope rpcEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return fmt.Errorf("malformed response: %w", err)
		}
		if len(envelope.Error) > 0 && string(envelope.Error) != "null" {
			return fmt.Errorf("json-rpc error: %s", envelope.Error)
		}
		return json.Unmarshal(envelope.Result, out)
	})
}

func escapeParam(value string) string {
	return strings.ReplaceAll(value, "'", `\'`)
}

// Close releases the client's logger.
func (c *Client) Close() {
	_ = c.log.Close()
}
