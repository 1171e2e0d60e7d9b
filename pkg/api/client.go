package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/borrmann/bautagebuch/pkg/logger"
)

const (
	HeaderRequestedWith = "X-Requested-With"
	HeaderCSRFToken     = "X-CSRFToken"
	requestedWithValue  = "XMLHttpRequest"
)

// Client calls the backend endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	csrf    string
	limiter *rate.Limiter
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithCSRFToken sets the token sent in the X-CSRFToken header.
func WithCSRFToken(token string) Option {
	return func(c *Client) {
		c.csrf = token
	}
}

// WithRateLimit limits outgoing requests to r per second with the given burst.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) {
		if r > 0 && burst > 0 {
			c.limiter = rate.NewLimiter(r, burst)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  slog.Default(),
		tracer:  otel.Tracer("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MaterialInfo is the category and unit of a material.
type MaterialInfo struct {
	Kategorie string `json:"kategorie"`
	Einheit   string `json:"einheit"`
}

// DashboardStats holds the dashboard counters keyed by stat name.
type DashboardStats struct {
	Success bool               `json:"success"`
	Stats   map[string]float64 `json:"stats"`
}

// DuplicateQuery identifies a measurement entry.
type DuplicateQuery struct {
	Datum    string `json:"datum"`
	Ort      string `json:"ort"`
	Material string `json:"material"`
}

type duplicateResponse struct {
	HasDuplicate bool `json:"hasDuplicate"`
}

// SubmitResponse is the answer of an AJAX form endpoint. Errors maps
// field names to messages the server rejected them with.
type SubmitResponse struct {
	Success  bool              `json:"success"`
	Message  string            `json:"message,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
	Reload   bool              `json:"reload,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
}

// DisplayMessage returns the message to show for the response,
// falling back to the generic success or failure text.
func (r SubmitResponse) DisplayMessage() string {
	if r.Message != "" {
		return r.Message
	}
	if r.Success {
		return MessageSaved
	}
	return MessageFailed
}

// MaterialInfo fetches category and unit of the material id.
func (c *Client) MaterialInfo(ctx context.Context, id string) (MaterialInfo, error) {
	var info MaterialInfo
	if id == "" {
		return info, ErrEmptyID
	}
	err := c.do(ctx, http.MethodGet, "/aufmass/api/material/"+url.PathEscape(id), nil, &info)
	return info, err
}

// DashboardStats fetches the dashboard counters.
func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &stats)
	return stats, err
}

// DeleteMaterial deletes the material id. Any 2xx status is success.
func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	return c.do(ctx, http.MethodDelete, "/admin/materials/"+url.PathEscape(id), nil, nil)
}

// CheckDuplicates reports whether an entry with the same date, location
// and material already exists.
func (c *Client) CheckDuplicates(ctx context.Context, q DuplicateQuery) (bool, error) {
	var resp duplicateResponse
	if err := c.do(ctx, http.MethodPost, "/api/check-duplicates", q, &resp); err != nil {
		return false, err
	}
	return resp.HasDuplicate, nil
}

// SubmitForm sends values as JSON to the form's action. An empty method
// means POST.
func (c *Client) SubmitForm(ctx context.Context, action, method string, values map[string]string) (SubmitResponse, error) {
	var resp SubmitResponse
	if method == "" {
		method = http.MethodPost
	}
	err := c.do(ctx, strings.ToUpper(method), action, values, &resp)
	return resp, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := c.tracer.Start(ctx, "api.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("api.path", path),
		),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return errors.Join(ErrRequestFailed, err)
		}
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("%w: encode body: %w", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(buf)
	}

	target := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		target = c.baseURL + path
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		span.RecordError(err)
		return errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set(HeaderRequestedWith, requestedWithValue)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrf != "" {
		req.Header.Set(HeaderCSRFToken, c.csrf)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		c.logger.LogAttrs(ctx, slog.LevelError, "api request failed",
			logger.Component("api"),
			logger.URL(target),
			logger.Error(err),
		)
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("%w: %s %s returned %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
		span.RecordError(err)
		c.logger.LogAttrs(ctx, slog.LevelWarn, "api request rejected",
			logger.Component("api"),
			logger.URL(target),
			slog.Int("status", resp.StatusCode),
		)
		return err
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		span.RecordError(err)
		return errors.Join(ErrDecode, err)
	}
	return nil
}
