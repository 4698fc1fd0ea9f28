// Package apiclient is the HTTP layer shared by every backend client. A
// Client is scoped to one backend prefix; Call performs exactly one request
// and returns either the unwrapped envelope data or an *Error.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/envelope"
)

const (
	// HeaderUserID carries the acting user on every request.
	HeaderUserID = "X-User-Id"

	// DefaultActor is sent when the caller has no user identity.
	DefaultActor = "SYSTEM"
)

var tracer = otel.Tracer("github.com/WailSalutem-Health-Care/hospital-console/apiclient")

// MetricsRecorder records one completed backend call.
type MetricsRecorder interface {
	RecordClientCall(ctx context.Context, backend, method string, statusCode int, durationMs float64)
}

// Client issues requests against one backend prefix, e.g. /apt-api/v1.
type Client struct {
	baseURL    string
	prefix     string
	httpClient *http.Client
	logger     zerolog.Logger
	actor      string
	metrics    MetricsRecorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithActor sets the actor used when a request does not name one.
func WithActor(actor string) Option {
	return func(c *Client) {
		if strings.TrimSpace(actor) != "" {
			c.actor = actor
		}
	}
}

// WithMetrics attaches a recorder for call counts and latency.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for baseURL+prefix.
func New(baseURL, prefix string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     "/" + strings.Trim(prefix, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		actor:      DefaultActor,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Prefix returns the backend path prefix the client is scoped to.
func (c *Client) Prefix() string {
	return c.prefix
}

// Request describes one call relative to the client prefix.
type Request struct {
	Method string
	Path   string
	Query  *Query
	Body   any
	// Actor overrides the client's default actor for this call.
	Actor string
}

// Call performs req and returns the envelope's data field.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	env, err := CallEnvelope[T](ctx, c, req)
	if err != nil {
		var zero T
		return zero, err
	}
	return env.Data, nil
}

// CallEnvelope performs req and returns the whole envelope. A few endpoints
// answer with a body the caller consumes as-is rather than its data field.
func CallEnvelope[T any](ctx context.Context, c *Client, req Request) (envelope.Envelope[T], error) {
	var env envelope.Envelope[T]

	ctx, span := tracer.Start(ctx, "apiclient.Call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("backend.prefix", c.prefix),
			attribute.String("backend.path", req.Path),
		),
	)
	defer span.End()

	start := time.Now()
	res, err := c.do(ctx, req)
	elapsed := time.Since(start)
	status := res.status

	if c.metrics != nil {
		c.metrics.RecordClientCall(ctx, c.prefix, req.Method, status, float64(elapsed.Milliseconds()))
	}

	logEvt := c.logger.Debug().
		Str("method", req.Method).
		Str("backend", c.prefix).
		Str("path", req.Path).
		Int("status", status).
		Dur("latency", elapsed)

	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}

	if status != 0 && (status < 200 || status > 299) {
		apiErr := &Error{
			StatusCode: status,
			Message:    envelope.ErrorMessage(envelope.MessageFromBody(res.body), res.reason, err),
			cause:      err,
		}
		logEvt.Str("error", apiErr.Message).Msg("backend call rejected")
		span.SetStatus(codes.Error, apiErr.Message)
		return env, apiErr
	}

	if err != nil {
		apiErr := &Error{StatusCode: status, Message: envelope.ErrorMessage("", "", err), cause: err}
		logEvt.Err(err).Msg("backend call failed")
		span.SetStatus(codes.Error, apiErr.Message)
		return env, apiErr
	}

	env, err = envelope.DecodeEnvelope[T](res.body)
	if err != nil {
		apiErr := &Error{StatusCode: status, Message: envelope.FallbackMessage, cause: err}
		logEvt.Err(err).Msg("backend response unreadable")
		span.SetStatus(codes.Error, err.Error())
		return env, apiErr
	}

	logEvt.Msg("backend call")
	return env, nil
}

// reply is what came back from the wire. status is zero when no response
// arrived; reason is the server's own reason phrase.
type reply struct {
	status int
	reason string
	body   []byte
}

func (c *Client) do(ctx context.Context, req Request) (reply, error) {
	var reader io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return reply{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	target := c.baseURL + c.prefix + req.Path
	if qs := req.Query.Encode(); qs != "" {
		target += "?" + qs
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return reply{}, fmt.Errorf("failed to build request: %w", err)
	}

	actor := c.actor
	if strings.TrimSpace(req.Actor) != "" {
		actor = req.Actor
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(HeaderUserID, actor)
	if reader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return reply{}, err
	}
	defer resp.Body.Close()

	res := reply{status: resp.StatusCode, reason: reasonPhrase(resp)}
	res.body, err = io.ReadAll(resp.Body)
	if err != nil {
		res.body = nil
		return res, fmt.Errorf("failed to read response body: %w", err)
	}
	return res, nil
}

// reasonPhrase returns the text after the code in the status line, falling
// back to the standard phrase when the server sent none.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}

// Error is the single failure type returned by Call. Its Error() is exactly
// the message shown to the user.
type Error struct {
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// EmptyBody is sent by state-change endpoints that take no fields.
var EmptyBody = struct{}{}
