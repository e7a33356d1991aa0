// Package client is the single request pipeline every backend call goes
// through. It attaches the bearer token, unwraps the {code, message, data}
// envelope, raises user notifications on failure and ends the session on 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/labmall/storefront/internal/logging"
)

const maxBodyBytes = 32 << 20

// Session is the part of the session store the pipeline needs.
type Session interface {
	Token() string
	Expire(ctx context.Context) error
}

// UnauthorizedHandler runs after a 401 has cleared the session. Shells use
// it to apply their own policy (reload or redirect to login).
type UnauthorizedHandler func(ctx context.Context)

type Config struct {
	BaseURL        string
	HTTPClient     *http.Client
	Timeout        time.Duration
	Session        Session
	Notifier       Notifier
	OnUnauthorized UnauthorizedHandler

	// RateLimitRPS caps outbound calls per second; zero disables the limiter.
	RateLimitRPS   float64
	RateLimitBurst int
}

type Client struct {
	baseURL  string
	http     *http.Client
	session  Session
	notifier Notifier
	limiter  *rate.Limiter
	metrics  *metrics

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

func New(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("client: base URL is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", base, err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = discardNotifier{}
	}

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}

	return &Client{
		baseURL:        base,
		http:           httpClient,
		session:        cfg.Session,
		notifier:       notifier,
		limiter:        limiter,
		metrics:        newMetrics(),
		onUnauthorized: cfg.OnUnauthorized,
	}, nil
}

// BaseURL returns the backend address calls are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// SetUnauthorizedHandler replaces the handler run after a 401.
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	c.onUnauthorized = h
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do performs one call and decodes the envelope's data into out (which may
// be nil). Failures are notified before the error is returned.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	start := time.Now()
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return c.fail(ctx, method, path, start, err)
	}

	if resp.status < 200 || resp.status > 299 {
		return c.fail(ctx, method, path, start, c.statusError(ctx, resp))
	}

	env, err := parseEnvelope(resp.body)
	if err != nil {
		c.notify(ctx, LevelError, MsgRequestFailed)
		c.finish(ctx, method, path, start, outcomeMalformed, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if env.Code != SuccessCode {
		return c.fail(ctx, method, path, start, businessError(env))
	}
	if err := env.decode(out); err != nil {
		c.notify(ctx, LevelError, MsgRequestFailed)
		c.finish(ctx, method, path, start, outcomeMalformed, err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.finish(ctx, method, path, start, outcomeOK, nil)
	return nil
}

// DoRaw performs a call whose success body is not an envelope (a file
// download). Errors follow the same rules as Do.
func (c *Client) DoRaw(ctx context.Context, method, path string, query url.Values) ([]byte, string, error) {
	start := time.Now()
	resp, err := c.send(ctx, method, path, query, nil)
	if err != nil {
		return nil, "", c.fail(ctx, method, path, start, err)
	}
	if resp.status < 200 || resp.status > 299 {
		return nil, "", c.fail(ctx, method, path, start, c.statusError(ctx, resp))
	}

	// A JSON body on a download endpoint is an envelope carrying a failure.
	if strings.HasPrefix(resp.contentType, "application/json") {
		if env, err := parseEnvelope(resp.body); err == nil && env.Code != SuccessCode {
			return nil, "", c.fail(ctx, method, path, start, businessError(env))
		}
	}

	c.finish(ctx, method, path, start, outcomeOK, nil)
	return resp.body, resp.contentType, nil
}

type response struct {
	status      int
	contentType string
	body        []byte
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Method: method, Path: path, Err: err}
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestID)
	c.authorize(ctx, req)

	c.metrics.inFlight.Inc()
	res, err := c.http.Do(req)
	c.metrics.inFlight.Dec()
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: fmt.Errorf("read body: %w", err)}
	}

	return &response{
		status:      res.StatusCode,
		contentType: res.Header.Get("Content-Type"),
		body:        raw,
	}, nil
}

// statusError builds the error for a non-2xx response. A 401 also ends the
// session and hands control to the unauthorized handler, unless the call
// carried a WithBearer token the session never held.
func (c *Client) statusError(ctx context.Context, resp *response) *StatusError {
	serr := &StatusError{
		StatusCode: resp.status,
		Message:    errorMessage(resp.body),
		Body:       resp.body,
	}
	if resp.status != http.StatusUnauthorized || hasBearerOverride(ctx) {
		return serr
	}

	if c.session != nil {
		if err := c.session.Expire(ctx); err != nil {
			logging.NewLogger(ctx).LogError("expire_session", err)
		}
	}
	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h(ctx)
	}
	return serr
}

// fail notifies the user about err, records it and returns it unchanged.
func (c *Client) fail(ctx context.Context, method, path string, start time.Time, err error) error {
	var (
		serr *StatusError
		terr *TransportError
		berr *BusinessError
	)
	outcome := outcomeHTTPError
	switch {
	case errors.As(err, &serr) && serr.StatusCode == http.StatusUnauthorized:
		outcome = outcomeUnauthorized
		c.notify(ctx, LevelError, MsgLoginRequired)
	case errors.As(err, &serr):
		msg := serr.Message
		if msg == "" {
			msg = MsgHTTPError
		}
		c.notify(ctx, LevelError, msg)
	case errors.As(err, &terr):
		outcome = outcomeTransport
		c.notify(ctx, LevelError, MsgNetworkFailure)
	case errors.As(err, &berr):
		outcome = outcomeBusiness
		c.notify(ctx, LevelError, berr.Message)
	default:
		outcome = outcomeTransport
		c.notify(ctx, LevelError, MsgRequestFailed)
	}
	c.finish(ctx, method, path, start, outcome, err)
	return err
}

func (c *Client) finish(ctx context.Context, method, path string, start time.Time, outcome string, err error) {
	elapsed := time.Since(start)
	c.metrics.record(method, path, outcome, elapsed)

	log := logging.NewLogger(ctx).
		With("method", method).
		With("path", path).
		With("outcome", outcome).
		With("duration_ms", elapsed.Milliseconds())
	if err != nil {
		log.LogWarnf("api_call", "%s %s failed: %v", method, path, err)
		return
	}
	log.LogDebugf("api_call", "%s %s ok", method, path)
}

func (c *Client) notify(ctx context.Context, level Level, msg string) {
	c.notifier.Notify(ctx, Notification{Level: level, Message: msg})
}

func businessError(env envelope) *BusinessError {
	msg := env.Message
	if msg == "" {
		msg = MsgRequestFailed
	}
	return &BusinessError{Code: env.Code, Message: msg, Data: env.Data}
}
