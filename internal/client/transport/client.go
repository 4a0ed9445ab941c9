package transport

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
	"time"

	"github.com/dmitrijs2005/healthcomp/internal/client/credentials"
	"github.com/dmitrijs2005/healthcomp/internal/client/telemetry"
	"github.com/dmitrijs2005/healthcomp/internal/logging"
	"github.com/google/uuid"
)

const (
	DefaultRefreshPath = "token/refresh/"
	DefaultObtainPath  = "token/"

	RequestIDHeader = "X-Request-ID"

	source = "transport"
)

// Doer is the subset of *http.Client the transport needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Request describes one logical backend call.
type Request struct {
	Method string
	// Path is relative to the base URL, e.g. "workout/12/".
	Path  string
	Query url.Values
	// Body is encoded as JSON when non-nil.
	Body any
	// Endpoint is a logical name attached to logs and telemetry.
	Endpoint string
}

// Response is a fully read backend response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

type Client struct {
	baseURL     *url.URL
	http        Doer
	creds       credentials.Store
	reporter    telemetry.Reporter
	logger      logging.Logger
	refreshPath string
	obtainPath  string
	newID       func() string
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option { return func(c *Client) { c.http = d } }

func WithReporter(r telemetry.Reporter) Option { return func(c *Client) { c.reporter = r } }

func WithLogger(l logging.Logger) Option { return func(c *Client) { c.logger = l } }

func WithRefreshPath(p string) Option { return func(c *Client) { c.refreshPath = p } }

func WithObtainPath(p string) Option { return func(c *Client) { c.obtainPath = p } }

// WithRequestID replaces the X-Request-ID generator.
func WithRequestID(fn func() string) Option { return func(c *Client) { c.newID = fn } }

// New builds a Client for baseURL, e.g. "http://localhost:8000/api/".
func New(baseURL string, creds credentials.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		baseURL:     u,
		http:        http.DefaultClient,
		creds:       creds,
		reporter:    telemetry.NopReporter{},
		logger:      logging.Discard(),
		refreshPath: DefaultRefreshPath,
		obtainPath:  DefaultObtainPath,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Credentials exposes the store the client reads tokens from.
func (c *Client) Credentials() credentials.Store {
	return c.creds
}

// Do executes req with the current access token and performs at most one
// refresh-and-retry cycle on 401.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	pair, err := c.creds.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	resp, err := c.exchange(ctx, req, pair.Access)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusUnauthorized {
		return c.finish(ctx, req, resp)
	}

	if pair.Refresh == "" {
		c.logger.Warn(ctx, "unauthorized and no refresh token held", "path", req.Path)
		return nil, &AuthError{Reason: ReasonNoRefreshToken}
	}

	next, err := c.refresh(ctx, pair)
	if err != nil {
		return nil, err
	}

	resp, err = c.exchange(ctx, req, next.Access)
	if err != nil {
		return nil, err
	}
	return c.finish(ctx, req, resp)
}

// DoJSON runs Do and decodes a non-empty response body into out.
func (c *Client) DoJSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return decode(req, resp, out)
}

// ObtainPair exchanges login credentials for a token pair. It does not touch
// the credential store; storing the pair is the caller's job.
func (c *Client) ObtainPair(ctx context.Context, email, password string) (credentials.Pair, error) {
	req := Request{
		Method:   http.MethodPost,
		Path:     c.obtainPath,
		Body:     obtainRequest{Email: email, Password: password},
		Endpoint: "obtainToken",
	}

	resp, err := c.exchange(ctx, req, "")
	if err != nil {
		return credentials.Pair{}, err
	}
	if resp, err = c.finish(ctx, req, resp); err != nil {
		return credentials.Pair{}, err
	}

	var tokens tokenResponse
	if err := decode(req, resp, &tokens); err != nil {
		return credentials.Pair{}, err
	}
	if tokens.Access == "" {
		return credentials.Pair{}, fmt.Errorf("%s: response carries no access token", req.Path)
	}
	return credentials.Pair{Access: tokens.Access, Refresh: tokens.Refresh}, nil
}

type obtainRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type tokenResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

func (c *Client) refresh(ctx context.Context, pair credentials.Pair) (credentials.Pair, error) {
	req := Request{
		Method:   http.MethodPost,
		Path:     c.refreshPath,
		Body:     refreshRequest{Refresh: pair.Refresh},
		Endpoint: "refreshToken",
	}
	c.logger.Warn(ctx, "access token rejected, refreshing")

	resp, err := c.exchange(ctx, req, "")
	if err != nil {
		// Credentials are kept on network faults.
		return credentials.Pair{}, err
	}
	if resp, err = c.finish(ctx, req, resp); err != nil {
		if serverFault(err) {
			return credentials.Pair{}, err
		}
		return credentials.Pair{}, c.reject(ctx, err)
	}

	var tokens tokenResponse
	err = decode(req, resp, &tokens)
	if err == nil && tokens.Access == "" {
		err = errors.New("refresh response carries no access token")
	}
	if err != nil {
		return credentials.Pair{}, c.reject(ctx, err)
	}

	next := credentials.Pair{Access: tokens.Access, Refresh: pair.Refresh}
	if tokens.Refresh != "" {
		next.Refresh = tokens.Refresh
	}
	if err := c.creds.Set(ctx, next); err != nil {
		return credentials.Pair{}, fmt.Errorf("store refreshed credentials: %w", err)
	}
	return next, nil
}

// serverFault reports a 5xx answer, which says nothing about the token.
func serverFault(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status >= http.StatusInternalServerError
}

// reject clears the credentials after an irrecoverable refresh failure.
func (c *Client) reject(ctx context.Context, cause error) error {
	c.logger.Error(ctx, "token refresh failed, re-login required", "error", cause)
	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear credentials", "error", err)
	}
	return &AuthError{Reason: ReasonRefreshRejected, Err: cause}
}

// exchange performs a single HTTP round trip. Only network faults are
// returned as errors; every HTTP status comes back as a Response.
func (c *Client) exchange(ctx context.Context, req Request, token string) (*Response, error) {
	target := c.resolve(req)

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", req.Path, err)
		}
		body = bytes.NewReader(b)
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	requestID := c.newID()
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set(RequestIDHeader, requestID)
	if token != "" {
		hreq.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With("method", req.Method, "path", req.Path, "request_id", requestID)
	start := time.Now()

	hresp, err := c.http.Do(hreq)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
		log.Error(ctx, "backend request failed", "error", err)
		c.report(ctx, req, 0, nil, err)
		return nil, err
	}
	defer hresp.Body.Close()

	data, err := io.ReadAll(hresp.Body)
	if err != nil {
		err = fmt.Errorf("%s %s: read body: %w", req.Method, req.Path, err)
		c.report(ctx, req, hresp.StatusCode, nil, err)
		return nil, err
	}

	log.Debug(ctx, "backend request completed", "status", hresp.StatusCode, "duration", time.Since(start))
	return &Response{Status: hresp.StatusCode, Header: hresp.Header, Body: data}, nil
}

// finish turns a non-2xx response into a *StatusError and reports it unless
// the status is expected.
func (c *Client) finish(ctx context.Context, req Request, resp *Response) (*Response, error) {
	if resp.Status >= 200 && resp.Status < 300 {
		return resp, nil
	}
	se := &StatusError{Method: req.Method, Path: req.Path, Status: resp.Status, Body: resp.Body}
	if !se.TransientExpected() {
		c.report(ctx, req, resp.Status, resp.Body, se)
	}
	return nil, se
}

func (c *Client) report(ctx context.Context, req Request, status int, body []byte, err error) {
	c.reporter.Report(ctx, telemetry.Event{
		Source:   source,
		Endpoint: req.Endpoint,
		Method:   req.Method,
		Path:     req.Path,
		Query:    req.Query,
		Status:   status,
		Body:     body,
		Err:      err,
	})
}

func (c *Client) resolve(req Request) *url.URL {
	rel := &url.URL{Path: strings.TrimPrefix(req.Path, "/")}
	u := c.baseURL.ResolveReference(rel)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}
	return u
}

func decode(req Request, resp *Response, out any) error {
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Path, err)
	}
	return nil
}
