package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/opoclient/internal/client/credentials"
	"github.com/dmitrijs2005/opoclient/internal/client/session"
	"github.com/dmitrijs2005/opoclient/internal/logging"
	"github.com/google/uuid"
)

// RequestIDHeader carries a fresh UUID on every attempt.
const RequestIDHeader = "X-Request-Id"

// Client talks to the oposiciones REST API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	raw     *http.Client
	timeout time.Duration

	creds         *credentials.Keeper
	session       *session.Manager
	log           logging.Logger
	onSessionLost func(ctx context.Context)
}

func New(baseURL string, creds *credentials.Keeper, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{},
		raw:     &http.Client{},
		timeout: DefaultTimeout,
		creds:   creds,
		session: session.NewManager(),
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

func (c *Client) Credentials() *credentials.Keeper {
	return c.creds
}

func (c *Client) Session() *session.Manager {
	return c.session
}

// StartSession stores the credentials of a fresh login.
func (c *Client) StartSession(ctx context.Context, s credentials.Session) error {
	if err := c.creds.Save(ctx, s); err != nil {
		return err
	}
	c.session.Reset()
	return nil
}

// EndSession wipes the stored credentials.
func (c *Client) EndSession(ctx context.Context) error {
	c.session.Reset()
	return c.creds.Clear(ctx)
}

// Do sends req with the stored access token. A 401 goes through the
// renewal flow; any other non-2xx status is returned as *HTTPError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	sentAt := time.Now()
	token := req.token
	if token == "" {
		stored, err := c.creds.AccessToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("read access token: %w", err)
		}
		token = stored
	}

	resp, err := c.attempt(ctx, c.http, req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.handleUnauthorized(ctx, req, token, sentAt, resp.httpError())
	}
	if !resp.ok() {
		return nil, resp.httpError()
	}
	return resp, nil
}

// DoJSON sends in as JSON through Do and decodes the reply into out.
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req, err := NewJSONRequest(method, path, in)
	if err != nil {
		return err
	}
	req.Query = query

	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	return resp.Decode(out)
}

// Direct sends a JSON request through the raw transport: no bearer token,
// no renewal on 401.
func (c *Client) Direct(ctx context.Context, method, path string, in, out any) error {
	req, err := NewJSONRequest(method, path, in)
	if err != nil {
		return err
	}

	resp, err := c.attempt(ctx, c.raw, req, "")
	if err != nil {
		return err
	}
	if !resp.ok() {
		return resp.httpError()
	}
	return resp.Decode(out)
}

func (c *Client) attempt(ctx context.Context, hc *http.Client, req *Request, token string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	hr, err := c.newHTTPRequest(ctx, req, token)
	if err != nil {
		return nil, err
	}

	resp, err := hc.Do(hr)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req *Request, token string) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, c.url(req.Path, req.Query), body)
	if err != nil {
		return nil, err
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			hr.Header.Add(k, v)
		}
	}
	if req.Body != nil {
		ct := req.ContentType
		if ct == "" {
			ct = "application/json"
		}
		hr.Header.Set("Content-Type", ct)
	}
	hr.Header.Set("Accept", "application/json")
	hr.Header.Set(RequestIDHeader, uuid.NewString())
	if token != "" {
		hr.Header.Set("Authorization", "Bearer "+token)
	}
	return hr, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// transportError maps failures without a response onto ErrTimeout and
// ErrUnavailable. Cancellation by the caller is passed through.
func transportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
