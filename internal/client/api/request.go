package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Request is a replayable HTTP request. The body is held in memory so the
// interceptor can resend it after a token renewal.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Body        []byte
	ContentType string
	Header      http.Header

	// set only on the internal copy made for a replay
	retried bool
	token   string
}

// NewJSONRequest encodes in as the JSON body. A nil in sends no body.
func NewJSONRequest(method, path string, in any) (*Request, error) {
	req := &Request{Method: method, Path: path}
	if in == nil {
		return req, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
	}
	req.Body = b
	req.ContentType = "application/json"
	return req, nil
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into out. Empty bodies and a nil out are
// accepted.
func (r *Response) Decode(out any) error {
	if out == nil || len(strings.TrimSpace(string(r.Body))) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (r *Response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

func (r *Response) httpError() *HTTPError {
	return &HTTPError{
		StatusCode: r.StatusCode,
		Status:     r.Status,
		Body:       strings.TrimSpace(string(r.Body)),
	}
}
