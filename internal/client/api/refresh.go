package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/opoclient/internal/client/session"
)

// RenewPath is the token renewal endpoint, called through the raw transport.
const RenewPath = "/refreshOpo"

type renewRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type renewResponse struct {
	AccessToken string `json:"accessToken"`
}

// handleUnauthorized decides what to do with a 401 received for req, which
// was sent at sentAt with sentWith as its bearer token.
func (c *Client) handleUnauthorized(ctx context.Context, req *Request, sentWith string, sentAt time.Time, cause *HTTPError) (*Response, error) {
	if req.retried {
		return nil, cause
	}

	marker, err := c.creds.Marker(ctx)
	if err != nil {
		return nil, fmt.Errorf("read session marker: %w", err)
	}
	if marker == nil {
		return nil, cause
	}

	refreshToken, err := c.creds.RefreshToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read refresh token: %w", err)
	}
	if refreshToken == "" {
		c.dropCredentials(ctx)
		c.notifySessionLost(ctx, "refresh token missing")
		return nil, fmt.Errorf("%w: %w", ErrSessionLost, cause)
	}

	ticket := c.session.BeginSince(sentWith, sentAt)
	switch ticket.Role {
	case session.Waiter:
		c.log.Debug(ctx, "renewal in flight, request queued", "method", req.Method, "path", req.Path)
		token, err := c.session.Wait(ctx, ticket)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
			}
			return nil, err
		}
		return c.replay(ctx, req, token)
	case session.Fresh:
		c.log.Debug(ctx, "replaying with already renewed token", "method", req.Method, "path", req.Path)
		return c.replay(ctx, req, ticket.Token)
	}

	// A failed cycle wipes the store before it settles, so a session dropped
	// after the reads above is visible to the next owner.
	current, err := c.creds.RefreshToken(ctx)
	if err != nil {
		err = fmt.Errorf("read refresh token: %w", err)
		c.session.Settle("", err)
		return nil, err
	}
	if current != refreshToken {
		lost := fmt.Errorf("%w: %w", ErrSessionLost, cause)
		c.session.Settle("", lost)
		c.log.Debug(ctx, "session changed before renewal", "method", req.Method, "path", req.Path)
		return nil, lost
	}

	c.log.Debug(ctx, "renewing access token", "method", req.Method, "path", req.Path)

	token, err := c.renew(ctx, refreshToken)
	if err != nil {
		rerr := &RenewalError{Err: err}
		c.dropCredentials(ctx)
		rejected := c.session.Settle("", rerr)
		c.log.Warn(ctx, "access token renewal failed", "err", err, "rejected", rejected)
		c.notifySessionLost(ctx, "renewal rejected")
		return nil, rerr
	}

	if err := c.creds.SetAccessToken(context.WithoutCancel(ctx), token); err != nil {
		c.log.Error(ctx, "store renewed access token", "err", err)
	}
	released := c.session.Settle(token, nil)
	c.log.Info(ctx, "access token renewed", "released", released)

	return c.replay(ctx, req, token)
}

func (c *Client) replay(ctx context.Context, req *Request, token string) (*Response, error) {
	next := *req
	next.retried = true
	next.token = token
	return c.Do(ctx, &next)
}

// renew exchanges the refresh token for a new access token. It runs
// detached from the caller's cancellation since queued requests of other
// callers depend on its outcome; the attempt timeout still applies.
func (c *Client) renew(ctx context.Context, refreshToken string) (string, error) {
	var out renewResponse
	err := c.Direct(context.WithoutCancel(ctx), http.MethodPost, RenewPath, renewRequest{RefreshToken: refreshToken}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("renewal response carries no access token")
	}
	return out.AccessToken, nil
}

// dropCredentials wipes the stored session. It runs before the refreshing
// flag is cleared so no request can start a renewal with a revoked token.
func (c *Client) dropCredentials(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	if err := c.creds.Clear(ctx); err != nil {
		c.log.Error(ctx, "clear credentials", "err", err)
	}
	c.session.Reset()
}

func (c *Client) notifySessionLost(ctx context.Context, reason string) {
	ctx = context.WithoutCancel(ctx)
	c.log.Warn(ctx, "session lost", "reason", reason)
	if c.onSessionLost != nil {
		c.onSessionLost(ctx)
	}
}
