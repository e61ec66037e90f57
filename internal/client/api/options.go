package api

import (
	"context"
	"time"

	"github.com/dmitrijs2005/opoclient/internal/logging"
)

// DefaultTimeout bounds a single HTTP attempt.
const DefaultTimeout = 10 * time.Second

// Option customizes the Client.
type Option func(c *Client)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithOnSessionLost registers the hook fired once per unrecoverable session
// loss, after the stored credentials are wiped.
func WithOnSessionLost(fn func(ctx context.Context)) Option {
	return func(c *Client) {
		c.onSessionLost = fn
	}
}
