// Package services wraps the oposiciones API endpoints in typed calls for
// the console. All calls go through the session-aware api.Client.
package services

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
)

// API is the part of api.Client the resource services need.
type API interface {
	Do(ctx context.Context, req *api.Request) (*api.Response, error)
	DoJSON(ctx context.Context, method, path string, query url.Values, in, out any) error
}
