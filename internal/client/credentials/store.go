// Package credentials persists the session slots shared by the API client
// and the auth service: the access token, the refresh token and the session
// marker (the serialized user). Every slot carries its own expiry, the way a
// browser cookie would.
package credentials

import (
	"context"
	"time"
)

// Slot names.
const (
	AccessTokenKey  = "opo_access_token"
	RefreshTokenKey = "opo_refresh_token"
	UserKey         = "opo_auth_user"
)

// Nominal lifetimes.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
	UserTTL         = RefreshTokenTTL
)

// Slots lists every key owned by a session.
var Slots = []string{AccessTokenKey, RefreshTokenKey, UserKey}

// Store is a key/value store with per-key expiry.
//
// Get returns (nil, nil) when the key is absent or expired. A ttl <= 0 on Set
// means the value never expires. Clear removes every session slot.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
