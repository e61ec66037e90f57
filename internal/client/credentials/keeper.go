package credentials

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is what a successful login hands to the Keeper.
type Session struct {
	AccessToken  string
	RefreshToken string
	Marker       []byte
}

// Keeper gives typed access to the three session slots of a Store.
type Keeper struct {
	store Store
	now   func() time.Time
}

func NewKeeper(store Store) *Keeper {
	return &Keeper{store: store, now: time.Now}
}

func (k *Keeper) AccessToken(ctx context.Context) (string, error) {
	v, err := k.store.Get(ctx, AccessTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (k *Keeper) RefreshToken(ctx context.Context) (string, error) {
	v, err := k.store.Get(ctx, RefreshTokenKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Marker returns the serialized user, or nil when nobody is logged in.
func (k *Keeper) Marker(ctx context.Context) ([]byte, error) {
	v, err := k.store.Get(ctx, UserKey)
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil
	}
	return v, nil
}

// SetAccessToken overwrites the access token slot. The slot lives for the
// nominal access lifetime, shortened to the token's own exp claim when that
// comes first.
func (k *Keeper) SetAccessToken(ctx context.Context, token string) error {
	return k.store.Set(ctx, AccessTokenKey, []byte(token), AccessTokenLifetime(token, k.now()))
}

// Save stores a whole session after login.
func (k *Keeper) Save(ctx context.Context, s Session) error {
	if err := k.SetAccessToken(ctx, s.AccessToken); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if err := k.store.Set(ctx, RefreshTokenKey, []byte(s.RefreshToken), RefreshTokenTTL); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	if err := k.store.Set(ctx, UserKey, s.Marker, UserTTL); err != nil {
		return fmt.Errorf("save session marker: %w", err)
	}
	return nil
}

func (k *Keeper) Clear(ctx context.Context) error {
	return k.store.Clear(ctx)
}

// AccessTokenLifetime reads the exp claim of a JWT without verifying it.
// Opaque tokens, tokens without exp and already expired tokens get
// AccessTokenTTL.
func AccessTokenLifetime(token string, now time.Time) time.Duration {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return AccessTokenTTL
	}
	if claims.ExpiresAt == nil {
		return AccessTokenTTL
	}
	ttl := claims.ExpiresAt.Sub(now)
	if ttl <= 0 || ttl > AccessTokenTTL {
		return AccessTokenTTL
	}
	return ttl
}
