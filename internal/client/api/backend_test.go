package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/opoclient/internal/client/credentials"
	"github.com/stretchr/testify/require"
)

// backend fakes the oposiciones API. /protected accepts only the current
// valid token; /refreshOpo issues the next one.
type backend struct {
	srv *httptest.Server

	mu         sync.Mutex
	valid      string
	issue      string
	renewFails bool
	gate       func()
	auths      []string
	requestIDs []string
	refreshes  []string

	renewals atomic.Int32
	hits     atomic.Int32
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{valid: "fresh", issue: "fresh"}

	mux := http.NewServeMux()
	mux.HandleFunc("/protected", b.protected)
	mux.HandleFunc("/always401", func(w http.ResponseWriter, r *http.Request) {
		b.hits.Add(1)
		http.Error(w, `{"error":"expired"}`, http.StatusUnauthorized)
	})
	mux.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	mux.HandleFunc(RenewPath, b.refresh)

	b.srv = httptest.NewServer(mux)
	t.Cleanup(b.srv.Close)
	return b
}

func (b *backend) configure(fn func(b *backend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *backend) protected(w http.ResponseWriter, r *http.Request) {
	b.hits.Add(1)
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	auth := r.Header.Get("Authorization")
	b.auths = append(b.auths, auth)
	b.requestIDs = append(b.requestIDs, r.Header.Get(RequestIDHeader))
	ok := auth == "Bearer "+b.valid
	b.mu.Unlock()

	if !ok {
		http.Error(w, `{"error":"expired"}`, http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"ok":   true,
		"echo": string(body),
		"type": r.Header.Get("Content-Type"),
	})
}

func (b *backend) refresh(w http.ResponseWriter, r *http.Request) {
	b.renewals.Add(1)

	var in renewRequest
	_ = json.NewDecoder(r.Body).Decode(&in)

	b.mu.Lock()
	b.refreshes = append(b.refreshes, in.RefreshToken)
	gate := b.gate
	fails := b.renewFails
	b.mu.Unlock()

	if gate != nil {
		gate()
	}
	if r.Header.Get("Authorization") != "" {
		http.Error(w, "renewal must not carry a bearer token", http.StatusBadRequest)
		return
	}
	if fails {
		http.Error(w, `{"error":"refresh token revoked"}`, http.StatusUnauthorized)
		return
	}

	b.mu.Lock()
	b.valid = b.issue
	token := b.issue
	b.mu.Unlock()

	_ = json.NewEncoder(w).Encode(renewResponse{AccessToken: token})
}

type echo struct {
	OK   bool   `json:"ok"`
	Echo string `json:"echo"`
	Type string `json:"type"`
}

type fixture struct {
	client *Client
	store  *credentials.MemoryStore
	keeper *credentials.Keeper
	lost   atomic.Int32
}

func newFixture(t *testing.T, b *backend, opts ...Option) *fixture {
	t.Helper()
	return newFixtureWith(t, b, nil, opts...)
}

// newFixtureWith lets wrap decorate the memory store the client works on.
func newFixtureWith(t *testing.T, b *backend, wrap func(*credentials.MemoryStore) credentials.Store, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{store: credentials.NewMemoryStore()}
	var store credentials.Store = f.store
	if wrap != nil {
		store = wrap(f.store)
	}
	f.keeper = credentials.NewKeeper(store)
	opts = append([]Option{WithOnSessionLost(func(context.Context) { f.lost.Add(1) })}, opts...)
	f.client = New(b.srv.URL, f.keeper, opts...)
	return f
}

func (f *fixture) login(t *testing.T, access string) {
	t.Helper()
	require.NoError(t, f.client.StartSession(context.Background(), credentials.Session{
		AccessToken:  access,
		RefreshToken: "refresh-1",
		Marker:       []byte(`{"id":"7","username":"ana@example.com","nombre":"Ana","rol":"ESTUDIANTE"}`),
	}))
}

// clearHookStore calls beforeClear and afterClear around the first wipe.
type clearHookStore struct {
	*credentials.MemoryStore
	once        sync.Once
	beforeClear func()
	afterClear  func()
}

func (s *clearHookStore) Clear(ctx context.Context) error {
	first := false
	s.once.Do(func() { first = true })
	if first && s.beforeClear != nil {
		s.beforeClear()
	}
	err := s.MemoryStore.Clear(ctx)
	if first && s.afterClear != nil {
		s.afterClear()
	}
	return err
}

type pauseKey struct{}

// pausingStore parks the first read of key made with a pause channel in its
// context. The value is read before parking, so the caller resumes with what
// the store held at that moment.
type pausingStore struct {
	*credentials.MemoryStore
	key    string
	once   sync.Once
	parked chan struct{}
}

func newPausingStore(key string) *pausingStore {
	return &pausingStore{key: key, parked: make(chan struct{})}
}

func (s *pausingStore) wrap(m *credentials.MemoryStore) credentials.Store {
	s.MemoryStore = m
	return s
}

func (s *pausingStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.MemoryStore.Get(ctx, key)
	if release, ok := ctx.Value(pauseKey{}).(chan struct{}); ok && key == s.key {
		s.once.Do(func() {
			close(s.parked)
			<-release
		})
	}
	return v, err
}

func paused(release chan struct{}) context.Context {
	return context.WithValue(context.Background(), pauseKey{}, release)
}

func waitFor[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
	var zero T
	return zero
}
