package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
	"github.com/dmitrijs2005/opoclient/internal/client/credentials"
	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
	"github.com/stretchr/testify/require"
)

// captured is what the fake backend saw for one request.
type captured struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Type   string
	Body   []byte
}

type fakeBackend struct {
	srv *httptest.Server
	mux *http.ServeMux

	mu   sync.Mutex
	seen []captured
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	f := &fakeBackend{mux: http.NewServeMux()}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.seen = append(f.seen, captured{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Auth:   r.Header.Get("Authorization"),
			Type:   r.Header.Get("Content-Type"),
			Body:   body,
		})
		f.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(f.srv.Close)
	return f
}

// reply registers a JSON answer for pattern.
func (f *fakeBackend) reply(pattern string, status int, v any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	})
}

func (f *fakeBackend) requests() []captured {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]captured(nil), f.seen...)
}

func (f *fakeBackend) last(t *testing.T) captured {
	t.Helper()
	seen := f.requests()
	require.NotEmpty(t, seen)
	return seen[len(seen)-1]
}

type env struct {
	backend *fakeBackend
	client  *api.Client
	store   *credentials.MemoryStore
	keeper  *credentials.Keeper
}

func newEnv(t *testing.T) *env {
	t.Helper()
	b := newFakeBackend(t)
	store := credentials.NewMemoryStore()
	keeper := credentials.NewKeeper(store)
	return &env{
		backend: b,
		client:  api.New(b.srv.URL, keeper, api.WithLogger(logging.Discard())),
		store:   store,
		keeper:  keeper,
	}
}

func (e *env) login(t *testing.T, user models.User) {
	t.Helper()
	marker, err := user.Marker()
	require.NoError(t, err)
	require.NoError(t, e.client.StartSession(context.Background(), credentials.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Marker:       marker,
	}))
}

func decodeBody(t *testing.T, c captured) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(c.Body, &m))
	return m
}

func multipartFields(t *testing.T, c captured) (map[string]string, map[string][]byte) {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(c.Type)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	fields := map[string]string{}
	files := map[string][]byte{}
	mr := multipart.NewReader(bytes.NewReader(c.Body), params["boundary"])
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)
		if p.FileName() != "" {
			files[p.FormName()+":"+p.FileName()] = data
		} else {
			fields[p.FormName()] = string(data)
		}
	}
	return fields, files
}
