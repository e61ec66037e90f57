package services

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecursoService_UploadFile(t *testing.T) {
	e := newEnv(t)
	e.backend.reply("POST /recursos", http.StatusCreated, nil)
	svc := NewRecursoService(e.client, logging.Discard())

	err := svc.Upload(context.Background(), models.RecursoUpload{
		OposicionID: 4,
		Titulo:      "Tema 1",
		Filename:    "tema1.pdf",
		Data:        []byte("%PDF-1.4"),
	})
	require.NoError(t, err)

	fields, files := multipartFields(t, e.backend.last(t))
	assert.Equal(t, map[string]string{"oposicion_id": "4", "titulo": "Tema 1"}, fields)
	assert.Equal(t, map[string][]byte{"data:tema1.pdf": []byte("%PDF-1.4")}, files)
}

func TestRecursoService_UploadURL(t *testing.T) {
	e := newEnv(t)
	e.backend.reply("POST /recursos", http.StatusCreated, nil)
	svc := NewRecursoService(e.client, logging.Discard())

	err := svc.Upload(context.Background(), models.RecursoUpload{OposicionID: 4, Titulo: "BOE", URL: "https://boe.example/x"})
	require.NoError(t, err)

	fields, files := multipartFields(t, e.backend.last(t))
	assert.Equal(t, "https://boe.example/x", fields["url"])
	assert.Empty(t, files)
}

func TestRecursoService_NeedsExactlyOneSource(t *testing.T) {
	svc := NewRecursoService(newEnv(t).client, logging.Discard())

	err := svc.Upload(context.Background(), models.RecursoUpload{OposicionID: 1, Titulo: "x"})
	assert.ErrorIs(t, err, ErrRecursoSource)

	err = svc.Upload(context.Background(), models.RecursoUpload{OposicionID: 1, Titulo: "x", Filename: "a.pdf", URL: "https://x"})
	assert.ErrorIs(t, err, ErrRecursoSource)
}

func TestRecursoService_UploadReplayedAfterRenewal(t *testing.T) {
	e := newEnv(t)
	e.login(t, models.User{ID: "1", Rol: models.RoleAdministrador})

	var renewals atomic.Int32
	e.backend.mux.HandleFunc("POST /refreshOpo", func(w http.ResponseWriter, r *http.Request) {
		renewals.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "access-2"})
	})
	e.backend.mux.HandleFunc("POST /recursos", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	svc := NewRecursoService(e.client, logging.Discard())

	err := svc.Upload(context.Background(), models.RecursoUpload{
		OposicionID: 4, Titulo: "Tema 2", Filename: "tema2.pdf", Data: []byte("contents"),
	})
	require.NoError(t, err)
	assert.Equal(t, int32(1), renewals.Load())

	var uploads []captured
	for _, req := range e.backend.requests() {
		if req.Path == "/recursos" {
			uploads = append(uploads, req)
		}
	}
	require.Len(t, uploads, 2)
	assert.Equal(t, uploads[0].Body, uploads[1].Body, "the form is resent unchanged")
	assert.Equal(t, "Bearer access-2", uploads[1].Auth)
}
