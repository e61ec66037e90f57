package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
)

const recursosPath = "/recursos"

var ErrRecursoSource = errors.New("recurso needs either a file or a url")

type RecursoService interface {
	Upload(ctx context.Context, r models.RecursoUpload) error
}

type recursoService struct {
	api API
	log logging.Logger
}

func NewRecursoService(api API, log logging.Logger) RecursoService {
	return &recursoService{api: api, log: log}
}

func (s *recursoService) Upload(ctx context.Context, r models.RecursoUpload) error {
	body, contentType, err := encodeRecurso(r)
	if err != nil {
		return err
	}

	req := &api.Request{
		Method:      http.MethodPost,
		Path:        recursosPath,
		Body:        body,
		ContentType: contentType,
	}
	if _, err := s.api.Do(ctx, req); err != nil {
		s.log.Error(ctx, "upload recurso", "oposicion_id", r.OposicionID, "err", err)
		return err
	}
	return nil
}

// encodeRecurso builds the multipart form in memory so a replay after a
// token renewal sends the same bytes.
func encodeRecurso(r models.RecursoUpload) ([]byte, string, error) {
	hasFile := r.Filename != ""
	if hasFile == (r.URL != "") {
		return nil, "", ErrRecursoSource
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("oposicion_id", strconv.Itoa(r.OposicionID)); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("titulo", r.Titulo); err != nil {
		return nil, "", err
	}

	if hasFile {
		part, err := w.CreateFormFile("data", r.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(r.Data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	} else if err := w.WriteField("url", r.URL); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
