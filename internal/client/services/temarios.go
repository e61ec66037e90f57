package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
)

const misTemariosPath = "/mis-temarios"

type TemarioService interface {
	MyTemarios(ctx context.Context, user models.User) ([]models.OposicionData, error)
}

type temarioService struct {
	api API
	log logging.Logger
}

func NewTemarioService(api API, log logging.Logger) TemarioService {
	return &temarioService{api: api, log: log}
}

func (s *temarioService) MyTemarios(ctx context.Context, user models.User) ([]models.OposicionData, error) {
	var out models.Dashboard
	q := url.Values{"usuario_id": {user.ID}}
	if err := s.api.DoJSON(ctx, http.MethodGet, misTemariosPath, q, nil, &out); err != nil {
		s.log.Error(ctx, "load temarios", "user_id", user.ID, "err", err)
		return nil, err
	}
	return out.DashboardData, nil
}
