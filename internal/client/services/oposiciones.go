package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
)

const (
	oposicionesPath    = "/lista-oposiciones"
	compareTemarioPath = "/comparar-temario"
)

type OposicionService interface {
	List(ctx context.Context) ([]models.Oposicion, error)
	ListAdmin(ctx context.Context, filters models.AdminFilters) (*models.AdminPage, error)
	Update(ctx context.Context, payload models.UpdateOposicion) error
	Create(ctx context.Context, payload models.CreateOposicion) error
	CompareTemario(ctx context.Context, payload models.CompareTemario) error
}

type oposicionService struct {
	api API
	log logging.Logger
}

func NewOposicionService(api API, log logging.Logger) OposicionService {
	return &oposicionService{api: api, log: log}
}

func (s *oposicionService) List(ctx context.Context) ([]models.Oposicion, error) {
	var rows []models.OposicionRow
	if err := s.api.DoJSON(ctx, http.MethodGet, oposicionesPath, nil, nil, &rows); err != nil {
		s.log.Error(ctx, "list oposiciones", "err", err)
		return nil, err
	}

	out := make([]models.Oposicion, len(rows))
	for i, r := range rows {
		out[i] = r.Public()
	}
	return out, nil
}

func (s *oposicionService) ListAdmin(ctx context.Context, filters models.AdminFilters) (*models.AdminPage, error) {
	var rows []models.OposicionRow
	if err := s.api.DoJSON(ctx, http.MethodGet, oposicionesPath, filters.Query(), nil, &rows); err != nil {
		s.log.Error(ctx, "list oposiciones for admin", "err", err)
		return nil, err
	}

	page := &models.AdminPage{
		Data:  make([]models.OposicionAdmin, len(rows)),
		Total: models.TotalCount(rows),
	}
	for i, r := range rows {
		page.Data[i] = r.Admin()
	}
	return page, nil
}

func (s *oposicionService) Update(ctx context.Context, payload models.UpdateOposicion) error {
	if err := s.api.DoJSON(ctx, http.MethodPatch, oposicionesPath, nil, payload, nil); err != nil {
		s.log.Error(ctx, "update oposicion", "id", payload.ID, "err", err)
		return err
	}
	return nil
}

func (s *oposicionService) Create(ctx context.Context, payload models.CreateOposicion) error {
	if err := s.api.DoJSON(ctx, http.MethodPost, oposicionesPath, nil, payload, nil); err != nil {
		s.log.Error(ctx, "create oposicion", "err", err)
		return err
	}
	return nil
}

func (s *oposicionService) CompareTemario(ctx context.Context, payload models.CompareTemario) error {
	if err := s.api.DoJSON(ctx, http.MethodPost, compareTemarioPath, nil, payload, nil); err != nil {
		s.log.Error(ctx, "compare temario", "oposicion_id", payload.OposicionID, "err", err)
		return err
	}
	return nil
}
