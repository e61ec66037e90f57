package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
)

// CatalogService lists and extends the provincias, categorias and
// municipios catalogs.
type CatalogService interface {
	Provincias(ctx context.Context) ([]models.Provincia, error)
	CreateProvincia(ctx context.Context, nombre string) (*models.Provincia, error)
	Categorias(ctx context.Context) ([]models.Categoria, error)
	CreateCategoria(ctx context.Context, nombre string) (*models.Categoria, error)
	Municipios(ctx context.Context) ([]models.Municipio, error)
	CreateMunicipio(ctx context.Context, nombre string) (*models.Municipio, error)
}

type catalogService struct {
	api API
	log logging.Logger
}

func NewCatalogService(api API, log logging.Logger) CatalogService {
	return &catalogService{api: api, log: log}
}

func listCatalog[T any](ctx context.Context, s *catalogService, path string) ([]T, error) {
	var out []T
	if err := s.api.DoJSON(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		s.log.Error(ctx, "list catalog", "path", path, "err", err)
		return nil, err
	}
	return out, nil
}

func createCatalogEntry[T any](ctx context.Context, s *catalogService, path, nombre string) (*T, error) {
	var out T
	if err := s.api.DoJSON(ctx, http.MethodPost, path, nil, models.NewCatalogEntry{Nombre: nombre}, &out); err != nil {
		s.log.Error(ctx, "create catalog entry", "path", path, "nombre", nombre, "err", err)
		return nil, err
	}
	return &out, nil
}

func (s *catalogService) Provincias(ctx context.Context) ([]models.Provincia, error) {
	return listCatalog[models.Provincia](ctx, s, "/provincias")
}

func (s *catalogService) CreateProvincia(ctx context.Context, nombre string) (*models.Provincia, error) {
	return createCatalogEntry[models.Provincia](ctx, s, "/provincias", nombre)
}

func (s *catalogService) Categorias(ctx context.Context) ([]models.Categoria, error) {
	return listCatalog[models.Categoria](ctx, s, "/categorias")
}

func (s *catalogService) CreateCategoria(ctx context.Context, nombre string) (*models.Categoria, error) {
	return createCatalogEntry[models.Categoria](ctx, s, "/categorias", nombre)
}

func (s *catalogService) Municipios(ctx context.Context) ([]models.Municipio, error) {
	return listCatalog[models.Municipio](ctx, s, "/municipios")
}

func (s *catalogService) CreateMunicipio(ctx context.Context, nombre string) (*models.Municipio, error) {
	return createCatalogEntry[models.Municipio](ctx, s, "/municipios", nombre)
}
