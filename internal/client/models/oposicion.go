package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Estado of a public oposicion.
type Estado string

const (
	EstadoAbierta Estado = "abierta"
	EstadoCerrada Estado = "cerrada"
	EstadoProxima Estado = "proxima"
)

// Defaults applied to admin rows that leave tipo or estado empty.
const (
	DefaultTipo        = "Convocatoria"
	DefaultAdminEstado = "Abierto"
	DefaultPageSize    = 10
)

// OposicionRow is a row of /lista-oposiciones as the backend sends it.
type OposicionRow struct {
	ID                int     `json:"id"`
	Titulo            string  `json:"titulo"`
	NumPlazas         int     `json:"num_plazas"`
	URLBasesOficiales string  `json:"url_bases_oficiales"`
	FechaConvocatoria string  `json:"fecha_convocatoria"`
	TieneTemarioListo bool    `json:"tiene_temario_listo"`
	ProvinciaID       int     `json:"provincia_id"`
	Tipo              string  `json:"tipo,omitempty"`
	NombreProvincia   string  `json:"nombre_provincia"`
	CategoriaID       int     `json:"categoria_id"`
	NombreCategoria   string  `json:"nombre_categoria"`
	Estado            string  `json:"estado,omitempty"`
	MunicipioID       *int    `json:"municipio_id,omitempty"`
	NombreMunicipio   *string `json:"nombre_municipio,omitempty"`
	FechaFin          *string `json:"fecha_fin,omitempty"`
	Observaciones     *string `json:"observaciones,omitempty"`
	CCAA              *string `json:"ccaa,omitempty"`
	TotalCount        string  `json:"total_count,omitempty"`
}

// Oposicion is the public view of a row.
type Oposicion struct {
	ID                string `json:"id"`
	Titulo            string `json:"titulo"`
	Descripcion       string `json:"descripcion"`
	Categoria         string `json:"categoria"`
	CategoriaID       int    `json:"categoriaId,omitempty"`
	Provincia         string `json:"provincia"`
	ProvinciaID       int    `json:"provinciaId,omitempty"`
	FechaConvocatoria string `json:"fechaConvocatoria"`
	Plazas            int    `json:"plazas"`
	Estado            Estado `json:"estado"`
	URLBasesOficiales string `json:"urlBasesOficiales,omitempty"`
	TieneTemarioListo bool   `json:"tieneTemarioListo"`
}

// Public maps a row to the public view. An oposicion is open once its
// temario is ready and upcoming until then.
func (r OposicionRow) Public() Oposicion {
	estado := EstadoProxima
	if r.TieneTemarioListo {
		estado = EstadoAbierta
	}
	return Oposicion{
		ID:                strconv.Itoa(r.ID),
		Titulo:            r.Titulo,
		Descripcion:       r.NombreCategoria + " - " + r.NombreProvincia,
		Categoria:         r.NombreCategoria,
		CategoriaID:       r.CategoriaID,
		Provincia:         r.NombreProvincia,
		ProvinciaID:       r.ProvinciaID,
		FechaConvocatoria: r.FechaConvocatoria,
		Plazas:            r.NumPlazas,
		Estado:            estado,
		URLBasesOficiales: r.URLBasesOficiales,
		TieneTemarioListo: r.TieneTemarioListo,
	}
}

// OposicionAdmin is the administration view of a row.
type OposicionAdmin struct {
	ID                int     `json:"id"`
	Titulo            string  `json:"titulo"`
	NumPlazas         int     `json:"num_plazas"`
	URLBasesOficiales string  `json:"url_bases_oficiales"`
	FechaConvocatoria string  `json:"fecha_convocatoria"`
	TieneTemarioListo bool    `json:"tiene_temario_listo"`
	ProvinciaID       int     `json:"provincia_id"`
	NombreProvincia   string  `json:"nombre_provincia"`
	CategoriaID       int     `json:"categoria_id"`
	NombreCategoria   string  `json:"nombre_categoria"`
	Tipo              string  `json:"tipo"`
	Estado            string  `json:"estado"`
	MunicipioID       *int    `json:"municipio_id,omitempty"`
	NombreMunicipio   *string `json:"nombre_municipio,omitempty"`
	FechaFin          *string `json:"fecha_fin,omitempty"`
	Observaciones     *string `json:"observaciones,omitempty"`
	CCAA              *string `json:"ccaa,omitempty"`
}

func (r OposicionRow) Admin() OposicionAdmin {
	a := OposicionAdmin{
		ID:                r.ID,
		Titulo:            r.Titulo,
		NumPlazas:         r.NumPlazas,
		URLBasesOficiales: r.URLBasesOficiales,
		FechaConvocatoria: r.FechaConvocatoria,
		TieneTemarioListo: r.TieneTemarioListo,
		ProvinciaID:       r.ProvinciaID,
		NombreProvincia:   r.NombreProvincia,
		CategoriaID:       r.CategoriaID,
		NombreCategoria:   r.NombreCategoria,
		Tipo:              r.Tipo,
		Estado:            r.Estado,
		MunicipioID:       r.MunicipioID,
		NombreMunicipio:   r.NombreMunicipio,
		FechaFin:          r.FechaFin,
		Observaciones:     r.Observaciones,
		CCAA:              r.CCAA,
	}
	if a.Tipo == "" {
		a.Tipo = DefaultTipo
	}
	if a.Estado == "" {
		a.Estado = DefaultAdminEstado
	}
	return a
}

// AdminPage is one page of the admin listing. Total counts every match,
// not only this page.
type AdminPage struct {
	Data  []OposicionAdmin
	Total int
}

// TotalCount reads the total carried by the first row. Missing or
// malformed counts read as zero.
func TotalCount(rows []OposicionRow) int {
	if len(rows) == 0 || rows[0].TotalCount == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rows[0].TotalCount))
	if err != nil {
		return 0
	}
	return n
}

var ErrBadFilter = errors.New("filter must be name=value")

// AdminFilters narrows the admin listing. Zero fields are not sent.
type AdminFilters struct {
	Search      string
	ProvinciaID int
	MunicipioID int
	CategoriaID int
	Estado      string
	Tipo        string
	FechaInicio string
	FechaFin    string
	Limit       int
	Offset      int
}

// Query encodes the filters. limit and offset are always present.
func (f AdminFilters) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	setInt := func(k string, v int) {
		if v != 0 {
			q.Set(k, strconv.Itoa(v))
		}
	}

	set("search", f.Search)
	setInt("provincia_id", f.ProvinciaID)
	setInt("municipio_id", f.MunicipioID)
	setInt("categoria_id", f.CategoriaID)
	set("estado", f.Estado)
	set("tipo", f.Tipo)
	set("fecha_inicio", f.FechaInicio)
	set("fecha_fin", f.FechaFin)

	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}
	offset := max(f.Offset, 0)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return q
}

// ParseAdminFilters reads name=value pairs using the query parameter names.
func ParseAdminFilters(args []string) (AdminFilters, error) {
	var f AdminFilters
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return AdminFilters{}, ErrBadFilter
		}

		var err error
		switch name {
		case "search":
			f.Search = value
		case "provincia_id":
			f.ProvinciaID, err = strconv.Atoi(value)
		case "municipio_id":
			f.MunicipioID, err = strconv.Atoi(value)
		case "categoria_id":
			f.CategoriaID, err = strconv.Atoi(value)
		case "estado":
			f.Estado = value
		case "tipo":
			f.Tipo = value
		case "fecha_inicio":
			f.FechaInicio = value
		case "fecha_fin":
			f.FechaFin = value
		case "limit":
			f.Limit, err = strconv.Atoi(value)
		case "offset":
			f.Offset, err = strconv.Atoi(value)
		default:
			return AdminFilters{}, fmt.Errorf("unknown filter %q", name)
		}
		if err != nil {
			return AdminFilters{}, fmt.Errorf("filter %s: %w", name, err)
		}
	}
	return f, nil
}

// UpdateOposicion is the PATCH body. Only set fields are sent.
type UpdateOposicion struct {
	ID                int     `json:"id"`
	ProvinciaID       *int    `json:"provincia_id,omitempty"`
	CategoriaID       *int    `json:"categoria_id,omitempty"`
	MunicipioID       *int    `json:"municipio_id,omitempty"`
	Tipo              *string `json:"tipo,omitempty"`
	Estado            *string `json:"estado,omitempty"`
	NumPlazas         *int    `json:"num_plazas,omitempty"`
	URLBasesOficiales *string `json:"url_bases_oficiales,omitempty"`
	FechaConvocatoria *string `json:"fecha_convocatoria,omitempty"`
	FechaFin          *string `json:"fecha_fin,omitempty"`
	Observaciones     *string `json:"observaciones,omitempty"`
}

type CreateOposicion struct {
	ProvinciaNombre   string  `json:"provincia_nombre"`
	CategoriaNombre   string  `json:"categoria_nombre"`
	CCAA              *string `json:"ccaa,omitempty"`
	NumPlazas         int     `json:"num_plazas"`
	URLBasesOficiales string  `json:"url_bases_oficiales"`
	FechaConvocatoria string  `json:"fecha_convocatoria"`
	Tipo              string  `json:"tipo"`
	ProvinciaID       int     `json:"provincia_id"`
	Convocante        string  `json:"convocante"`
	MunicipioID       *int    `json:"municipio_id,omitempty"`
	CategoriaID       int     `json:"categoria_id"`
	Estado            string  `json:"estado"`
	FechaFin          *string `json:"fecha_fin,omitempty"`
	Observaciones     *string `json:"observaciones,omitempty"`
}

type CompareTemario struct {
	UserID      int `json:"user_id"`
	OposicionID int `json:"oposicion_id"`
}
