package models

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of every oposicion date field.
const DateLayout = "2006-01-02"

var (
	ErrBadField     = errors.New("field must be name=value")
	ErrMissingField = errors.New("missing required field")
	ErrNoChanges    = errors.New("nothing to change")
)

type field struct {
	name, value string
}

// splitFields reads name=value pairs. A word without '=' continues the
// previous value, so free text such as observaciones can span words.
func splitFields(args []string) ([]field, error) {
	var out []field
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			if len(out) == 0 {
				return nil, ErrBadField
			}
			out[len(out)-1].value += " " + arg
			continue
		}
		if name == "" {
			return nil, ErrBadField
		}
		out = append(out, field{name: name, value: value})
	}
	return out, nil
}

func intField(v string) (*int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func dateField(v string) (*string, error) {
	if _, err := time.Parse(DateLayout, v); err != nil {
		return nil, fmt.Errorf("want %s", DateLayout)
	}
	return &v, nil
}

func urlField(v string) (*string, error) {
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return &v, nil
}

// ParseUpdateOposicion builds the PATCH body for oposicion id from
// name=value pairs named like the JSON fields.
func ParseUpdateOposicion(id int, args []string) (UpdateOposicion, error) {
	fields, err := splitFields(args)
	if err != nil {
		return UpdateOposicion{}, err
	}
	if len(fields) == 0 {
		return UpdateOposicion{}, ErrNoChanges
	}

	u := UpdateOposicion{ID: id}
	for _, f := range fields {
		value := f.value
		var err error
		switch f.name {
		case "provincia_id":
			u.ProvinciaID, err = intField(value)
		case "categoria_id":
			u.CategoriaID, err = intField(value)
		case "municipio_id":
			u.MunicipioID, err = intField(value)
		case "num_plazas":
			u.NumPlazas, err = intField(value)
		case "tipo":
			u.Tipo = &value
		case "estado":
			u.Estado = &value
		case "url_bases_oficiales":
			u.URLBasesOficiales, err = urlField(value)
		case "fecha_convocatoria":
			u.FechaConvocatoria, err = dateField(value)
		case "fecha_fin":
			u.FechaFin, err = dateField(value)
		case "observaciones":
			u.Observaciones = &value
		default:
			return UpdateOposicion{}, fmt.Errorf("unknown field %q", f.name)
		}
		if err != nil {
			return UpdateOposicion{}, fmt.Errorf("field %s: %w", f.name, err)
		}
	}
	return u, nil
}

var createRequired = []string{
	"provincia_id", "categoria_id", "convocante", "num_plazas",
	"tipo", "estado", "url_bases_oficiales", "fecha_convocatoria",
}

// ParseCreateOposicion builds the POST body from name=value pairs. The
// provincia and categoria names are left for the caller to resolve.
func ParseCreateOposicion(args []string) (CreateOposicion, error) {
	fields, err := splitFields(args)
	if err != nil {
		return CreateOposicion{}, err
	}

	var c CreateOposicion
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		value := f.value
		var (
			n   *int
			s   *string
			err error
		)
		switch f.name {
		case "provincia_id":
			if n, err = intField(value); err == nil {
				c.ProvinciaID = *n
			}
		case "categoria_id":
			if n, err = intField(value); err == nil {
				c.CategoriaID = *n
			}
		case "municipio_id":
			c.MunicipioID, err = intField(value)
		case "num_plazas":
			if n, err = intField(value); err == nil {
				c.NumPlazas = *n
			}
		case "convocante":
			c.Convocante = value
		case "ccaa":
			c.CCAA = &value
		case "tipo":
			c.Tipo = value
		case "estado":
			c.Estado = value
		case "url_bases_oficiales":
			if s, err = urlField(value); err == nil {
				c.URLBasesOficiales = *s
			}
		case "fecha_convocatoria":
			if s, err = dateField(value); err == nil {
				c.FechaConvocatoria = *s
			}
		case "fecha_fin":
			c.FechaFin, err = dateField(value)
		case "observaciones":
			c.Observaciones = &value
		default:
			return CreateOposicion{}, fmt.Errorf("unknown field %q", f.name)
		}
		if err != nil {
			return CreateOposicion{}, fmt.Errorf("field %s: %w", f.name, err)
		}
		seen[f.name] = value != ""
	}

	var missing []string
	for _, name := range createRequired {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return CreateOposicion{}, fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return c, nil
}
