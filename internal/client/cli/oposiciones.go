package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/opoclient/internal/client/models"
)

func (a *App) List(ctx context.Context) error {
	list, err := a.svc.Oposiciones.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No oposiciones")
		return nil
	}

	rows := make([][]string, len(list))
	for i, o := range list {
		rows[i] = []string{o.ID, o.Titulo, o.Descripcion, strconv.Itoa(o.Plazas), string(o.Estado), o.FechaConvocatoria}
	}
	table(a.out, []string{"ID", "TITULO", "DESCRIPCION", "PLAZAS", "ESTADO", "CONVOCATORIA"}, rows)
	return nil
}

// Admin lists oposiciones with the admin filters given as name=value.
func (a *App) Admin(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	filters, err := models.ParseAdminFilters(args)
	if err != nil {
		return err
	}

	page, err := a.svc.Oposiciones.ListAdmin(ctx, filters)
	if err != nil {
		return err
	}

	rows := make([][]string, len(page.Data))
	for i, o := range page.Data {
		rows[i] = []string{
			strconv.Itoa(o.ID), o.Titulo, o.NombreCategoria, o.NombreProvincia,
			orDash(o.NombreMunicipio), o.Tipo, o.Estado, strconv.Itoa(o.NumPlazas),
		}
	}
	table(a.out, []string{"ID", "TITULO", "CATEGORIA", "PROVINCIA", "MUNICIPIO", "TIPO", "ESTADO", "PLAZAS"}, rows)

	offset := max(filters.Offset, 0)
	fmt.Fprintf(a.out, "%d-%d of %d\n", min(offset+1, page.Total), offset+len(page.Data), page.Total)
	return nil
}

// Compare asks the backend to compare the user's temario with an
// oposicion.
func (a *App) Compare(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	oposicionID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("oposicion id: %w", err)
	}

	u := a.currentUser()
	if u == nil {
		return errLoggedOut
	}
	userID, err := strconv.Atoi(u.ID)
	if err != nil {
		return fmt.Errorf("user id %q: %w", u.ID, err)
	}

	if err := a.svc.Oposiciones.CompareTemario(ctx, models.CompareTemario{UserID: userID, OposicionID: oposicionID}); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Comparison requested")
	return nil
}

// CreateOposicion adds an oposicion from name=value fields. The provincia
// and categoria names are looked up from their ids.
func (a *App) CreateOposicion(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	payload, err := models.ParseCreateOposicion(args)
	if err != nil {
		return err
	}

	provincias, err := a.svc.Catalog.Provincias(ctx)
	if err != nil {
		return err
	}
	for _, p := range provincias {
		if p.ID == payload.ProvinciaID {
			payload.ProvinciaNombre = p.Nombre
		}
	}
	if payload.ProvinciaNombre == "" {
		return fmt.Errorf("unknown provincia_id %d", payload.ProvinciaID)
	}

	categorias, err := a.svc.Catalog.Categorias(ctx)
	if err != nil {
		return err
	}
	for _, c := range categorias {
		if c.ID == payload.CategoriaID {
			payload.CategoriaNombre = c.Nombre
		}
	}
	if payload.CategoriaNombre == "" {
		return fmt.Errorf("unknown categoria_id %d", payload.CategoriaID)
	}

	if err := a.svc.Oposiciones.Create(ctx, payload); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Oposicion created: %s, %s\n", payload.CategoriaNombre, payload.ProvinciaNombre)
	return nil
}

// EditOposicion patches the given fields of one oposicion:
//
//	edit-oposicion <id> name=value...
func (a *App) EditOposicion(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if len(args) < 2 {
		return errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("oposicion id: %w", err)
	}

	payload, err := models.ParseUpdateOposicion(id, args[1:])
	if err != nil {
		return err
	}
	if err := a.svc.Oposiciones.Update(ctx, payload); err != nil {
		return err
	}

	names := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		if name, _, ok := strings.Cut(arg, "="); ok {
			names = append(names, name)
		}
	}
	fmt.Fprintf(a.out, "Oposicion %d updated: %s\n", id, strings.Join(names, ", "))
	return nil
}
