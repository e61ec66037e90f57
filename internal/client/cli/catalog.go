package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

func (a *App) Provincias(ctx context.Context) error {
	list, err := a.svc.Catalog.Provincias(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, len(list))
	for i, p := range list {
		rows[i] = []string{strconv.Itoa(p.ID), p.Nombre}
	}
	table(a.out, []string{"ID", "NOMBRE"}, rows)
	return nil
}

func (a *App) Categorias(ctx context.Context) error {
	list, err := a.svc.Catalog.Categorias(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, len(list))
	for i, c := range list {
		rows[i] = []string{strconv.Itoa(c.ID), c.Nombre}
	}
	table(a.out, []string{"ID", "NOMBRE"}, rows)
	return nil
}

func (a *App) Municipios(ctx context.Context) error {
	list, err := a.svc.Catalog.Municipios(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, len(list))
	for i, m := range list {
		prov := "-"
		if m.ProvinciaID != nil {
			prov = strconv.Itoa(*m.ProvinciaID)
		}
		rows[i] = []string{strconv.Itoa(m.ID), m.Nombre, prov}
	}
	table(a.out, []string{"ID", "NOMBRE", "PROVINCIA"}, rows)
	return nil
}

// nombre joins the arguments, or prompts when there are none.
func (a *App) nombre(args []string, what string) (string, error) {
	if n := strings.TrimSpace(strings.Join(args, " ")); n != "" {
		return n, nil
	}
	n, err := getSimpleText(a.reader, "Nombre de la "+what, a.out)
	if err != nil {
		return "", err
	}
	if n == "" {
		return "", errUsage
	}
	return n, nil
}

func (a *App) AddProvincia(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	n, err := a.nombre(args, "provincia")
	if err != nil {
		return err
	}
	p, err := a.svc.Catalog.CreateProvincia(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created provincia %d %s\n", p.ID, p.Nombre)
	return nil
}

func (a *App) AddCategoria(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	n, err := a.nombre(args, "categoria")
	if err != nil {
		return err
	}
	c, err := a.svc.Catalog.CreateCategoria(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created categoria %d %s\n", c.ID, c.Nombre)
	return nil
}

func (a *App) AddMunicipio(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	n, err := a.nombre(args, "municipio")
	if err != nil {
		return err
	}
	m, err := a.svc.Catalog.CreateMunicipio(ctx, n)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created municipio %d %s\n", m.ID, m.Nombre)
	return nil
}
