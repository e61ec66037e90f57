package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/opoclient/internal/client/models"
)

func (a *App) Temarios(ctx context.Context) error {
	u := a.currentUser()
	if u == nil {
		return errLoggedOut
	}
	list, err := a.svc.Temarios.MyTemarios(ctx, *u)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No temarios yet")
		return nil
	}

	for _, o := range list {
		fmt.Fprintf(a.out, "[%d] %s (%s)\n", o.IDOposicion, o.TituloOposicion, o.EstadoSolicitud)
		for _, tema := range o.Temario {
			fmt.Fprintf(a.out, "  - %s\n", tema.TituloTemaOposicion)
			for _, r := range tema.Recursos {
				fmt.Fprintf(a.out, "      %s  %s\n", r.Filename, r.URL)
			}
		}
	}
	return nil
}

// Upload attaches a file or a link to an oposicion:
//
//	upload <oposicion_id> <path|http(s) url> <titulo...>
func (a *App) Upload(ctx context.Context, args []string) error {
	if err := a.requireUploader(ctx); err != nil {
		return err
	}
	if len(args) < 3 {
		return errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("oposicion id: %w", err)
	}

	r := models.RecursoUpload{
		OposicionID: id,
		Titulo:      strings.Join(args[2:], " "),
	}

	source := args[1]
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		r.URL = source
	} else {
		data, err := os.ReadFile(source)
		if err != nil {
			return err
		}
		r.Filename = filepath.Base(source)
		r.Data = data
	}

	if err := a.svc.Recursos.Upload(ctx, r); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Recurso uploaded")
	return nil
}
