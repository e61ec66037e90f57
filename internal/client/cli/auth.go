package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/opoclient/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for email and password. The password is wiped before
// returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.svc.Auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if u == nil {
		return errLoginFailed
	}

	a.setUser(u)
	fmt.Fprintf(a.out, "Welcome, %s (%s)\n", u.Nombre, u.Rol)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	err := a.svc.Auth.Logout(ctx)
	a.setUser(nil)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.currentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "id:       %s\nusername: %s\nnombre:   %s\nrol:      %s\n", u.ID, u.Username, u.Nombre, u.Rol)
	if u.ProfesorID != "" {
		fmt.Fprintf(a.out, "profesor: %s\n", u.ProfesorID)
	}
	switch {
	case a.svc.Auth.IsAdmin(ctx):
		fmt.Fprintln(a.out, "can:      manage oposiciones, catalogs and recursos")
	case a.svc.Auth.IsProfesor(ctx):
		fmt.Fprintln(a.out, "can:      upload recursos")
	case a.svc.Auth.IsEstudiante(ctx):
		fmt.Fprintln(a.out, "can:      compare temarios")
	}
	if !a.svc.Auth.IsAuthenticated(ctx) {
		fmt.Fprintln(a.out, "access token expired, it will be renewed on the next request")
	}
	return nil
}

// requireAdmin fails unless the stored user is an administrator.
func (a *App) requireAdmin(ctx context.Context) error {
	if !a.svc.Auth.IsAdmin(ctx) {
		return errRole
	}
	return nil
}

// requireUploader fails unless the stored user may upload recursos.
func (a *App) requireUploader(ctx context.Context) error {
	if !a.svc.Auth.IsAdmin(ctx) && !a.svc.Auth.IsProfesor(ctx) {
		return errRole
	}
	return nil
}
