package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
	"github.com/dmitrijs2005/opoclient/internal/client/credentials"
	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/logging"
)

const (
	loginPath  = "/loginOpo"
	logoutPath = "/logoutOpo"
)

// AuthService manages the user session.
//
// Contract:
//   - Login: authenticate and persist access token, refresh token and user.
//     Returns (nil, nil) when the backend answers without a token or user.
//   - Logout: best-effort server logout, then local state is always wiped.
//   - CurrentUser: the stored user, or nil.
//   - IsAuthenticated: a user and an access token are both stored.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
	IsProfesor(ctx context.Context) bool
	IsEstudiante(ctx context.Context) bool
	IsAdmin(ctx context.Context) bool
}

type authService struct {
	client *api.Client
	creds  *credentials.Keeper
	log    logging.Logger
}

func NewAuthService(client *api.Client, log logging.Logger) AuthService {
	return &authService{client: client, creds: client.Credentials(), log: log}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	var resp models.LoginResponse
	in := models.LoginRequest{Email: email, Password: string(password)}
	if err := a.client.DoJSON(ctx, http.MethodPost, loginPath, nil, in, &resp); err != nil {
		a.log.Error(ctx, "login failed", "email", email, "err", err)
		return nil, err
	}

	if resp.AccessToken == "" || resp.User == nil {
		return nil, nil
	}

	user := resp.User.User()
	marker, err := user.Marker()
	if err != nil {
		return nil, fmt.Errorf("encode user: %w", err)
	}

	err = a.client.StartSession(ctx, credentials.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Marker:       marker,
	})
	if err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	a.log.Info(ctx, "logged in", "user_id", user.ID, "rol", user.Rol)
	return &user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	refreshToken, err := a.creds.RefreshToken(ctx)
	if err != nil {
		a.log.Warn(ctx, "read refresh token", "err", err)
	}

	if refreshToken != "" {
		body := map[string]string{"refreshToken": refreshToken}
		if err := a.client.Direct(ctx, http.MethodPost, logoutPath, body, nil); err != nil {
			a.log.Warn(ctx, "server logout failed, ignored", "err", err)
		}
	}

	return a.client.EndSession(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	marker, err := a.creds.Marker(ctx)
	if err != nil {
		return nil, err
	}
	return models.UserFromMarker(marker)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	marker, err := a.creds.Marker(ctx)
	if err != nil || marker == nil {
		return false
	}
	token, err := a.creds.AccessToken(ctx)
	return err == nil && token != ""
}

func (a *authService) hasRole(ctx context.Context, role models.Role) bool {
	u, err := a.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "read current user", "err", err)
		return false
	}
	return u != nil && u.Rol == role
}

func (a *authService) IsProfesor(ctx context.Context) bool {
	return a.hasRole(ctx, models.RoleProfesor)
}

func (a *authService) IsEstudiante(ctx context.Context) bool {
	return a.hasRole(ctx, models.RoleEstudiante)
}

func (a *authService) IsAdmin(ctx context.Context) bool {
	return a.hasRole(ctx, models.RoleAdministrador)
}
