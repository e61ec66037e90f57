package cli

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
)

var (
	errUsage       = errors.New("wrong arguments, type 'help'")
	errLoginFailed = errors.New("login failed: unexpected server response")
	errLoggedOut   = errors.New("not logged in")
	errRole        = errors.New("your role cannot run this command")
)

// describe turns client errors into messages for the console user.
func describe(err error) string {
	var herr *api.HTTPError
	switch {
	case errors.Is(err, api.ErrSessionLost):
		return "your session has expired, please login again"
	case errors.Is(err, api.ErrTimeout):
		return "the server did not answer in time"
	case errors.Is(err, api.ErrUnavailable):
		return "server unavailable"
	case errors.Is(err, api.ErrUnauthorized):
		return "not authorized"
	case errors.As(err, &herr) && herr.StatusCode == http.StatusForbidden:
		return "forbidden for your role"
	default:
		return err.Error()
	}
}
