package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
	"github.com/dmitrijs2005/opoclient/internal/client/models"
	"github.com/dmitrijs2005/opoclient/internal/client/services"
	"github.com/dmitrijs2005/opoclient/internal/logging"
)

// Services bundles what the console talks to.
type Services struct {
	Auth        services.AuthService
	Catalog     services.CatalogService
	Oposiciones services.OposicionService
	Recursos    services.RecursoService
	Temarios    services.TemarioService
}

// NewServices wires every service to one API client.
func NewServices(client *api.Client, log logging.Logger) Services {
	return Services{
		Auth:        services.NewAuthService(client, log),
		Catalog:     services.NewCatalogService(client, log),
		Oposiciones: services.NewOposicionService(client, log),
		Recursos:    services.NewRecursoService(client, log),
		Temarios:    services.NewTemarioService(client, log),
	}
}

type App struct {
	svc    Services
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	user *models.User
}

func NewApp(svc Services, log logging.Logger) *App {
	return newApp(svc, log, os.Stdin, os.Stdout)
}

func newApp(svc Services, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{svc: svc, log: log, reader: bufio.NewReader(in), out: out}
}

// Run restores a stored session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	a.restore(ctx)
	a.Root(ctx)
}

// OnSessionLost is installed as the API client's session-lost hook.
func (a *App) OnSessionLost(ctx context.Context) {
	a.mu.Lock()
	had := a.user != nil
	a.user = nil
	a.mu.Unlock()

	if had {
		fmt.Fprintln(a.out, "Your session has expired. Please login again.")
	}
	a.log.Info(ctx, "console returned to logged-out state")
}

func (a *App) restore(ctx context.Context) {
	u, err := a.svc.Auth.CurrentUser(ctx)
	if err != nil {
		a.log.Warn(ctx, "restore session", "err", err)
		return
	}
	if u != nil {
		a.setUser(u)
		fmt.Fprintf(a.out, "Resumed session of %s\n", u.Username)
	}
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) getStatus() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf(" (%s %s)", u.Username, u.Rol)
}

// Root prints the banner and runs the REPL.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Oposiciones console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}
