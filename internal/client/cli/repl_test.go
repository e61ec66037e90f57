package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/opoclient/internal/client/api"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	failWith error

	calls []string
	args  [][]string
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.failWith
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error     { return f.record("whoami", nil) }
func (f *fakeExec) List(ctx context.Context) error       { return f.record("list", nil) }
func (f *fakeExec) Provincias(ctx context.Context) error { return f.record("provincias", nil) }
func (f *fakeExec) Categorias(ctx context.Context) error { return f.record("categorias", nil) }
func (f *fakeExec) Municipios(ctx context.Context) error { return f.record("municipios", nil) }
func (f *fakeExec) Temarios(ctx context.Context) error   { return f.record("temarios", nil) }
func (f *fakeExec) Admin(ctx context.Context, args []string) error {
	return f.record("admin", args)
}
func (f *fakeExec) AddProvincia(ctx context.Context, args []string) error {
	return f.record("add-provincia", args)
}
func (f *fakeExec) AddCategoria(ctx context.Context, args []string) error {
	return f.record("add-categoria", args)
}
func (f *fakeExec) AddMunicipio(ctx context.Context, args []string) error {
	return f.record("add-municipio", args)
}
func (f *fakeExec) CreateOposicion(ctx context.Context, args []string) error {
	return f.record("create-oposicion", args)
}
func (f *fakeExec) EditOposicion(ctx context.Context, args []string) error {
	return f.record("edit-oposicion", args)
}
func (f *fakeExec) Compare(ctx context.Context, args []string) error {
	return f.record("compare", args)
}
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}

// capturePrints redirects printlnFn and returns what was printed.
func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"provincias",
		"login",
		"help",
		"admin search=aux limit=5",
		"l",
		"add-provincia Santa Cruz de Tenerife",
		"compare 12",
		"create-oposicion tipo=Bolsa",
		"edit-oposicion 4 estado=Cerrado",
		"upload 3 https://boe.example Bases oficiales",
		"temarios",
		"foobar",
		"logout",
		"whoami",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{
		"login", "admin", "list", "add-provincia", "compare",
		"create-oposicion", "edit-oposicion", "upload", "temarios", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"search=aux", "limit=5"}, exec.args[1])
	assert.Equal(t, []string{"Santa", "Cruz", "de", "Tenerife"}, exec.args[3])
	assert.Equal(t, []string{"4", "estado=Cerrado"}, exec.args[6])

	assert.Contains(t, *printed, helpLoggedOut)
	assert.Contains(t, *printed, helpLoggedIn)
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "Bye!")

	var gated int
	for _, l := range *printed {
		if l == "Please login first" {
			gated++
		}
	}
	assert.Equal(t, 2, gated, "provincias before login and whoami after logout")
}

func TestRunREPL_PrintsCommandErrors(t *testing.T) {
	printed := capturePrints(t)

	exec := &fakeExec{loggedIn: true, failWith: fmt.Errorf("list: %w", api.ErrUnavailable)}
	runREPL(context.Background(), exec, func() string { return " (ana)" }, rdr("list\nquit\n"))

	assert.Equal(t, []string{"list"}, exec.calls)
	assert.Contains(t, *printed, "opo (ana)> ")
	assert.Contains(t, *printed, "Error: server unavailable")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("whoami"))

	assert.Equal(t, []string{"whoami"}, exec.calls)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&api.RenewalError{Err: errors.New("revoked")}, "your session has expired, please login again"},
		{fmt.Errorf("%w: %w", api.ErrSessionLost, &api.HTTPError{StatusCode: 401}), "your session has expired, please login again"},
		{fmt.Errorf("%w: deadline", api.ErrTimeout), "the server did not answer in time"},
		{api.ErrUnavailable, "server unavailable"},
		{&api.HTTPError{StatusCode: 401}, "not authorized"},
		{&api.HTTPError{StatusCode: 403}, "forbidden for your role"},
		{errUsage, errUsage.Error()},
		{errRole, "your role cannot run this command"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, describe(tt.err))
	}
}
