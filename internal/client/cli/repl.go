package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. The real App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
	Provincias(ctx context.Context) error
	Categorias(ctx context.Context) error
	Municipios(ctx context.Context) error
	AddProvincia(ctx context.Context, args []string) error
	AddCategoria(ctx context.Context, args []string) error
	AddMunicipio(ctx context.Context, args []string) error
	CreateOposicion(ctx context.Context, args []string) error
	EditOposicion(ctx context.Context, args []string) error
	Compare(ctx context.Context, args []string) error
	Temarios(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: login, list, help, exit"
	helpLoggedIn  = "Available commands: whoami, (l)ist, admin [name=value...], provincias, categorias, municipios,\n" +
		"  add-provincia <nombre>, add-categoria <nombre>, add-municipio <nombre>,\n" +
		"  create-oposicion name=value..., edit-oposicion <id> name=value...,\n" +
		"  compare <oposicion_id>, temarios, upload <oposicion_id> <file|url> <titulo>, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a until EOF,
// "exit" or "quit". Command errors are printed and the loop goes on.
//
// Not logged in:
//
//	help, login, list, exit | quit
//
// Logged in additionally:
//
//	whoami, admin, provincias, categorias, municipios, add-provincia,
//	add-categoria, add-municipio, create-oposicion, edit-oposicion,
//	compare, temarios, upload, logout
//
// admin, add-*, create-oposicion and edit-oposicion need an administrator;
// upload needs an administrator or a profesor.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("opo%s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsLogin(cmd) && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "admin":
			cmdErr = a.Admin(ctx, args)
		case "provincias":
			cmdErr = a.Provincias(ctx)
		case "categorias":
			cmdErr = a.Categorias(ctx)
		case "municipios":
			cmdErr = a.Municipios(ctx)
		case "add-provincia":
			cmdErr = a.AddProvincia(ctx, args)
		case "add-categoria":
			cmdErr = a.AddCategoria(ctx, args)
		case "add-municipio":
			cmdErr = a.AddMunicipio(ctx, args)
		case "create-oposicion":
			cmdErr = a.CreateOposicion(ctx, args)
		case "edit-oposicion":
			cmdErr = a.EditOposicion(ctx, args)
		case "compare":
			cmdErr = a.Compare(ctx, args)
		case "temarios":
			cmdErr = a.Temarios(ctx)
		case "upload":
			cmdErr = a.Upload(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", describe(cmdErr))
		}
	}
}

func needsLogin(cmd string) bool {
	switch cmd {
	case "help", "login", "l", "list", "exit", "quit":
		return false
	}
	return true
}
