// Package cli is the terminal front end of the panel. It drives the same
// session service the web pages use, one command per process.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"auth-panel/internal/domain"
	"auth-panel/internal/session"
	"auth-panel/internal/tokeninfo"
	"auth-panel/internal/validation"
)

// Sessions is the part of the session service the commands need.
type Sessions interface {
	Start(ctx context.Context)
	Snapshot() session.State
	Login(ctx context.Context, creds domain.Credentials) error
	Register(ctx context.Context, reg domain.Registration) error
	Logout(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// ErrUsage reports an unknown or missing command.
var ErrUsage = errors.New("usage: panelctl <login|register|whoami|refresh|logout>")

// ErrInvalidInput is returned after field errors have been printed.
var ErrInvalidInput = errors.New("invalid input")

type App struct {
	sessions Sessions
	in       *bufio.Reader
	out      io.Writer
}

func NewApp(sessions Sessions, in io.Reader, out io.Writer) *App {
	return &App{
		sessions: sessions,
		in:       bufio.NewReader(in),
		out:      out,
	}
}

// Run restores the stored session and executes the command named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	a.sessions.Start(ctx)

	switch args[0] {
	case "login":
		return a.login(ctx, args[1:])
	case "register":
		return a.register(ctx, args[1:])
	case "whoami":
		return a.whoami()
	case "refresh":
		return a.refresh(ctx)
	case "logout":
		return a.logout(ctx)
	default:
		return ErrUsage
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := validation.LoginInput{Username: *username}
	var err error
	if in.Username == "" {
		if in.Username, err = readLine(a.in, a.out, "Usuário"); err != nil {
			return err
		}
	}
	if in.Password, err = readSecret(a.out, "Senha"); err != nil {
		return err
	}

	creds, errs := validation.Login(in)
	if errs != nil {
		a.printErrors(errs)
		return ErrInvalidInput
	}
	if err := a.sessions.Login(ctx, creds); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return a.whoami()
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("u", "", "username")
	fullName := fs.String("name", "", "full name (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := validation.RegisterInput{FullName: *fullName}
	in.Username = *username
	var err error
	if in.Username == "" {
		if in.Username, err = readLine(a.in, a.out, "Usuário"); err != nil {
			return err
		}
	}
	if in.Password, err = readSecret(a.out, "Senha"); err != nil {
		return err
	}
	if in.ConfirmPassword, err = readSecret(a.out, "Confirmar senha"); err != nil {
		return err
	}

	reg, errs := validation.Register(in)
	if errs != nil {
		a.printErrors(errs)
		return ErrInvalidInput
	}
	if err := a.sessions.Register(ctx, reg); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return a.whoami()
}

func (a *App) whoami() error {
	st := a.sessions.Snapshot()
	if !st.Authenticated {
		fmt.Fprintln(a.out, "Não autenticado.")
		return domain.ErrUnauthorized
	}

	u := st.User
	fmt.Fprintf(a.out, "Olá, %s!\n", u.DisplayName())
	fmt.Fprintf(a.out, "Usuário: %s\n", u.Username)
	if u.FullName != nil && *u.FullName != "" {
		fmt.Fprintf(a.out, "Nome completo: %s\n", *u.FullName)
	}
	fmt.Fprintf(a.out, "Desde: %s\n", u.CreatedAt.Format("2006-01-02 15:04"))
	if info, err := tokeninfo.Inspect(st.Token); err == nil && info.ExpiresAt != nil {
		fmt.Fprintf(a.out, "Sessão expira em: %s\n", info.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func (a *App) refresh(ctx context.Context) error {
	if err := a.sessions.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return a.whoami()
}

func (a *App) logout(ctx context.Context) error {
	if err := a.sessions.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(a.out, "Sessão encerrada.")
	return nil
}

func (a *App) printErrors(errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(a.out, "%s: %s\n", f, errs[f])
	}
}
