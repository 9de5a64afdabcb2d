// Package cli implements the interactive client shell: a small command loop
// over the server's register/login/profile endpoints. The bearer token from
// the last successful login is held in memory for the session only.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/authkeep/authkeep/internal/client/api"
	"github.com/authkeep/authkeep/internal/common"
)

type App struct {
	client *api.Client
	reader *bufio.Reader
	out    io.Writer
	token  string
}

func NewApp(client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{
		client: client,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Run executes commands until "quit" or EOF.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "commands: register, login, whoami, quit")
	for {
		cmd, err := GetSimpleText(a.reader, "", a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch cmd {
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "whoami":
			a.whoami(ctx)
		case "quit", "exit":
			return nil
		case "":
		default:
			fmt.Fprintf(a.out, "unknown command %q\n", cmd)
		}
	}
}

func (a *App) register(ctx context.Context) {
	username, password, err := a.promptCredentials()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeBytes(password)

	if err := a.client.Register(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateUsername):
			fmt.Fprintln(a.out, "That username is already taken.")
		case errors.Is(err, common.ErrValidation):
			fmt.Fprintln(a.out, "Username and password are required.")
		default:
			fmt.Fprintf(a.out, "Registration failed: %v\n", err)
		}
		return
	}

	fmt.Fprintln(a.out, "Registered.")
}

func (a *App) login(ctx context.Context) {
	username, password, err := a.promptCredentials()
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return
	}
	defer common.WipeBytes(password)

	token, err := a.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid credentials.")
		} else {
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		}
		return
	}

	a.token = token
	fmt.Fprintln(a.out, "Logged in.")
}

func (a *App) whoami(ctx context.Context) {
	if a.token == "" {
		fmt.Fprintln(a.out, "Not logged in.")
		return
	}

	subject, err := a.client.Whoami(ctx, a.token)
	if err != nil {
		fmt.Fprintf(a.out, "Request failed: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "You are %s\n", subject)
}

func (a *App) promptCredentials() (string, []byte, error) {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}
