// Command acctl drives the service desk API from a terminal. The session
// token is kept in SESSION_FILE between invocations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"acservice/internal/apiclient"
	"acservice/internal/config"
)

const usage = `usage: acctl <command> [flags]

commands:
  login -phone P -password S    sign in and save the session
  logout                        forget the saved session
  me                            show the signed-in account
  users [list|create|update|delete]
  complaints [list|my|get|create|update]
  assign <complaint-id> <user-id>
  payment <complaint-id> -amount A -advance B [-method M] [-notes N]
  dashboard                     admin counters and revenue
  audit [-entity ID] [-page N] [-limit N]
  watch                         stream complaint events until interrupted
`

type app struct {
	client *apiclient.Client
	out    io.Writer
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	a := &app{
		client: apiclient.New(cfg.Client.APIURL,
			apiclient.WithTimeout(cfg.Client.Timeout),
			apiclient.WithSessionStore(apiclient.NewFileStore(cfg.Client.SessionFile)),
			apiclient.WithLogger(logger),
		),
		out: os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		logger.Debug("command failed", "command", os.Args[1], "error", err)
		fmt.Fprintln(os.Stderr, "error:", message(err))
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.logout(ctx)
	case "me":
		return a.me(ctx)
	case "users":
		return a.users(ctx, args)
	case "complaints":
		return a.complaints(ctx, args)
	case "assign":
		return a.assign(ctx, args)
	case "payment":
		return a.payment(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	case "audit":
		return a.audit(ctx, args)
	case "watch":
		return a.watch(ctx)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	}
	return errUsage
}

// message turns client errors into one line for the terminal
func message(err error) string {
	var sessErr *apiclient.SessionError
	switch {
	case errors.Is(err, apiclient.ErrNotLoggedIn):
		return "not logged in, run acctl login"
	case apiclient.IsAPIError(err), apiclient.IsTransportError(err), apiclient.IsValidationError(err),
		errors.As(err, &sessErr):
		return apiclient.UserMessage(err)
	}
	return err.Error()
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", fs.Name(), err)
	}
	return nil
}
