package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"ewaste-admin-console/internal/config"
	"ewaste-admin-console/internal/console"
	"ewaste-admin-console/internal/logger"
	"ewaste-admin-console/internal/service"
	"ewaste-admin-console/internal/session"
	"ewaste-admin-console/internal/terminal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	sessions := session.NewManager(session.NewFileStore(cfg.SessionFile))

	cmd := "run"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "run":
		err = run(cfg, sessions, log)
	case "login":
		err = login(sessions, os.Args[2:])
	case "logout":
		err = logout(sessions)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	yellow := color.New(color.FgYellow)

	fmt.Println("Usage: admin-console [command]")
	fmt.Println()
	yellow.Println("Commands:")
	fmt.Println("  run              Open the console (default)")
	fmt.Println("  login <token>    Store a bearer token issued by the marketplace login")
	fmt.Println("  logout           Forget the stored token and profile")
	fmt.Println()
	yellow.Println("Environment:")
	fmt.Println("  ADMIN_API_URL        Marketplace API base URL (default: http://localhost:3000)")
	fmt.Println("  ADMIN_SESSION_FILE   Where the session is kept (default: ~/.ewaste-admin/session.json)")
	fmt.Println("  ADMIN_HTTP_TIMEOUT   Per-request timeout, e.g. 10s (default: none)")
	fmt.Println("  LOG_LEVEL            debug, info, warn or error (default: info)")
	fmt.Println()
}

func login(sessions *session.Manager, args []string) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: admin-console login <token>")
	}
	// The cached profile belongs to whoever held the previous token.
	if err := sessions.Clear(); err != nil {
		return err
	}
	if err := sessions.SetToken(args[0]); err != nil {
		return err
	}
	fmt.Println("Token stored. Run admin-console to open the console.")
	return nil
}

func logout(sessions *session.Manager) error {
	if err := sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

func run(cfg *config.Config, sessions *session.Manager, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	term := terminal.New(os.Stdin, os.Stdout)
	c := console.New(console.Options{
		API:       service.NewAdminClient(cfg.APIURL, cfg.HTTPTimeout, log),
		Sessions:  sessions,
		View:      term,
		Prompter:  term,
		Navigator: term,
		Log:       log,
	})

	// On failure the terminal has already shown the redirect or the denial.
	if err := c.Start(ctx); err != nil {
		return err
	}

	cyan := color.New(color.FgCyan)
	cyan.Printf("Signed in as %s\n", c.User().Email)
	return term.Run(ctx, c)
}
