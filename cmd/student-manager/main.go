// main is the entry point of the Student Manager CLI.
//
// STARTUP SEQUENCE:
//  1. Parse flags and load configuration (YAML file optional)
//  2. Initialise the logger (stderr, so it never mixes with the menu)
//  3. Open the in-memory record store
//  4. Wire the directory, console and prompts into the menu
//  5. Run the menu until the operator picks Exit
//
// RUNNING:
//
//	go run ./cmd/student-manager
//	go run ./cmd/student-manager --config=config/local.yaml --no-color
//	printf '1\nAlice\n6\n' | go run ./cmd/student-manager --plain
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/aanand-mishra/student-manager/internal/config"
	"github.com/aanand-mishra/student-manager/internal/directory"
	"github.com/aanand-mishra/student-manager/internal/menu"
	"github.com/aanand-mishra/student-manager/internal/menu/handlers/student"
	"github.com/aanand-mishra/student-manager/internal/prompt"
	"github.com/aanand-mishra/student-manager/internal/storage"
	"github.com/aanand-mishra/student-manager/internal/storage/memory"
	"github.com/aanand-mishra/student-manager/internal/storage/sqlite"
	"github.com/aanand-mishra/student-manager/internal/utils/response"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the whole program so tests can drive it with their own streams.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("student-manager", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "Path to the configuration YAML file")
	noColor := flags.Bool("no-color", false, "Disable colored output")
	plain := flags.Bool("plain", false, "Read answers line by line instead of using interactive prompts")
	if err := flags.Parse(args); err != nil {
		return err
	}

	// ── 1. Load Config ────────────────────────────────────────────────────
	// CONFIG_PATH wins over --config, as before.
	path := config.PathFromEnv()
	if path == "" {
		path = *configPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if *noColor {
		cfg.Terminal.NoColor = true
	}

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env, cfg.Log.Level, stderr, !cfg.Terminal.NoColor && isTerminal(stderr))
	slog.SetDefault(log)

	log.Info("starting student-manager",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	store, err := openStorage(cfg.Storage.Driver)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		return err
	}
	defer store.Close()

	// ── 4. Wire the Menu ──────────────────────────────────────────────────
	console := response.NewConsole(stdout, !cfg.Terminal.NoColor && isTerminal(stdout),
		cfg.Terminal.Title, cfg.Terminal.Currency)

	dir := directory.New(store, console, directory.Settings{
		FirstID:        cfg.Directory.FirstID,
		OpeningBalance: cfg.Directory.OpeningBalance,
	})

	prompter := newPrompter(stdin, stdout, *plain)

	m := menu.New(prompter, console, menu.Routes{
		AddStudent:    student.New(dir, prompter),
		EnrollStudent: student.Enroll(dir, prompter),
		ViewBalance:   student.ViewBalance(dir, prompter),
		PayFees:       student.PayFees(dir, prompter),
		ShowStatus:    student.Status(dir, prompter),
	})

	// ── 5. Run ────────────────────────────────────────────────────────────
	if err := m.Run(ctx); err != nil {
		log.Error("menu stopped", slog.String("error", err.Error()))
		return err
	}

	if students, err := dir.Students(); err == nil {
		log.Info("session finished", slog.Int("students", len(students)))
	}
	return nil
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): tint's colored text output.
// Staging and production: JSON output.
func setupLogger(env, level string, w io.Writer, colored bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelError
	}

	switch env {
	case "prod", "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
	default:
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
			NoColor:    !colored,
		}))
	}
}

func openStorage(driver string) (storage.Storage, error) {
	switch driver {
	case "sqlite":
		return sqlite.New()
	default:
		return memory.New(), nil
	}
}

// newPrompter uses promptui when both ends are a terminal and the line
// prompter otherwise (pipes, scripts, --plain).
func newPrompter(stdin io.Reader, stdout io.Writer, plain bool) prompt.Prompter {
	in, inOK := stdin.(*os.File)
	out, outOK := stdout.(*os.File)
	if !plain && inOK && outOK && isatty.IsTerminal(in.Fd()) && isatty.IsTerminal(out.Fd()) {
		return prompt.NewInteractive(in, out)
	}
	return prompt.NewLine(stdin, stdout)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
