package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/avolkov/briefgen/internal/archive"
	"github.com/avolkov/briefgen/internal/cli"
	"github.com/avolkov/briefgen/internal/controller"
	"github.com/avolkov/briefgen/internal/db"
	"github.com/avolkov/briefgen/internal/llm"
	"github.com/avolkov/briefgen/internal/research"
	"github.com/avolkov/briefgen/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.briefgen/briefgen.db
	dbPath := os.Getenv("BRIEFGEN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".briefgen", "briefgen.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	llmCfg := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmCfg.LogCalls {
		observer = llm.NewLogObserver(os.Stderr)
	}
	client := llm.NewChatClient(llmCfg, observer)
	engine := research.NewEngine(client)

	promptArchive := archive.NewSQLiteArchive(database)

	opts := []controller.Option{controller.WithArchive(promptArchive)}
	if ms, err := strconv.Atoi(os.Getenv("BRIEFGEN_STALE_RESEARCH_MS")); err == nil && ms > 0 {
		opts = append(opts, controller.WithStaleAfter(time.Duration(ms)*time.Millisecond))
	}
	ctrl := controller.New(session.NewStore(), engine, opts...)

	app := &cli.App{
		Controller: ctrl,
		Archive:    promptArchive,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
