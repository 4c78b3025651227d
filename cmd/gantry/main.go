package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/calebhart/gantry/internal/assistant"
	"github.com/calebhart/gantry/internal/cli"
	"github.com/calebhart/gantry/internal/db"
	"github.com/calebhart/gantry/internal/llm"
	"github.com/calebhart/gantry/internal/repository"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Chat history DB path: env var or default ~/.gantry/gantry.db
	dbPath := os.Getenv("GANTRY_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dir := filepath.Join(home, ".gantry")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating state directory: %w", err)
		}
		dbPath = filepath.Join(dir, "gantry.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	app := &cli.App{
		Conversations: repository.NewSQLiteConversationRepo(database),
	}

	// Detect interactive terminal for the assist TUI.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// The assistant only talks to a model when one is configured; it
	// answers with deterministic fallbacks otherwise.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewOllamaClient(llmCfg, observer)
		app.Assistant = assistant.New(client, observer)
		app.AssistantEnabled = true
	} else {
		app.Assistant = assistant.Disabled()
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
