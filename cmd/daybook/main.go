package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"daybook/internal/adapters/editor"
	"daybook/internal/adapters/tui"
	"daybook/internal/app"
	"daybook/internal/config"
	applog "daybook/internal/log"
)

func main() {
	dbFlag := flag.String("db", "", "path to the daybook database (overrides config)")
	flag.Parse()

	if err := run(*dbFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DB = dbPath
	}

	svc, closeDB, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	// stderr belongs to the alt screen while the program runs
	path, err := cfg.DBPath()
	if err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(filepath.Dir(path), "daybook.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	applog.SetOutput(logFile)

	p := tea.NewProgram(tui.NewApp(svc, editor.NewOpener()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
