package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daybook/internal/adapters/editor"
	"daybook/internal/app"
	"daybook/internal/application"
	"daybook/internal/application/commands"
	"daybook/internal/config"
	"daybook/internal/ports"
)

var (
	dbPath   string
	logLevel string
	cfg      *config.Config
	svc      *commands.Services
	closeDB  func() error
)

var rootCmd = &cobra.Command{
	Use:   "daybook-cli",
	Short: "CLI for the daybook calendar, tasks, notes and lists",
	Long: `daybook-cli is a command-line interface to your daybook.

It shows the calendar by month, week or day and manages calendar entries,
daily tasks, notes, checklists, the photo gallery and your profile.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Annotations["skipServices"] == "true" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DB = dbPath
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		svc, closeDB, err = app.Open(cfg)
		return err
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if closeDB != nil {
			return closeDB()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, application.ErrAuthRequired) {
			fmt.Fprintln(os.Stderr, "hint: set user_id in ~/.daybook.yaml or DAYBOOK_USER_ID")
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the daybook database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info or error")
}

// GetServices returns the initialized services
func GetServices() *commands.Services {
	return svc
}

// GetEditor returns the editor used by --edit flags
func GetEditor() ports.EditorOpener {
	return editor.NewOpener()
}
