package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"daybook/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the configuration file",
}

var (
	initPath      string
	initEmail     string
	initWeekStart string
	initForce     bool
)

var configInitCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a configuration file with a new local identity",
	Annotations: map[string]string{"skipServices": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPath
		if path == "" {
			var err error
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}

		c := config.DefaultConfig()
		c.UserID = uuid.New().String()
		c.UserEmail = initEmail
		c.WeekStart = initWeekStart
		if err := config.Save(path, c); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s (user %s)\n", path, c.UserID)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl := newTable()
		source := cfg.Source
		if source == "" {
			source = "(defaults and environment)"
		}
		tbl.AddRow("source", source)
		tbl.AddRow("db", cfg.DB)
		tbl.AddRow("blob_dir", cfg.BlobDir)
		tbl.AddRow("blob_base_url", cfg.BlobBaseURL)
		tbl.AddRow("user_id", cfg.UserID)
		tbl.AddRow("user_email", cfg.UserEmail)
		tbl.AddRow("week_start", cfg.WeekStart)
		tbl.AddRow("timezone", cfg.Timezone)
		tbl.AddRow("log_level", cfg.LogLevel)
		fmt.Println(tbl)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().StringVar(&initPath, "path", "", "where to write the file (default ~/.daybook.yaml)")
	configInitCmd.Flags().StringVar(&initEmail, "email", "", "email for the local identity")
	configInitCmd.Flags().StringVar(&initWeekStart, "week-start", "sunday", "sunday or monday")
	configInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing file")
}
