package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"daybook/internal/application/commands"
	"daybook/internal/domain"
)

var calendarCmd = &cobra.Command{
	Use:     "calendar",
	Aliases: []string{"cal"},
	Short:   "Show, export and import the calendar",
}

var (
	calDate string
	calView string
	calStep int
)

var calendarShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the month, week or day around a date",
	Long: `Show the calendar with every entry, task and note placed in its cell.

Examples:
  daybook-cli calendar show
  daybook-cli calendar show --view week --date 2024-03-10
  daybook-cli calendar show --view day --step -1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()

		cursor := s.Cursor()
		anchor, err := s.ParseDate(calDate)
		if err != nil {
			return err
		}
		cursor.Anchor = anchor
		g, err := domain.ParseGranularity(calView)
		if err != nil {
			return err
		}
		cursor.SetGranularity(g)

		dir := domain.Next
		n := calStep
		if n < 0 {
			dir, n = domain.Prev, -n
		}
		for i := 0; i < n; i++ {
			cursor.Step(dir)
		}

		res, err := commands.NewCalendarViewCommand(s.Sessions, cursor, s.EntryStores()...).Execute(ctx)
		if err != nil {
			return err
		}
		printGrid(res.Title, cursor.Granularity, res.Buckets)
		return nil
	},
}

var (
	exportFrom string
	exportTo   string
	exportOut  string
)

var calendarExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calendar entries as iCalendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()

		var out io.Writer = os.Stdout
		if exportOut != "" && exportOut != "-" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOut, err)
			}
			defer f.Close()
			out = f
		}

		export := commands.NewExportCalendarCommand(s.Sessions, s.Calendar, s.Codec, out)
		export.From, export.To = exportFrom, exportTo
		result, err := export.Execute(ctx)
		if err != nil {
			return err
		}
		if out != os.Stdout {
			fmt.Println(result.Message)
		}
		return nil
	},
}

var (
	importFrom string
	importTo   string
)

var calendarImportCmd = &cobra.Command{
	Use:   "import <file.ics>",
	Short: "Create calendar entries from an iCalendar file",
	Long: `Create one calendar entry per event in an iCalendar file.

Recurring events are expanded between --from and --to. Without a window
they are expanded from their first occurrence. Each recurring event
creates at most 500 entries.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		imp := commands.NewImportCalendarCommand(s.Sessions, s.Calendar, s.Codec, f, s.Location)
		imp.From, imp.To = importFrom, importTo
		result, err := imp.Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.AddCommand(calendarShowCmd)
	calendarCmd.AddCommand(calendarExportCmd)
	calendarCmd.AddCommand(calendarImportCmd)

	calendarShowCmd.Flags().StringVarP(&calDate, "date", "d", "", "anchor date YYYY-MM-DD (default today)")
	calendarShowCmd.Flags().StringVarP(&calView, "view", "v", "month", "month, week or day")
	calendarShowCmd.Flags().IntVarP(&calStep, "step", "s", 0, "periods to move from the anchor, negative moves back")

	calendarExportCmd.Flags().StringVar(&exportFrom, "from", "", "first date YYYY-MM-DD")
	calendarExportCmd.Flags().StringVar(&exportTo, "to", "", "last date YYYY-MM-DD")
	calendarExportCmd.Flags().StringVarP(&exportOut, "output", "o", "-", "output file, - for stdout")

	calendarImportCmd.Flags().StringVar(&importFrom, "from", "", "first date of the recurrence window")
	calendarImportCmd.Flags().StringVar(&importTo, "to", "", "last date of the recurrence window")
}
