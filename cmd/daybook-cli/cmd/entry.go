package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daybook/internal/application/commands"
	"daybook/internal/application/stores"
	"daybook/internal/domain"
)

// newEntryCmd builds the add/ls/rm/edit subcommands shared by events, tasks and notes
func newEntryCmd(kind domain.EntryKind, use string, aliases ...string) *cobra.Command {
	root := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   fmt.Sprintf("Manage %ss", kind),
	}

	store := func() *stores.EntryStore {
		s, _ := GetServices().Entries(kind)
		return s
	}

	var (
		date, at, content, repeat string
		count                     int
		useEditor                 bool
	)
	add := &cobra.Command{
		Use:   "add <title>",
		Short: fmt.Sprintf("Add a %s", kind),
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s := GetServices()

			d, err := s.ParseDate(date)
			if err != nil {
				return err
			}
			body := content
			if useEditor {
				body, err = GetEditor().Compose(content)
				if err != nil {
					return err
				}
			}

			create := commands.NewCreateEntryCommand(s.Sessions, store(), domain.Draft{
				Title:   strings.Join(args, " "),
				Content: body,
				Date:    domain.FormatDate(d),
				Time:    at,
			})
			create.Repeat = commands.Repeat{Frequency: repeat, Count: count}
			result, err := create.Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
	add.Flags().StringVarP(&date, "date", "d", "", "date YYYY-MM-DD (default today)")
	add.Flags().StringVarP(&at, "time", "t", "", "time of day HH:MM")
	add.Flags().StringVarP(&content, "content", "c", "", "body text")
	add.Flags().StringVar(&repeat, "repeat", "", "daily, weekly or monthly")
	add.Flags().IntVar(&count, "count", 1, "number of occurrences when repeating")
	add.Flags().BoolVarP(&useEditor, "edit", "e", false, "write the body in $EDITOR")

	var from, to string
	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   fmt.Sprintf("List %ss in a date range", kind),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			entries, err := commands.NewListEntriesCommand(GetServices().Sessions, store(), from, to).Execute(ctx)
			if err != nil {
				return err
			}
			printEntries(entries)
			return nil
		},
	}
	ls.Flags().StringVar(&from, "from", "", "first date YYYY-MM-DD")
	ls.Flags().StringVar(&to, "to", "", "last date YYYY-MM-DD")

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   fmt.Sprintf("Delete a %s", kind),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			result, err := commands.NewDeleteEntryCommand(GetServices().Sessions, store(), args[0]).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}

	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: fmt.Sprintf("Change fields of a %s", kind),
		Long: `Change the title, content, date or time of an entry. Only the flags
that are given change. Use --time "" to clear the time of day.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var patch domain.EntryPatch
			flags := cmd.Flags()
			for name, dst := range map[string]**string{
				"title": &patch.Title, "content": &patch.Content, "date": &patch.Date, "time": &patch.Time,
			} {
				if flags.Changed(name) {
					v, _ := flags.GetString(name)
					*dst = &v
				}
			}
			result, err := commands.NewUpdateEntryCommand(GetServices().Sessions, store(), args[0], patch).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
	edit.Flags().String("title", "", "new title")
	edit.Flags().String("content", "", "new body text")
	edit.Flags().String("date", "", "new date YYYY-MM-DD")
	edit.Flags().String("time", "", "new time HH:MM")

	root.AddCommand(add, ls, rm, edit)

	if kind == domain.EntryKindTask {
		var undo bool
		done := &cobra.Command{
			Use:   "done <id>",
			Short: "Mark a task done",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := context.Background()
				toggle := commands.NewToggleTaskCommand(GetServices().Sessions, store(), args[0])
				state := !undo
				toggle.Done = &state
				result, err := toggle.Execute(ctx)
				if err != nil {
					return err
				}
				fmt.Println(result.Message)
				return nil
			},
		}
		done.Flags().BoolVar(&undo, "undo", false, "mark the task not done")
		root.AddCommand(done)
	}
	return root
}

func init() {
	rootCmd.AddCommand(newEntryCmd(domain.EntryKindCalendar, "event", "events"))
	rootCmd.AddCommand(newEntryCmd(domain.EntryKindTask, "task", "tasks"))
	rootCmd.AddCommand(newEntryCmd(domain.EntryKindNote, "note", "notes"))
}
