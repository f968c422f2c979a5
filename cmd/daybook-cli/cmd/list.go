package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"daybook/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"lists"},
	Short:   "Manage checklists",
	Long: `Create, show and delete lists. Items are managed with the item command.

Examples:
  daybook-cli list create Groceries
  daybook-cli list show
  daybook-cli item add 1 Milk
  daybook-cli item toggle 1 3`,
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		result, err := commands.NewCreateListCommand(s.Sessions, s.Lists, strings.Join(args, " ")).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var listShowCmd = &cobra.Command{
	Use:     "show [list-id]",
	Aliases: []string{"ls"},
	Short:   "Show lists with their items",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		show := commands.NewShowListsCommand(s.Sessions, s.Lists)
		if len(args) == 1 {
			id, err := parseID("list", args[0])
			if err != nil {
				return err
			}
			show.ListID = id
		}
		lists, err := show.Execute(ctx)
		if err != nil {
			return err
		}
		printLists(lists)
		return nil
	},
}

var listRmCmd = &cobra.Command{
	Use:     "rm <list-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a list and all its items",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		id, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteListCommand(s.Sessions, s.Lists, id).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Manage list items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <list-id> <title>",
	Short: "Add an item to a list",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		listID, err := parseID("list", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewAddItemCommand(s.Sessions, s.Lists, listID, strings.Join(args[1:], " ")).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var itemRmCmd = &cobra.Command{
	Use:     "rm <list-id> <item-id>",
	Aliases: []string{"delete"},
	Short:   "Remove an item from a list",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		listID, itemID, err := parseItemArgs(args)
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteItemCommand(s.Sessions, s.Lists, listID, itemID).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var itemToggleCmd = &cobra.Command{
	Use:   "toggle <list-id> <item-id>",
	Short: "Flip an item between done and not done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		listID, itemID, err := parseItemArgs(args)
		if err != nil {
			return err
		}
		result, err := commands.NewToggleItemCommand(s.Sessions, s.Lists, listID, itemID).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id: %s", what, s)
	}
	return id, nil
}

func parseItemArgs(args []string) (int64, int64, error) {
	listID, err := parseID("list", args[0])
	if err != nil {
		return 0, 0, err
	}
	itemID, err := parseID("item", args[1])
	if err != nil {
		return 0, 0, err
	}
	return listID, itemID, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listCreateCmd)
	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listRmCmd)

	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemRmCmd)
	itemCmd.AddCommand(itemToggleCmd)
}
