package cmd

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daybook/internal/application/commands"
	"daybook/internal/domain"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		result, err := commands.NewGetProfileCommand(s.Sessions, s.Profiles).Execute(ctx)
		if err != nil {
			return err
		}
		if result.Message != "" {
			_, _ = dimColor.Fprintln(color.Output, result.Message)
		}
		tbl := newTable()
		tbl.AddRow("Name:", result.Profile.Name)
		tbl.AddRow("Email:", result.Email)
		tbl.AddRow("Bio:", result.Profile.Bio)
		tbl.AddRow("Avatar:", result.Profile.Avatar)
		_, _ = fmt.Fprintln(color.Output, tbl)
		return nil
	},
}

var profileName, profileBio, profileAvatar string

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save name, bio and avatar",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		p := domain.Profile{Name: profileName, Bio: profileBio, Avatar: profileAvatar}
		result, err := commands.NewUpdateProfileCommand(s.Sessions, s.Profiles, p).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)

	profileSetCmd.Flags().StringVar(&profileName, "name", "", "display name (required)")
	profileSetCmd.Flags().StringVar(&profileBio, "bio", "", "short bio")
	profileSetCmd.Flags().StringVar(&profileAvatar, "avatar", "", "avatar URL")
}
