package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"daybook/internal/application/commands"
)

var photoCmd = &cobra.Command{
	Use:     "photo",
	Aliases: []string{"photos", "gallery"},
	Short:   "Manage the photo gallery",
}

var photoTitle string

var photoAddCmd = &cobra.Command{
	Use:   "add <url-or-file>",
	Short: "Add a photo from a URL or upload a local file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		url, file := "", args[0]
		if strings.HasPrefix(args[0], "http://") || strings.HasPrefix(args[0], "https://") {
			url, file = args[0], ""
		}
		result, err := commands.NewAddPhotoCommand(s.Sessions, s.Photos, url, file, photoTitle).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var photoLsCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List photos, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		photos, err := commands.NewListPhotosCommand(s.Sessions, s.Photos).Execute(ctx)
		if err != nil {
			return err
		}
		printPhotos(photos)
		return nil
	},
}

var photoRmCmd = &cobra.Command{
	Use:     "rm <photo-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a photo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		s := GetServices()
		id, err := parseID("photo", args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeletePhotoCommand(s.Sessions, s.Photos, id).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(photoCmd)
	photoCmd.AddCommand(photoAddCmd)
	photoCmd.AddCommand(photoLsCmd)
	photoCmd.AddCommand(photoRmCmd)

	photoAddCmd.Flags().StringVarP(&photoTitle, "title", "t", "", "photo title (default Untitled)")
}
