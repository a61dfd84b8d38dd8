package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload documents and print their hosted references",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		uploader, err := current.uploader()
		if err != nil {
			return err
		}

		for _, path := range args {
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			info, err := file.Stat()
			if err != nil {
				file.Close()
				return fmt.Errorf("stat %s: %w", path, err)
			}

			uploaded, err := uploader.Upload(cmd.Context(), filepath.Base(path), file, info.Size())
			file.Close()
			if err != nil {
				current.notifier.Error("Could not upload " + filepath.Base(path))
				return err
			}

			current.notifier.Success("Uploaded " + uploaded.Filename)
			fmt.Printf("  url: %s\n  id:  %s\n", uploaded.URL, uploaded.FileID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}
