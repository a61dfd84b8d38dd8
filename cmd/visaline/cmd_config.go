package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var uiConfigCmd = &cobra.Command{
	Use:   "ui-config",
	Short: "Show the server-driven UI configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.uiconfig.Fetch(cmd.Context()); err != nil {
			return err
		}

		values := current.uiconfig.Values()
		if values.BannerText != "" {
			fmt.Println(infoStyle.Render(values.BannerText))
		}
		if values.SupportPhone != "" {
			fmt.Println("support: " + values.SupportPhone)
		}
		if values.SupportEmail != "" {
			fmt.Println("support: " + values.SupportEmail)
		}

		names := make([]string, 0, len(values.Features))
		for name := range values.Features {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			mark := dimStyle.Render("off")
			if values.Features[name] {
				mark = successStyle.Render("on")
			}
			fmt.Printf("  %s: %s\n", name, mark)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uiConfigCmd)
}
