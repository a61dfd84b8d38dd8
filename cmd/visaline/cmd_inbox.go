package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Read the notification inbox",
}

var (
	inboxPage  int
	inboxLimit int
)

var inboxListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications page by page",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if err := current.inbox.Fetch(cmd.Context(), inboxPage, inboxLimit); err != nil {
			return err
		}

		for _, item := range current.inbox.Items() {
			marker := dimStyle.Render("·")
			if !item.IsRead {
				marker = infoStyle.Render("●")
			}
			fmt.Printf("%s %s  %s\n", marker, titleStyle.Render(item.Title), dimStyle.Render(item.CreatedAt.Format(time.RFC3339)))
			if item.Message != "" {
				fmt.Println("   " + item.Message)
			}
		}
		fmt.Println(dimStyle.Render(fmt.Sprintf("page %d of %d, %d unread",
			current.inbox.Page(), current.inbox.TotalPages(), current.inbox.Unread())))
		return nil
	},
}

var inboxClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		return current.inbox.ClearAll(cmd.Context())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the inbox and toast new notifications",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		watcher := current.watcher()
		if err := watcher.Start(current.cfg.Watcher.Schedule); err != nil {
			return err
		}
		fmt.Println(dimStyle.Render("watching inbox, ctrl-c to stop"))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		watcher.Stop()
		return nil
	},
}

func init() {
	inboxListCmd.Flags().IntVar(&inboxPage, "page", 1, "page number")
	inboxListCmd.Flags().IntVar(&inboxLimit, "limit", 20, "items per page")

	inboxCmd.AddCommand(inboxListCmd, inboxClearCmd)
	rootCmd.AddCommand(inboxCmd)
	rootCmd.AddCommand(watchCmd)
}
