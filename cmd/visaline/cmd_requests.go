package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"visaline/internal/models"
	"visaline/internal/state"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Submit and track service requests",
}

func statusStyle(status models.RequestStatus) lipgloss.Style {
	switch status {
	case models.RequestStatusCompleted:
		return successStyle
	case models.RequestStatusRejected, models.RequestStatusCancelled:
		return errorStyle
	case models.RequestStatusProcessing:
		return infoStyle
	}
	return warningStyle
}

func printRequests(list []models.ServiceRequest) {
	for _, req := range list {
		fmt.Printf("%s  %s", req.ID, titleStyle.Render(req.Service))
		if req.SubServiceName != "" {
			fmt.Printf(" / %s", req.SubServiceName)
		}
		fmt.Printf("  %s", statusStyle(req.Status).Render(string(req.Status)))
		fmt.Printf("  %s\n", dimStyle.Render(req.CreatedAt.Format(time.RFC3339)))
		if req.RejectedReason != "" {
			fmt.Println("  reason: " + req.RejectedReason)
		}
		for _, out := range req.Outputs {
			fmt.Println("  output: " + out.URL)
		}
	}
}

var requestsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List your submitted requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if err := current.requests.Mine(cmd.Context()); err != nil {
			return err
		}
		printRequests(current.requests.MyRequests())
		return nil
	},
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all requests (admin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if err := current.requests.All(cmd.Context()); err != nil {
			return err
		}
		printRequests(current.requests.AllRequests())
		return nil
	},
}

var (
	createService    string
	createSubService string
	createData       []string
	createDocs       []string
)

var requestsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Submit a new service request",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		if current.requests.Loading() {
			// Creation is not idempotent; never double-submit.
			return fmt.Errorf("a submission is already in flight")
		}

		formData := make(map[string]any, len(createData))
		for _, pair := range createData {
			key, value, found := strings.Cut(pair, "=")
			if !found {
				return fmt.Errorf("invalid --data %q, want key=value", pair)
			}
			formData[key] = value
		}

		var documents []models.UploadedFile
		if len(createDocs) > 0 {
			uploader, err := current.uploader()
			if err != nil {
				return err
			}
			for _, docPath := range createDocs {
				file, err := os.Open(docPath)
				if err != nil {
					return fmt.Errorf("open document: %w", err)
				}
				info, err := file.Stat()
				if err != nil {
					file.Close()
					return fmt.Errorf("stat document: %w", err)
				}
				uploaded, err := uploader.Upload(cmd.Context(), filepath.Base(docPath), file, info.Size())
				file.Close()
				if err != nil {
					current.notifier.Error("Could not upload " + filepath.Base(docPath))
					return err
				}
				documents = append(documents, uploaded)
			}
		}

		outcome, err := current.requests.Create(cmd.Context(), state.CreateRequestInput{
			Service:        createService,
			SubServiceName: createSubService,
			FormData:       formData,
			Documents:      documents,
		})
		if err != nil {
			return err
		}

		if outcome.ExternalAddress != "" {
			fmt.Println(titleStyle.Render("Document delivery required"))
			fmt.Println("  " + outcome.ExternalAddress)
		} else {
			fmt.Println("request id: " + outcome.Request.ID)
		}
		return nil
	},
}

var rejectedReason string

var requestsSetStatusCmd = &cobra.Command{
	Use:   "set-status <request-id> <status>",
	Short: "Change a request's status (admin)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}

		// Load the admin list first so the terminal-state guard sees the
		// request's current status.
		if err := current.requests.All(cmd.Context()); err != nil {
			return err
		}

		return current.requests.UpdateStatus(cmd.Context(), args[0], state.UpdateStatusInput{
			Status:         models.RequestStatus(args[1]),
			RejectedReason: rejectedReason,
		})
	},
}

func init() {
	requestsCreateCmd.Flags().StringVar(&createService, "service", "", "service id")
	requestsCreateCmd.Flags().StringVar(&createSubService, "sub-service", "", "sub-service name")
	requestsCreateCmd.Flags().StringArrayVar(&createData, "data", nil, "form field key=value (repeatable)")
	requestsCreateCmd.Flags().StringArrayVar(&createDocs, "doc", nil, "document file to upload (repeatable)")
	requestsCreateCmd.MarkFlagRequired("service")

	requestsSetStatusCmd.Flags().StringVar(&rejectedReason, "reason", "", "rejection reason")

	requestsCmd.AddCommand(
		requestsMineCmd,
		requestsListCmd,
		requestsCreateCmd,
		requestsSetStatusCmd,
	)
	rootCmd.AddCommand(requestsCmd)
}
