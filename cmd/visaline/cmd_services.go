package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"visaline/internal/models"
	"visaline/internal/state"
)

var servicesCmd = &cobra.Command{
	Use:   "services",
	Short: "Browse and manage the service catalog",
}

var servicesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog services",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.catalog.Fetch(cmd.Context()); err != nil {
			return err
		}

		for _, svc := range current.catalog.Services() {
			status := successStyle.Render("active")
			if !svc.IsActive {
				status = dimStyle.Render("inactive")
			}
			fmt.Printf("%s  %s [%s]\n", svc.ID, titleStyle.Render(svc.Name), status)
			if svc.Description != "" {
				fmt.Println("  " + svc.Description)
			}
			if svc.EstimatedProcessingDays > 0 {
				fmt.Printf("  processing: ~%d days\n", svc.EstimatedProcessingDays)
			}
			for _, sub := range svc.SubServices {
				fmt.Printf("  - %s (%d fields)\n", sub.Name, len(sub.FormFields))
			}
		}
		return nil
	},
}

var (
	draftName        string
	draftDescription string
	draftImageURL    string
	draftDays        int
	draftDocuments   []string
	draftAirlines    []string
	draftUIType      string
	draftSubs        []string
	draftFields      []string
)

// buildDraft assembles a ServiceDraft from the repeated --sub and --field
// flags. Field spec: "<sub>:<label>:<type>[:required][:opt1,opt2]".
func buildDraft() (*state.ServiceDraft, error) {
	draft := &state.ServiceDraft{
		Name:                    draftName,
		Description:             draftDescription,
		ImageURL:                draftImageURL,
		EstimatedProcessingDays: draftDays,
		RequiredDocuments:       draftDocuments,
		Airlines:                draftAirlines,
		SubServicesUIType:       draftUIType,
	}

	for _, name := range draftSubs {
		if err := draft.AddSubService(name); err != nil {
			current.notifier.Warning(err.Error())
			return nil, err
		}
	}

	for _, spec := range draftFields {
		parts := strings.Split(spec, ":")
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid field spec %q, want sub:label:type[:required][:options]", spec)
		}
		sub, label, fieldType := parts[0], parts[1], models.FieldType(parts[2])

		required := false
		var options []string
		for _, extra := range parts[3:] {
			if extra == "required" {
				required = true
				continue
			}
			options = strings.Split(extra, ",")
		}

		if err := draft.AddFormField(sub, label, fieldType, required, options); err != nil {
			current.notifier.Warning(err.Error())
			return nil, err
		}
	}
	return draft, nil
}

var servicesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a catalog service",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		draft, err := buildDraft()
		if err != nil {
			return err
		}
		return current.catalog.Create(cmd.Context(), draft)
	},
}

var servicesUpdateCmd = &cobra.Command{
	Use:   "update <service-id>",
	Short: "Update a catalog service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		draft, err := buildDraft()
		if err != nil {
			return err
		}
		return current.catalog.Update(cmd.Context(), args[0], draft)
	},
}

var servicesDeleteCmd = &cobra.Command{
	Use:   "delete <service-id>",
	Short: "Delete a catalog service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		return current.catalog.Delete(cmd.Context(), args[0])
	},
}

var servicesToggleCmd = &cobra.Command{
	Use:   "toggle <service-id>",
	Short: "Toggle a service between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireSession(); err != nil {
			return err
		}
		return current.catalog.ToggleStatus(cmd.Context(), args[0])
	},
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&draftName, "name", "", "service name")
	cmd.Flags().StringVar(&draftDescription, "description", "", "service description")
	cmd.Flags().StringVar(&draftImageURL, "image-url", "", "catalog image URL")
	cmd.Flags().IntVar(&draftDays, "days", 0, "estimated processing days")
	cmd.Flags().StringSliceVar(&draftDocuments, "document", nil, "required document (repeatable)")
	cmd.Flags().StringSliceVar(&draftAirlines, "airline", nil, "airline option (repeatable)")
	cmd.Flags().StringVar(&draftUIType, "ui-type", "", "sub-service list presentation hint")
	cmd.Flags().StringArrayVar(&draftSubs, "sub", nil, "sub-service name (repeatable)")
	cmd.Flags().StringArrayVar(&draftFields, "field", nil, "form field spec sub:label:type[:required][:options]")
}

func init() {
	addDraftFlags(servicesCreateCmd)
	addDraftFlags(servicesUpdateCmd)
	servicesCreateCmd.MarkFlagRequired("name")

	servicesCmd.AddCommand(
		servicesListCmd,
		servicesCreateCmd,
		servicesUpdateCmd,
		servicesDeleteCmd,
		servicesToggleCmd,
	)
	rootCmd.AddCommand(servicesCmd)
}
