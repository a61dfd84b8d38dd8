package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"visaline/internal/api"
	"visaline/internal/config"
	"visaline/internal/jobs"
	vlog "visaline/internal/log"
	"visaline/internal/notify"
	"visaline/internal/session"
	"visaline/internal/state"
	"visaline/internal/upload"
)

var (
	// Global flags
	apiURL  string
	verbose bool
)

// app is the composed client: config, logger, session, notification
// channel, API client and the domain slices every command reads from.
type app struct {
	cfg      *config.AppConfig
	log      zerolog.Logger
	store    *session.Store
	notifier *notify.Channel
	client   *api.Client

	auth     *state.Auth
	catalog  *state.Catalog
	requests *state.Requests
	inbox    *state.Inbox
	uiconfig *state.UIConfig
}

var current *app

var rootCmd = &cobra.Command{
	Use:   "visaline",
	Short: "visaline - visa and travel services client",
	Long: `visaline is the terminal client for the visaline visa-processing and
travel-services API: browse the service catalog, submit applications,
track request status and manage the notification inbox.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}

		logger := vlog.New(cfg.Environment, verbose)
		store := session.NewStore(cfg.StateDir, logger)
		notifier := notify.NewChannel()
		notifier.Subscribe(renderToast)

		client, err := api.New(api.Config{
			BaseURL: cfg.API.BaseURL,
			Timeout: cfg.API.Timeout,
			Tokens:  store,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		current = &app{
			cfg:      cfg,
			log:      logger,
			store:    store,
			notifier: notifier,
			client:   client,
			auth:     state.NewAuth(client, store, notifier, logger),
			catalog:  state.NewCatalog(client, notifier, logger),
			requests: state.NewRequests(client, notifier, logger),
			inbox:    state.NewInbox(client, notifier, logger),
			uiconfig: state.NewUIConfig(client, notifier, logger),
		}

		// The startup bootstrap gates every command.
		current.auth.LoadFromStorage()
		return nil
	},
}

// uploader picks the configured upload backend.
func (a *app) uploader() (upload.Uploader, error) {
	if a.cfg.Storage.Enabled {
		return upload.NewS3Uploader(a.cfg.Storage, a.log)
	}
	return upload.NewHostUploader(a.cfg.UploadHost, a.log), nil
}

func (a *app) watcher() *jobs.Watcher {
	return jobs.NewWatcher(a.inbox, a.notifier, a.cfg.Watcher.PageSize, a.log)
}

// requireSession guards commands that need a signed-in user.
func requireSession() error {
	if !current.auth.SignedIn() {
		return fmt.Errorf("not signed in; run `visaline auth login` first")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
