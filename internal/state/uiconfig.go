package state

import (
	"context"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"

	"visaline/internal/api"
	"visaline/internal/notify"
)

// UIValues are the keys the client understands today. The schema is
// server-driven, so the raw map is kept alongside for anything newer.
type UIValues struct {
	BannerText   string          `mapstructure:"bannerText"`
	SupportPhone string          `mapstructure:"supportPhone"`
	SupportEmail string          `mapstructure:"supportEmail"`
	Features     map[string]bool `mapstructure:"features"`
}

// UIConfig owns the server-driven UI configuration map.
type UIConfig struct {
	lifecycle
	api      *api.Client
	notifier *notify.Channel
	log      zerolog.Logger

	raw    map[string]any
	values UIValues
}

func NewUIConfig(client *api.Client, notifier *notify.Channel, log zerolog.Logger) *UIConfig {
	return &UIConfig{api: client, notifier: notifier, log: log}
}

func (u *UIConfig) Fetch(ctx context.Context) error {
	u.begin()

	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := u.api.Get(ctx, "/ui/ui-config", nil, &resp); err != nil {
		return u.reject(u.notifier, err)
	}

	var values UIValues
	if err := mapstructure.Decode(resp.Data, &values); err != nil {
		// Unknown shapes are not fatal; the raw map still lands.
		u.log.Warn().Err(err).Msg("decode ui config")
	}

	u.mu.Lock()
	u.raw = resp.Data
	u.values = values
	u.loading = false
	u.err = ""
	u.mu.Unlock()
	return nil
}

func (u *UIConfig) Values() UIValues {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.values
}

// Raw returns the untyped config map as the server sent it.
func (u *UIConfig) Raw() map[string]any {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make(map[string]any, len(u.raw))
	for k, v := range u.raw {
		out[k] = v
	}
	return out
}

// FeatureEnabled reports a feature flag, false when unset.
func (u *UIConfig) FeatureEnabled(name string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.values.Features[name]
}
