package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type UploadHostConfig struct {
	URL    string
	Preset string
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type WatcherConfig struct {
	Schedule string
	PageSize int
}

type AppConfig struct {
	Environment string
	StateDir    string
	API         APIConfig
	UploadHost  UploadHostConfig
	Storage     StorageConfig
	Watcher     WatcherConfig
}

func Load() (*AppConfig, error) {
	return LoadFrom(".", defaultStateDir())
}

// LoadFrom reads config.yaml from the given directories, first hit wins.
func LoadFrom(paths ...string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("VISALINE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("statedir", defaultStateDir())

	v.SetDefault("api.baseurl", "https://api.visaline.app/api")
	// Zero means the transport default; the client imposes no timeout of
	// its own.
	v.SetDefault("api.timeout", "0s")

	v.SetDefault("uploadhost.url", "https://upload.visaline.app/v1/files")
	v.SetDefault("uploadhost.preset", "visaline_documents")

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.bucket", "visaline-documents")
	v.SetDefault("storage.usessl", true)
	v.SetDefault("storage.region", "us-east-1")

	v.SetDefault("watcher.schedule", "0 */1 * * * *") // every minute
	v.SetDefault("watcher.pagesize", 20)
}

func defaultStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".visaline"
	}
	return filepath.Join(home, ".visaline")
}
