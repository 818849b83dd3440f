package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds every runtime setting of the dashboard client.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// API configures how the scan backend is reached.
	API struct {
		// BaseURL is the root address of the scan service.
		BaseURL string `env:"AV_API_BASE_URL" env-default:"http://localhost:8001" yaml:"baseUrl"`
		// RequestTimeout bounds each individual API call.
		RequestTimeout time.Duration `env:"AV_API_REQUEST_TIMEOUT" env-default:"5s" yaml:"requestTimeout"`
		// MaxRPS throttles outgoing requests; 0 disables throttling.
		MaxRPS float64 `env:"AV_API_MAX_RPS" env-default:"0" yaml:"maxRps"`
	} `yaml:"api"`

	// Poller configures the scan status poll loop.
	Poller struct {
		// Interval is the delay between status queries while a scan runs.
		Interval time.Duration `env:"POLLER_INTERVAL" env-default:"3s" yaml:"interval"`
		// AbortOnStatusError stops the loop on the first failed status query
		// instead of retrying on the next tick.
		AbortOnStatusError bool `env:"POLLER_ABORT_ON_STATUS_ERROR" env-default:"false" yaml:"abortOnStatusError"`
		// ResultsPageSize is how many result rows the completion fetch asks for.
		ResultsPageSize int `env:"POLLER_RESULTS_PAGE_SIZE" env-default:"50" yaml:"resultsPageSize"`
	} `yaml:"poller"`

	// Cache configures the local scan-history cache.
	Cache struct {
		// Path is the SQLite database file; empty disables the cache.
		Path string `env:"CACHE_PATH" env-default:"" yaml:"path"`
	} `yaml:"cache"`

	// HistoryLimit is the default number of history entries fetched.
	HistoryLimit int `env:"HISTORY_LIMIT" env-default:"20" yaml:"historyLimit"`
}

// Load reads the yaml config file at configPath and returns a filled Config.
// A missing file is not an error; settings then come from the environment and
// defaults only.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
