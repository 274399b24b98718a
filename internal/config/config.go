// Package config holds the persistent application configuration: the buyer's
// search criteria, shortlist sizing, and the credentials the upstream API and
// email sender need.
//
// Config lives at ~/.homescout/config.json. Credentials are never written to
// the config file; they come from the environment (a .env file is honored via
// godotenv so the daily runner and CI can inject them the same way).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the persistent application configuration.
type Config struct {
	// Search criteria applied upstream and by the local filter
	Location        string   `json:"location"`
	MinPrice        *float64 `json:"min_price,omitempty"`
	MaxPrice        *float64 `json:"max_price,omitempty"`
	MinBeds         *float64 `json:"min_beds,omitempty"`
	MaxBeds         *float64 `json:"max_beds,omitempty"`
	MinBaths        *float64 `json:"min_baths,omitempty"`
	MaxBaths        *float64 `json:"max_baths,omitempty"`
	MinSqft         *float64 `json:"min_sqft,omitempty"`
	MaxSqft         *float64 `json:"max_sqft,omitempty"`
	PropertyTypes   []string `json:"property_types,omitempty"`
	ZipCodes        []string `json:"zip_codes,omitempty"`
	MaxDaysOnMarket *float64 `json:"max_days_on_market,omitempty"`
	ExcludeFeatures []string `json:"exclude_features,omitempty"`

	// MaxListings bounds the daily shortlist
	MaxListings int `json:"max_listings"`

	// KeepPending disables the pending->dismissed transition so previously
	// shown listings stay eligible. Used while tuning criteria.
	KeepPending bool `json:"keep_pending"`

	// Secrets is populated from the environment, never persisted.
	Secrets Secrets `json:"-"`
}

// Secrets holds credentials sourced from the environment.
type Secrets struct {
	RapidAPIKey      string
	GmailAddress     string
	GmailAppPassword string
	Recipients       []string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Location:    "Austin, TX",
		MaxListings: 5,
	}
}

// Path returns the path to the config file.
func Path() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".homescout", "config.json")
}

// DataDir returns the directory holding the database and logs.
func DataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".homescout")
}

// Load reads config from disk, or returns defaults when absent or corrupt.
// Secrets are always re-read from the environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err == nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			// Corrupt config degrades to defaults rather than blocking the run
			cfg = DefaultConfig()
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.MaxListings <= 0 {
		cfg.MaxListings = 5
	}

	cfg.Secrets = loadSecrets()
	return cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// loadSecrets reads credentials from a .env file if present, then the process
// environment. Missing values stay empty; callers decide which ones are fatal.
func loadSecrets() Secrets {
	_ = godotenv.Load() // absent .env is fine

	s := Secrets{
		RapidAPIKey:      os.Getenv("RAPIDAPI_KEY"),
		GmailAddress:     os.Getenv("GMAIL_ADDRESS"),
		GmailAppPassword: os.Getenv("GMAIL_APP_PASSWORD"),
	}
	if r := os.Getenv("RECIPIENT_EMAIL"); r != "" {
		s.Recipients = append(s.Recipients, r)
	}
	if r := os.Getenv("RECIPIENT_EMAIL_2"); r != "" {
		s.Recipients = append(s.Recipients, r)
	}
	return s
}
