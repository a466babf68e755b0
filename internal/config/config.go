package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/puchtools/puchcal/internal/fault"
)

// Default values for optional settings.
const (
	DefaultServiceAccountFile = "service_account.json"
	DefaultTokenCacheFile     = "token.json"
	DefaultCalendarID         = "primary"
)

// Config holds the runtime settings for the server. All values come
// from the environment, optionally seeded from a .env file.
type Config struct {
	// AuthToken is the static bearer token callers must present.
	AuthToken string

	// PhoneNumber is the owner's phone number in countrycode+number
	// form (no plus sign), returned by the validate tool and required
	// from HTTP callers.
	PhoneNumber string

	// ServiceAccountFile is the path to a Google service account key
	// in JSON form. Used when it exists; otherwise the OAuth token
	// cache is used.
	ServiceAccountFile string

	// ServiceAccountEmail is the service account's client email,
	// granted writer access to calendars during onboarding.
	ServiceAccountEmail string

	// OAuthClientID and OAuthClientSecret identify the OAuth app for
	// the interactive consent flow.
	OAuthClientID     string
	OAuthClientSecret string

	// TokenCacheFile is where the OAuth token obtained via consent is
	// persisted between runs.
	TokenCacheFile string

	// CalendarID is the calendar all event operations target.
	CalendarID string

	// ResumeFile is the path to the owner's resume PDF. When empty the
	// resume and job-assistant tools are not registered.
	ResumeFile string
}

// Load reads configuration from the environment. If a .env file exists
// in the working directory it is loaded first; a missing file is not
// an error, matching local-development expectations.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg := &Config{
		AuthToken:           os.Getenv("PUCH_TOKEN"),
		PhoneNumber:         os.Getenv("MY_PHONE_NUMBER"),
		ServiceAccountFile:  getenvDefault("SERVICE_ACCOUNT_FILE", DefaultServiceAccountFile),
		ServiceAccountEmail: os.Getenv("SERVICE_ACCOUNT_EMAIL"),
		OAuthClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		OAuthClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
		TokenCacheFile:      getenvDefault("TOKEN_CACHE_FILE", DefaultTokenCacheFile),
		CalendarID:          getenvDefault("CALENDAR_ID", DefaultCalendarID),
		ResumeFile:          os.Getenv("RESUME_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings required for serving are present.
func (c *Config) Validate() error {
	if c.AuthToken == "" {
		return fault.New(fault.KindValidation, "PUCH_TOKEN must be set")
	}
	if c.PhoneNumber == "" {
		return fault.New(fault.KindValidation, "MY_PHONE_NUMBER must be set")
	}
	return nil
}

// HasServiceAccount reports whether a service account key file is
// available on disk.
func (c *Config) HasServiceAccount() bool {
	if c.ServiceAccountFile == "" {
		return false
	}
	_, err := os.Stat(c.ServiceAccountFile)
	return err == nil
}

// HasOAuthClient reports whether the interactive consent flow can be
// used.
func (c *Config) HasOAuthClient() bool {
	return c.OAuthClientID != "" && c.OAuthClientSecret != ""
}

// HasResume reports whether the resume tools should be registered.
func (c *Config) HasResume() bool {
	return c.ResumeFile != ""
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
