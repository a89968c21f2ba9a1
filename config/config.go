package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Supported display languages. The analysis service translates its
// narrative report into whichever of these is requested.
const (
	LanguageEnglish = "en"
	LanguageHindi   = "hi"
)

// DefaultBusinessType is sent when the user never picks a category.
const DefaultBusinessType = "Retail"

type Config struct {
	// APIBaseURL points at the analysis service. Resolved once at
	// startup; the client is constructed with it and never re-reads it.
	APIBaseURL string `json:"api_base_url"`

	// Timeout bounds the single analysis request. Statement parsing
	// plus AI narrative generation on the server side can take a while.
	Timeout time.Duration `json:"timeout"`

	BusinessType string `json:"business_type"`
	Language     string `json:"language"`

	Debug bool `json:"debug"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		APIBaseURL:   "http://localhost:8000",
		Timeout:      120 * time.Second,
		BusinessType: DefaultBusinessType,
		Language:     LanguageEnglish,
		Debug:        false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	// Override with environment variables if they exist
	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("FINSIGHT_API_URL"); val != "" {
		c.APIBaseURL = val
	}
	if val := os.Getenv("FINSIGHT_TIMEOUT_SECONDS"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
			c.Timeout = time.Duration(secs) * time.Second
		}
	}
	if val := os.Getenv("FINSIGHT_BUSINESS_TYPE"); val != "" {
		c.BusinessType = val
	}
	if val := os.Getenv("FINSIGHT_LANGUAGE"); val != "" {
		c.Language = val
	}
	if val := os.Getenv("FINSIGHT_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

// Validate checks the fields a session cannot run without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return fmt.Errorf("invalid FINSIGHT_API_URL %q: %w", c.APIBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid FINSIGHT_API_URL %q: scheme must be http or https", c.APIBaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid FINSIGHT_API_URL %q: missing host", c.APIBaseURL)
	}
	if c.Language != LanguageEnglish && c.Language != LanguageHindi {
		return fmt.Errorf("unsupported language %q (supported: %s, %s)", c.Language, LanguageEnglish, LanguageHindi)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}
