package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBaseURL          = "http://localhost:5000/api"
	defaultAPIFilesBaseURL     = "http://localhost:5000"
	defaultAPITimeout          = 15 * time.Second
	defaultAPIErrorMessagePath = "message || error"
)

// APIConfig configures the client for the school REST API.
type APIConfig struct {
	// BaseURL is the API root every endpoint path is appended to.
	BaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:5000/api"`

	// FilesBaseURL resolves relative document file_url values into download links.
	FilesBaseURL string `env:"API_FILES_BASE_URL" envDefault:"http://localhost:5000"`

	// Timeout bounds each API round trip.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// ErrorMessagePath is a JMESPath expression selecting the user-facing message
	// from a JSON error body.
	ErrorMessagePath string `env:"API_ERROR_MESSAGE_PATH" envDefault:"message || error"`
}

// Sanitize trims URLs and restores defaults for blank or non-positive values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultAPIBaseURL
	}
	c.FilesBaseURL = strings.TrimRight(strings.TrimSpace(c.FilesBaseURL), "/")
	if c.FilesBaseURL == "" {
		c.FilesBaseURL = defaultAPIFilesBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
	if c.ErrorMessagePath = strings.TrimSpace(c.ErrorMessagePath); c.ErrorMessagePath == "" {
		c.ErrorMessagePath = defaultAPIErrorMessagePath
	}
}
