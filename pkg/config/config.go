package config

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config represents the client configuration structure
type Config struct {
	// DefaultEndpoint is used as the target endpoint when an operation does not specify one
	// and no single active session disambiguates the target ('VCD_DEFAULT_ENDPOINT')
	DefaultEndpoint string `split_words:"true"`
	// Insecure disables TLS certificate verification ('VCD_INSECURE')
	Insecure bool `default:"false"`
	// HTTPTimeout is the per-request timeout of the underlying HTTP client ('VCD_HTTP_TIMEOUT')
	HTTPTimeout time.Duration `split_words:"true" default:"30s"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("vcd", config); err != nil {
		return nil, err
	}
	return config, nil
}

// NewHTTPClient builds the HTTP client the API operations use, applying the configured
// request timeout and, if requested, disabled certificate verification
func NewHTTPClient(config *Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if config.Insecure {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
	}
	return &http.Client{
		Transport: transport,
		Timeout:   config.HTTPTimeout,
	}
}
