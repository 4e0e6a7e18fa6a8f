package googleauth

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvClientID     = "GOOGLE_CLIENT_ID"
	EnvClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvTokenPath    = "GOOGLE_TOKEN_PATH"
)

// Config holds the OAuth client configuration for this deployment.
type Config struct {
	ClientID     string
	ClientSecret string

	// TokenPath is the location of the token cache file.
	TokenPath string
}

// ConfigFromEnv builds a Config from the environment. The client ID and
// secret are required; the token path falls back to DefaultTokenPath.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		TokenPath:    os.Getenv(EnvTokenPath),
	}

	if cfg.ClientID == "" {
		return nil, fmt.Errorf("%s is not set", EnvClientID)
	}
	if cfg.ClientSecret == "" {
		return nil, fmt.Errorf("%s is not set", EnvClientSecret)
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = DefaultTokenPath()
	}

	return cfg, nil
}

// DefaultTokenPath returns the token cache location used when
// GOOGLE_TOKEN_PATH is not set.
func DefaultTokenPath() string {
	return filepath.Join(homeDir(), ".workspace-mcp", "token.json")
}

// OAuthConfig returns the OAuth2 configuration for all Workspace services.
func (c *Config) OAuthConfig() *oauth2.Config {
	const OOB = "urn:ietf:wg:oauth:2.0:oob"
	return &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  OOB,
		Scopes:       DefaultOAuthScopes,
	}
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	return os.Getenv("HOME")
}
