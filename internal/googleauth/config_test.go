package googleauth

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name         string
		clientID     string
		clientSecret string
		tokenPath    string
		wantErr      string
	}{
		{"all set", "id", "secret", "/tmp/token.json", ""},
		{"default token path", "id", "secret", "", ""},
		{"missing client id", "", "secret", "", EnvClientID},
		{"missing client secret", "id", "", "", EnvClientSecret},
		{"missing both reports client id first", "", "", "", EnvClientID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvClientID, tt.clientID)
			t.Setenv(EnvClientSecret, tt.clientSecret)
			t.Setenv(EnvTokenPath, tt.tokenPath)

			cfg, err := ConfigFromEnv()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("ConfigFromEnv() error = nil, want mention of %s", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("ConfigFromEnv() error = %v, want mention of %s", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ConfigFromEnv() error = %v", err)
			}
			if cfg.ClientID != tt.clientID {
				t.Errorf("ClientID = %q, want %q", cfg.ClientID, tt.clientID)
			}
			if tt.tokenPath != "" && cfg.TokenPath != tt.tokenPath {
				t.Errorf("TokenPath = %q, want %q", cfg.TokenPath, tt.tokenPath)
			}
			if tt.tokenPath == "" && cfg.TokenPath != DefaultTokenPath() {
				t.Errorf("TokenPath = %q, want default %q", cfg.TokenPath, DefaultTokenPath())
			}
		})
	}
}

func TestDefaultTokenPath(t *testing.T) {
	got := DefaultTokenPath()
	if filepath.Base(got) != "token.json" {
		t.Errorf("DefaultTokenPath() = %q, want base token.json", got)
	}
	if !strings.Contains(got, ".workspace-mcp") {
		t.Errorf("DefaultTokenPath() = %q, want a .workspace-mcp directory", got)
	}
}

func TestOAuthConfig(t *testing.T) {
	cfg := &Config{ClientID: "id", ClientSecret: "secret", TokenPath: "/tmp/t.json"}

	oc := cfg.OAuthConfig()
	if oc.ClientID != "id" || oc.ClientSecret != "secret" {
		t.Errorf("OAuthConfig() credentials = %q/%q", oc.ClientID, oc.ClientSecret)
	}
	if len(oc.Scopes) != len(DefaultOAuthScopes) {
		t.Errorf("OAuthConfig() scopes = %d, want %d", len(oc.Scopes), len(DefaultOAuthScopes))
	}
	if oc.Endpoint.TokenURL == "" {
		t.Error("OAuthConfig() endpoint not set")
	}
}
