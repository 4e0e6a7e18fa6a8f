package googleauth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// Token cache field names. The cache is a single JSON object so partial
// updates can be merged without losing fields the update does not carry.
const (
	fieldAccessToken  = "access_token"
	fieldRefreshToken = "refresh_token"
	fieldTokenType    = "token_type"
	fieldExpiry       = "expiry"
)

// Store reads and writes the token cache file.
type Store struct {
	path string
}

// NewStore creates a Store for the cache file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the cache file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the cached token, or nil when no usable record exists.
// A missing or corrupt cache file is treated as an empty cache, never
// as an error.
func (s *Store) Load() *oauth2.Token {
	rec := s.read()

	tok := &oauth2.Token{}
	tok.AccessToken, _ = rec[fieldAccessToken].(string)
	tok.RefreshToken, _ = rec[fieldRefreshToken].(string)
	tok.TokenType, _ = rec[fieldTokenType].(string)

	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil
	}

	// Without a parseable expiry the access token must be treated as
	// stale so the token source refreshes it before first use.
	tok.Expiry = time.Unix(1, 0)
	if v, ok := rec[fieldExpiry].(string); ok {
		if exp, err := time.Parse(time.RFC3339, v); err == nil {
			tok.Expiry = exp
		}
	}

	return tok
}

// Save merges tok into the cache file and writes it back. Fields the
// token does not carry keep their stored values, so a refresh response
// without a refresh_token does not drop the one on disk. The parent
// directory is created on first write.
func (s *Store) Save(tok *oauth2.Token) error {
	rec := s.read()

	if tok.AccessToken != "" {
		rec[fieldAccessToken] = tok.AccessToken
	}
	if tok.RefreshToken != "" {
		rec[fieldRefreshToken] = tok.RefreshToken
	}
	if tok.TokenType != "" {
		rec[fieldTokenType] = tok.TokenType
	}
	if !tok.Expiry.IsZero() {
		rec[fieldExpiry] = tok.Expiry.UTC().Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode token cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create token cache directory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	return nil
}

// read returns the cache file contents as a map. Any read or parse
// problem yields an empty map.
func (s *Store) read() map[string]interface{} {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]interface{}{}
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(data, &rec); err != nil || rec == nil {
		return map[string]interface{}{}
	}

	return rec
}
