package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/workspacekit/workspace-mcp/internal/googleauth"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Workspace APIs",
		Long: `Run the one-time OAuth authorization flow.

Prints the Google authorization URL, waits for the authorization code on
stdin, exchanges it for tokens, and persists them to the token cache.
The server refreshes the token automatically afterwards.

Requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuth(os.Stdin)
		},
	}

	cmd.AddCommand(newAuthStatusCmd())

	return cmd
}

func runAuth(in *os.File) error {
	cfg, err := googleauth.ConfigFromEnv()
	if err != nil {
		return err
	}

	ctx := context.Background()
	authenticator := googleauth.NewAuthenticator(ctx, cfg)

	fmt.Println("Visit this URL in your browser to authorize access:")
	fmt.Println()
	fmt.Printf("  %s\n", authenticator.AuthCodeURL())
	fmt.Println()
	fmt.Print("Enter the authorization code: ")

	code, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && code == "" {
		return fmt.Errorf("failed to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("no authorization code provided")
	}

	if err := authenticator.Exchange(ctx, code); err != nil {
		return err
	}

	fmt.Printf("Authorization successful. Token saved to %s\n", cfg.TokenPath)
	return nil
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the state of the cached credentials",
		Long: `Show the token cache location and the state of the cached credentials
without making any network calls.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuthStatus(cmd)
		},
	}
}

func runAuthStatus(cmd *cobra.Command) error {
	// Status only inspects the cache file, so the client credentials are
	// not required here.
	path := os.Getenv(googleauth.EnvTokenPath)
	if path == "" {
		path = googleauth.DefaultTokenPath()
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Token cache: %s\n", path)

	tok := googleauth.NewStore(path).Load()
	if tok == nil {
		fmt.Fprintln(out, "Credentials: none (run \"workspace-mcp auth\" to authorize)")
		return nil
	}

	fmt.Fprintln(out, "Credentials: cached")
	if tok.RefreshToken != "" {
		fmt.Fprintln(out, "Refresh token: present")
	} else {
		fmt.Fprintln(out, "Refresh token: missing (re-authorization needed when the access token expires)")
	}

	expiry := tok.Expiry.Format(time.RFC3339)
	if time.Now().After(tok.Expiry) {
		fmt.Fprintf(out, "Access token: expired %s (refreshed on next use)\n", expiry)
	} else {
		fmt.Fprintf(out, "Access token: valid until %s\n", expiry)
	}

	return nil
}
