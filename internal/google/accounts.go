package google

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/polaralias/google-workspace-mcp/internal/logging"
)

// accountNamePattern restricts account names to path-safe identifiers.
var accountNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateAccountName ensures the account name is safe to embed in a
// token file name.
func validateAccountName(account string) error {
	if account == "" {
		return fmt.Errorf("account name must not be empty")
	}
	if !accountNamePattern.MatchString(account) {
		return fmt.Errorf("invalid account name %q: only letters, digits, hyphens and underscores are allowed", account)
	}
	return nil
}

// getTokenFilePath returns the token file path for the given account,
// e.g. <cache>/workspace-mcp/google-work.token.
func getTokenFilePath(account string) string {
	return filepath.Join(userCacheDir(), cacheDirName, fmt.Sprintf("google-%s.token", account))
}

// HasTokenForAccount checks if a token file exists for the specified
// account
func HasTokenForAccount(account string) bool {
	if err := validateAccountName(account); err != nil {
		return false
	}
	_, err := os.ReadFile(getTokenFilePath(account))
	return err == nil
}

// GetAuthURLForAccount returns the OAuth URL for user authorization of a
// specific account. The account name is carried in the state parameter
// for bookkeeping only; tokens are stored under the name passed to
// SaveTokenForAccount.
func GetAuthURLForAccount(account string) string {
	conf := getOAuthConfig()
	return conf.AuthCodeURL("account:" + account)
}

// SaveTokenForAccount exchanges an authorization code for tokens and
// saves them for the specified account
func SaveTokenForAccount(ctx context.Context, account, authCode string) error {
	if err := validateAccountName(account); err != nil {
		return err
	}

	conf := getOAuthConfig()
	t, err := conf.Exchange(ctx, authCode)
	if err != nil {
		return fmt.Errorf("failed to exchange auth code: %w", err)
	}

	tokenFile := getTokenFilePath(account)
	if err := os.MkdirAll(filepath.Dir(tokenFile), 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tokenData := t.AccessToken + " " + t.RefreshToken
	if err := os.WriteFile(tokenFile, []byte(tokenData), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	slog.Info("saved OAuth token", logging.Account(account))
	return nil
}

// GetTokenSourceForAccount returns an OAuth2 token source for the
// specified account's stored token
func GetTokenSourceForAccount(ctx context.Context, account string) (oauth2.TokenSource, error) {
	if err := validateAccountName(account); err != nil {
		return nil, err
	}

	conf := getOAuthConfig()

	slurp, err := os.ReadFile(getTokenFilePath(account))
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s", account)
	}

	f := strings.Fields(strings.TrimSpace(string(slurp)))
	if len(f) != 2 {
		return nil, fmt.Errorf("invalid token format for account %s", account)
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{
		AccessToken:  f[0],
		TokenType:    "Bearer",
		RefreshToken: f[1],
		Expiry:       time.Unix(1, 0),
	})

	// Validate the token
	if _, err := ts.Token(); err != nil {
		slog.Debug("cached token invalid", logging.Account(account), logging.Err(err))
		return nil, fmt.Errorf("cached token is invalid for account %s: %w", account, err)
	}

	return ts, nil
}

// ListAccounts returns the names of accounts that have a stored token,
// sorted alphabetically.
func ListAccounts() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(userCacheDir(), cacheDirName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token cache directory: %w", err)
	}

	var accounts []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "google-") || !strings.HasSuffix(name, ".token") {
			continue
		}
		accounts = append(accounts, strings.TrimSuffix(strings.TrimPrefix(name, "google-"), ".token"))
	}
	sort.Strings(accounts)
	return accounts, nil
}

// MigrateDefaultToken moves a pre-account-support token file
// (google.token) to the default account's file name. It is idempotent
// and a no-op when there is nothing to migrate.
func MigrateDefaultToken() error {
	cacheDir := filepath.Join(userCacheDir(), cacheDirName)
	oldTokenFile := filepath.Join(cacheDir, "google.token")
	newTokenFile := filepath.Join(cacheDir, "google-default.token")

	data, err := os.ReadFile(oldTokenFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read legacy token file: %w", err)
	}

	// Never clobber an existing default token.
	if _, err := os.Stat(newTokenFile); err == nil {
		if err := os.Remove(oldTokenFile); err != nil {
			return fmt.Errorf("failed to remove legacy token file: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(newTokenFile, data, 0600); err != nil {
		return fmt.Errorf("failed to write migrated token file: %w", err)
	}
	if err := os.Remove(oldTokenFile); err != nil {
		return fmt.Errorf("failed to remove legacy token file: %w", err)
	}

	slog.Info("migrated legacy token file to default account")
	return nil
}
