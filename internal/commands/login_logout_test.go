package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/logging"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

func credentialEnv(dir string, quiet bool) *commands.Env {
	return &commands.Env{
		Config: &config.Config{Dir: dir, Quiet: quiet},
		Logger: logging.Discard(),
	}
}

func writeCredential(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// TestLoginCommand_NoOAuthClient verifies login fails without oauth_client.json
func TestLoginCommand_NoOAuthClient(t *testing.T) {
	cmd := &commands.LoginCmd{}

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), credentialEnv(t.TempDir(), false), nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if outBuf.String() != "" {
		t.Errorf("expected no stdout, got %q", outBuf.String())
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("oauth_client.json not found")) {
		t.Errorf("expected missing oauth_client.json message, got %q", errBuf.String())
	}
}

// TestLoginCommand_TokenWithoutRefresh verifies login does not trust a token
// lacking a refresh token.
func TestLoginCommand_TokenWithoutRefresh(t *testing.T) {
	cmd := &commands.LoginCmd{}
	dir := t.TempDir()
	writeCredential(t, dir, config.OAuthClientFile, testOAuthClient)
	writeCredential(t, dir, config.TokenFile, `{"access_token":"expired","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`)

	// Cancelled context keeps login from waiting for a browser callback
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(ctx, credentialEnv(dir, false), nil, &outBuf, &errBuf)

	if outBuf.String() == "already logged in\n" {
		t.Error("should not say 'already logged in' with token missing refresh_token")
	}
	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}

// TestLoginCommand_InvalidOAuthClient verifies a corrupt client file is reported.
func TestLoginCommand_InvalidOAuthClient(t *testing.T) {
	cmd := &commands.LoginCmd{}
	dir := t.TempDir()
	writeCredential(t, dir, config.OAuthClientFile, `not json`)

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), credentialEnv(dir, false), nil, &outBuf, &errBuf)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !bytes.Contains(errBuf.Bytes(), []byte("invalid oauth_client.json")) {
		t.Errorf("expected invalid client message, got %q", errBuf.String())
	}
}

// TestLogoutCommand_OnlyRemovesToken verifies logout only removes token.json
func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	cmd := &commands.LogoutCmd{}
	dir := t.TempDir()
	oauthPath := writeCredential(t, dir, config.OAuthClientFile, testOAuthClient)
	tokenPath := writeCredential(t, dir, config.TokenFile, `{"access_token":"test","refresh_token":"test"}`)

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), credentialEnv(dir, false), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if errBuf.String() != "" {
		t.Errorf("expected no stderr, got %q", errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}
	if _, err := os.Stat(tokenPath); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(oauthPath); err != nil {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

// TestLogoutCommand_NotLoggedIn verifies logout handles not being logged in
func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		name    string
		quiet   bool
		wantOut string
	}{
		{name: "normal", quiet: false, wantOut: "not logged in\n"},
		{name: "quiet", quiet: true, wantOut: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &commands.LogoutCmd{}

			var outBuf, errBuf bytes.Buffer
			code := cmd.Run(context.Background(), credentialEnv(t.TempDir(), tt.quiet), nil, &outBuf, &errBuf)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if errBuf.String() != "" {
				t.Errorf("expected no stderr, got %q", errBuf.String())
			}
			if outBuf.String() != tt.wantOut {
				t.Errorf("expected %q, got %q", tt.wantOut, outBuf.String())
			}
		})
	}
}
