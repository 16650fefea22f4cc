// Package session owns the client-local session token: persistence,
// creation, and validation against the server. The token file is read and
// written only here.
package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/riyaz/simpleshare-go/notify"
	"github.com/riyaz/simpleshare-go/tool"
	"github.com/riyaz/simpleshare-go/types"
)

// TokenFileName is the session token file under the state directory.
const TokenFileName = "session.token"

// Store keeps at most one session token at a time. An absent token file
// means the client is unauthenticated.
type Store struct {
	client   *http.Client
	server   string
	path     string
	notifier *notify.Center
}

func NewStore(server, stateDir string, notifier *notify.Center) *Store {
	return &Store{
		client:   tool.GetHttpClient(),
		server:   server,
		path:     filepath.Join(stateDir, TokenFileName),
		notifier: notifier,
	}
}

// Token returns the persisted session token, if any.
func (s *Store) Token() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *Store) saveToken(token string) error {
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Discard removes the persisted token so the next CheckSession re-creates
// the session.
func (s *Store) Discard() {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		tool.DefaultLogger.Warnf("Failed to remove session token: %v", err)
	}
}

// CheckSession fetches the server session policy and, when sessions are
// enabled, validates the persisted token or creates a fresh session. A
// server that cannot be reached for the policy fetch is treated as having
// sessions disabled.
func (s *Store) CheckSession(ctx context.Context) error {
	cfg, err := s.fetchServerConfig(ctx)
	if err != nil {
		tool.DefaultLogger.Warnf("Could not fetch server config, treating sessions as disabled: %v", err)
		return nil
	}
	if !cfg.SessionEnabled {
		return nil
	}

	if token, ok := s.Token(); ok {
		valid, err := s.Validate(ctx, token)
		if err != nil {
			s.notifier.Notify(types.NotifyError, "Could not confirm session")
			return err
		}
		if valid {
			return nil
		}
		// Server explicitly rejected the token.
		s.Discard()
	}

	return s.Create(ctx)
}

// Create requests a new or resumed session and persists the returned token.
func (s *Store) Create(ctx context.Context) error {
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodPost, tool.BuildSessionCreateURL(s.server), nil))
	if err != nil {
		return fmt.Errorf("failed to create session request: %v", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		s.notifier.Notify(types.NotifyError, "Session creation failed")
		return fmt.Errorf("failed to send session create request: %v", err)
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.notifier.Notify(types.NotifyError, "Session creation failed")
		return fmt.Errorf("failed to read session create response: %v", err)
	}

	var result types.SessionCreateResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		s.notifier.Notify(types.NotifyError, "Session creation failed")
		return fmt.Errorf("failed to parse session create response: %v", err)
	}
	if !result.Success {
		detail := result.Error
		if detail == "" {
			detail = "Failed to create session"
		}
		s.notifier.Notify(types.NotifyError, detail)
		return fmt.Errorf("session create rejected: %s", detail)
	}

	if err := s.saveToken(result.Token); err != nil {
		return fmt.Errorf("failed to persist session token: %v", err)
	}

	if result.IsNew {
		s.notifier.Notify(types.NotifySuccess, "New session created successfully!")
	} else {
		s.notifier.Notify(types.NotifyInfo, "Connected to existing session!")
	}
	return nil
}

// Validate asks the server whether token is still good. The returned error
// means "could not confirm", not invalidity; explicit invalidity comes back
// as (false, nil).
func (s *Store) Validate(ctx context.Context, token string) (bool, error) {
	payload, err := sonic.Marshal(types.SessionValidateRequest{Token: token})
	if err != nil {
		return false, fmt.Errorf("failed to marshal validate request: %v", err)
	}
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodPost, tool.BuildSessionValidateURL(s.server), bytes.NewReader(payload)))
	if err != nil {
		return false, fmt.Errorf("failed to create validate request: %v", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to send validate request: %v", err)
	}
	defer closeBody(resp)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read validate response: %v", err)
	}
	var result types.SessionValidateResponse
	if err := sonic.Unmarshal(body, &result); err != nil {
		return false, fmt.Errorf("failed to parse validate response: %v", err)
	}
	return result.Success && result.Valid, nil
}

func (s *Store) fetchServerConfig(ctx context.Context) (*types.ServerConfig, error) {
	req, err := tool.NewHTTPReqWithApplication(
		http.NewRequestWithContext(ctx, http.MethodGet, tool.BuildConfigURL(s.server), nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create config request: %v", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send config request: %v", err)
	}
	defer closeBody(resp)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("config request failed: %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read config response: %v", err)
	}
	var cfg types.ServerConfig
	if err := sonic.Unmarshal(body, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config response: %v", err)
	}
	return &cfg, nil
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
	}
}
