package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/pompeii/internal/handlers"
	"github.com/jwebster45206/pompeii/pkg/state"
	"github.com/jwebster45206/pompeii/pkg/world"
)

// Backend runs the game for the console: either in-process or through the
// session API.
type Backend interface {
	Start(ctx context.Context) (state.SessionState, error)
	Submit(ctx context.Context, input string, tl world.Timeline) (state.SessionState, error)
}

// localBackend owns the session state and applies commands directly.
type localBackend struct {
	state  state.SessionState
	logger *slog.Logger
}

func newLocalBackend(logger *slog.Logger) *localBackend {
	return &localBackend{logger: logger}
}

func (b *localBackend) Start(ctx context.Context) (state.SessionState, error) {
	b.state = state.InitialState()
	b.logger.Info("Local session started")
	return b.state, nil
}

func (b *localBackend) Submit(ctx context.Context, input string, tl world.Timeline) (state.SessionState, error) {
	b.state = state.Submit(b.state, input, tl)
	b.logger.Debug("Command applied", "timeline", tl, "command", input, "location", b.state.CurrentLocation)
	return b.state, nil
}

// apiBackend plays a session hosted by the API server.
type apiBackend struct {
	client  *http.Client
	baseURL string
	logger  *slog.Logger
	id      uuid.UUID
}

func newAPIBackend(client *http.Client, baseURL string, logger *slog.Logger) *apiBackend {
	return &apiBackend{client: client, baseURL: baseURL, logger: logger}
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func (b *apiBackend) Start(ctx context.Context) (state.SessionState, error) {
	resp, err := b.do(ctx, http.MethodPost, b.baseURL+"/v1/session", nil, http.StatusCreated)
	if err != nil {
		return state.SessionState{}, fmt.Errorf("failed to create session: %w", err)
	}
	b.id = resp.ID
	b.logger.Info("Remote session started", "session_id", b.id)
	return resp.State, nil
}

func (b *apiBackend) Submit(ctx context.Context, input string, tl world.Timeline) (state.SessionState, error) {
	if b.id == uuid.Nil {
		return state.SessionState{}, errors.New("no session started")
	}
	body := handlers.CommandRequest{Command: input, Timeline: string(tl)}
	url := fmt.Sprintf("%s/v1/session/%s/command", b.baseURL, b.id)
	resp, err := b.do(ctx, http.MethodPost, url, body, http.StatusOK)
	if err != nil {
		return state.SessionState{}, fmt.Errorf("command failed: %w", err)
	}
	return resp.State, nil
}

func (b *apiBackend) do(ctx context.Context, method, url string, payload any, wantStatus int) (*handlers.SessionResponse, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != wantStatus {
		var errorResp handlers.ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error == "" {
			return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
		}
		return nil, errors.New(errorResp.Error)
	}

	var sessionResp handlers.SessionResponse
	if err := json.Unmarshal(body, &sessionResp); err != nil {
		return nil, fmt.Errorf("failed to parse session response: %w", err)
	}
	return &sessionResp, nil
}
