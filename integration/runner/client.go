package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jwebster45206/pompeii/internal/handlers"
)

// CreateSession starts a new game via POST /v1/session
func CreateSession(ctx context.Context, client *http.Client, baseURL string) (*handlers.SessionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/v1/session", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session request: %w", err)
	}
	return doSessionRequest(client, req, http.StatusCreated)
}

// GetSession fetches a session via GET /v1/session/{id}
func GetSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) (*handlers.SessionResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/session/%s", baseURL, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create get request: %w", err)
	}
	return doSessionRequest(client, req, http.StatusOK)
}

// PostCommand submits one command via POST /v1/session/{id}/command
func PostCommand(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID, command, timeline string) (*handlers.SessionResponse, error) {
	reqBody, err := json.Marshal(handlers.CommandRequest{Command: command, Timeline: timeline})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/session/%s/command", baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create command request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doSessionRequest(client, req, http.StatusOK)
}

// DeleteSession removes a session via DELETE /v1/session/{id}
func DeleteSession(ctx context.Context, client *http.Client, baseURL string, id uuid.UUID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/v1/session/%s", baseURL, id), nil)
	if err != nil {
		return fmt.Errorf("failed to create delete request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send delete request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete returned %d (expected 204): %s", resp.StatusCode, string(body))
	}
	return nil
}

func doSessionRequest(client *http.Client, req *http.Request, wantStatus int) (*handlers.SessionResponse, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%s %s returned %d (expected %d): %s", req.Method, req.URL.Path, resp.StatusCode, wantStatus, string(body))
	}

	var sessionResp handlers.SessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&sessionResp); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}
	return &sessionResp, nil
}
