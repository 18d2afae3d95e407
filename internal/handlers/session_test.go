package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/pompeii/internal/storage"
	"github.com/jwebster45206/pompeii/pkg/world"
)

func newTestSessionHandler(t *testing.T) (*SessionHandler, *storage.MockStorage) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Reduce noise in tests
	}))
	mockStorage := storage.NewMockStorage()
	return NewSessionHandler(logger, mockStorage), mockStorage
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, h http.Handler) SessionResponse {
	t.Helper()
	rr := doRequest(t, h, http.MethodPost, "/v1/session", "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func sendCommand(t *testing.T, h http.Handler, id uuid.UUID, command, timeline string) SessionResponse {
	t.Helper()
	body, err := json.Marshal(CommandRequest{Command: command, Timeline: timeline})
	require.NoError(t, err)

	rr := doRequest(t, h, http.MethodPost, "/v1/session/"+id.String()+"/command", string(body))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestSessionHandler_Create(t *testing.T) {
	handler, mockStorage := newTestSessionHandler(t)

	rr := doRequest(t, handler, http.MethodPost, "/v1/session", "")
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, world.EntryLocation, resp.State.CurrentLocation)
	assert.NotEmpty(t, resp.State.PresentConsole)
	assert.Empty(t, resp.State.PastConsole)
	assert.Empty(t, resp.Output)
	assert.Equal(t, 1, mockStorage.Len())
}

func TestSessionHandler_Read(t *testing.T) {
	handler, _ := newTestSessionHandler(t)
	created := createSession(t, handler)

	rr := doRequest(t, handler, http.MethodGet, "/v1/session/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, created.State.PresentConsole, resp.State.PresentConsole)
}

func TestSessionHandler_Command(t *testing.T) {
	handler, _ := newTestSessionHandler(t)
	created := createSession(t, handler)

	resp := sendCommand(t, handler, created.ID, "take vase", "present")
	assert.Equal(t, []world.ItemID{world.AncientVase}, resp.State.Inventory)
	require.NotEmpty(t, resp.Output)
	assert.Equal(t, "> take vase", resp.Output[0])
	assert.Equal(t, resp.Output, resp.State.PresentConsole[len(created.State.PresentConsole):])

	resp = sendCommand(t, handler, created.ID, "open vase", "")
	assert.True(t, resp.State.TimePortalActive)
	assert.True(t, resp.State.HasDiscoveredAncientConsole)
	assert.NotEmpty(t, resp.State.PastConsole)

	resp = sendCommand(t, handler, created.ID, "inventory", "PAST")
	assert.Equal(t, "> inventory", resp.Output[0])
	assert.Contains(t, resp.Output, "Marcus is carrying: Ancient Vase")
	assert.Equal(t, resp.Output, resp.State.PastConsole[len(resp.State.PastConsole)-len(resp.Output):])

	// The session is stored, not just returned.
	rr := doRequest(t, handler, http.MethodGet, "/v1/session/"+created.ID.String(), "")
	var stored SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&stored))
	assert.Equal(t, resp.State.PastConsole, stored.State.PastConsole)
}

func TestSessionHandler_CommandErrors(t *testing.T) {
	handler, _ := newTestSessionHandler(t)
	created := createSession(t, handler)
	commandPath := "/v1/session/" + created.ID.String() + "/command"

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{"invalid JSON", http.MethodPost, commandPath, `{invalid json}`, http.StatusBadRequest},
		{"unknown timeline", http.MethodPost, commandPath, `{"command":"look","timeline":"future"}`, http.StatusBadRequest},
		{"unknown session", http.MethodPost, "/v1/session/" + uuid.New().String() + "/command", `{"command":"look"}`, http.StatusNotFound},
		{"malformed id", http.MethodPost, "/v1/session/not-a-uuid/command", `{"command":"look"}`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, commandPath, "", http.StatusMethodNotAllowed},
		{"unknown sub-resource", http.MethodPost, "/v1/session/" + created.ID.String() + "/undo", `{}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, handler, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSessionHandler_ReadErrors(t *testing.T) {
	handler, _ := newTestSessionHandler(t)

	rr := doRequest(t, handler, http.MethodGet, "/v1/session/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, handler, http.MethodGet, "/v1/session/nope", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doRequest(t, handler, http.MethodGet, "/v1/session", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = doRequest(t, handler, http.MethodPatch, "/v1/session/"+uuid.New().String(), "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestSessionHandler_Delete(t *testing.T) {
	handler, mockStorage := newTestSessionHandler(t)
	created := createSession(t, handler)

	rr := doRequest(t, handler, http.MethodDelete, "/v1/session/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, 0, mockStorage.Len())

	rr = doRequest(t, handler, http.MethodGet, "/v1/session/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// failingStorage returns errors from every session operation.
type failingStorage struct {
	*storage.MockStorage
}

var errStorageDown = errors.New("storage down")

func (failingStorage) SaveSession(context.Context, *storage.Session) error {
	return errStorageDown
}

func (failingStorage) LoadSession(context.Context, uuid.UUID) (*storage.Session, error) {
	return nil, errStorageDown
}

func (failingStorage) UpdateSession(context.Context, uuid.UUID, storage.UpdateFunc) (*storage.Session, error) {
	return nil, errStorageDown
}

func (failingStorage) DeleteSession(context.Context, uuid.UUID) error {
	return errStorageDown
}

func TestSessionHandler_StorageFailures(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	handler := NewSessionHandler(logger, failingStorage{storage.NewMockStorage()})
	id := uuid.New().String()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"create", http.MethodPost, "/v1/session", ""},
		{"read", http.MethodGet, "/v1/session/" + id, ""},
		{"command", http.MethodPost, "/v1/session/" + id + "/command", `{"command":"look"}`},
		{"delete", http.MethodDelete, "/v1/session/" + id, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, handler, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rr.Code)
		})
	}
}
