// Package api is the single HTTP boundary to the agent hub backend. All
// request issuing, response normalization and error-to-taxonomy mapping lives
// here so the rest of the application only sees typed results.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 15 * time.Second

// Client talks to the agent hub backend with a bearer token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout overrides the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.http.Timeout = d
	}
}

// SetToken installs the bearer token used on authenticated calls.
// An empty token clears it.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the currently installed bearer token.
func (c *Client) Token() string {
	return c.token
}

// Login exchanges credentials for a bearer token and profile. On success the
// token is installed on the client. A rejected login returns *AuthError with
// the backend's message; session state is left untouched by the caller.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &result, false)
	if err != nil {
		var se *statusError
		if errors.As(err, &se) {
			return LoginResult{}, &AuthError{Message: se.message}
		}
		return LoginResult{}, &AuthError{Message: err.Error()}
	}
	c.token = result.Token
	return result, nil
}

// IntegrationStatus queries the management tool's reachability.
func (c *Client) IntegrationStatus(ctx context.Context) (IntegrationStatus, error) {
	var status IntegrationStatus
	if err := c.do(ctx, http.MethodGet, "/api/scrum-master/jira/status", nil, &status, true); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return IntegrationStatus{}, err
		}
		return IntegrationStatus{}, &DataFetchError{Resource: "integration status", Err: err}
	}
	return status, nil
}

// Projects lists the management tool's projects. The backend has been
// observed returning a bare array, {"values": []} and {"projects": []};
// all three are normalized here so the ambiguity never leaks upward.
func (c *Client) Projects(ctx context.Context) ([]Project, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/scrum-master/jira/projects", nil, &raw, true); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil, err
		}
		return nil, &DataFetchError{Resource: "projects", Err: err}
	}

	var projects []Project
	if err := decodeList(raw, &projects, "values", "projects"); err != nil {
		return nil, &DataFetchError{Resource: "projects", Err: err}
	}
	return projects, nil
}

// boardPayload tolerates the two places the project key has been observed:
// flattened onto the board, or nested under "location".
type boardPayload struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	ProjectKey string `json:"projectKey"`
	Location   struct {
		ProjectKey string `json:"projectKey"`
	} `json:"location"`
}

// Boards lists the management tool's boards.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/api/scrum-master/jira/boards", nil, &raw, true); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil, err
		}
		return nil, &DataFetchError{Resource: "boards", Err: err}
	}

	var payloads []boardPayload
	if err := decodeList(raw, &payloads, "boards", "values"); err != nil {
		return nil, &DataFetchError{Resource: "boards", Err: err}
	}

	boards := make([]Board, 0, len(payloads))
	for _, p := range payloads {
		key := p.ProjectKey
		if key == "" {
			key = p.Location.ProjectKey
		}
		boards = append(boards, Board{ID: p.ID, Name: p.Name, Type: p.Type, ProjectKey: key})
	}
	return boards, nil
}

// GetConfig fetches the previously saved provider configuration.
// A 404 means "never configured" and is reported as (nil, nil).
func (c *Client) GetConfig(ctx context.Context) (*AgentConfig, error) {
	var cfg AgentConfig
	err := c.do(ctx, http.MethodGet, "/api/scrum-master/config", nil, &cfg, true)
	if err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return nil, err
		}
		var se *statusError
		if errors.As(err, &se) && se.code == http.StatusNotFound {
			return nil, nil
		}
		return nil, &DataFetchError{Resource: "saved configuration", Err: err}
	}
	return &cfg, nil
}

// SaveConfig persists the full provider configuration as one record.
// POST creates, PUT updates an existing record.
func (c *Client) SaveConfig(ctx context.Context, cfg AgentConfig, update bool) error {
	method := http.MethodPost
	if update {
		method = http.MethodPut
	}
	if err := c.do(ctx, method, "/api/scrum-master/config", cfg, nil, true); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return err
		}
		return &ConnectionError{Category: "management", Message: errMessage(err)}
	}
	return nil
}

// ConnectAI validates and stores AI engine credentials.
func (c *Client) ConnectAI(ctx context.Context, engine, credentials string) error {
	body := map[string]string{"aiEngine": engine, "aiCredentials": credentials}
	if err := c.do(ctx, http.MethodPost, "/api/ai-config/connect", body, nil, true); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return err
		}
		return &ConnectionError{Category: "ai", Message: errMessage(err)}
	}
	return nil
}

// SendChat issues one chat exchange. Fire-and-forget from the transcript's
// perspective: there is no retry and no cancellation of an in-flight send.
func (c *Client) SendChat(ctx context.Context, req ChatRequest) (ChatReply, error) {
	var reply ChatReply
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &reply, true); err != nil {
		if errors.Is(err, ErrSessionExpired) {
			return ChatReply{}, err
		}
		return ChatReply{}, &ChatSendError{Err: err}
	}
	return reply, nil
}

// statusError is a non-2xx response with the backend's message extracted.
// It stays internal: public methods map it into the error taxonomy.
type statusError struct {
	code    int
	message string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.code, e.message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if authed && c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode == http.StatusUnauthorized && authed {
		return fmt.Errorf("%s: %w", path, ErrSessionExpired)
	}
	if httpResp.StatusCode >= 400 {
		return &statusError{code: httpResp.StatusCode, message: parseBackendMessage(respBody)}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// parseBackendMessage pulls a human-readable message out of an error body.
// The backend alternates between {"message": ...} and {"error": ...}.
func parseBackendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "request failed"
	}
	return msg
}

// errMessage prefers the backend's message over Go error plumbing noise.
func errMessage(err error) string {
	var se *statusError
	if errors.As(err, &se) {
		return se.message
	}
	return err.Error()
}

// decodeList decodes raw as either a bare JSON array or an object wrapping
// the array under one of the given keys.
func decodeList(raw json.RawMessage, out any, keys ...string) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return fmt.Errorf("unexpected list shape: %w", err)
	}
	for _, key := range keys {
		if inner, ok := envelope[key]; ok {
			return json.Unmarshal(inner, out)
		}
	}
	return fmt.Errorf("unexpected list shape: no %s key", strings.Join(keys, "/"))
}
