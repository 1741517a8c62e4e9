package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test@example.com", body["email"])
		assert.Equal(t, "test123", body["password"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "jwt-token",
			"user":  map[string]string{"email": "test@example.com", "name": "Test User", "role": "user"},
		})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	result, err := c.Login(context.Background(), "test@example.com", "test123")
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", result.Token)
	assert.Equal(t, "test@example.com", result.User.Email)
	assert.Equal(t, "jwt-token", c.Token())
}

func TestLogin_RejectedIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid email or password"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.c", "wrong")

	var authErr *api.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid email or password", authErr.Message)
	// A rejected login must never look like an expired session.
	assert.False(t, errors.Is(err, api.ErrSessionExpired))
	assert.Empty(t, c.Token())
}

func TestAuthenticatedCall_SendsBearer(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"is_online": true, "message": "Connected to Jira"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("my-secret-token")
	status, err := c.IntegrationStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer my-secret-token", gotAuth)
	assert.True(t, status.IsOnline)
	assert.Equal(t, "Connected to Jira", status.Message)
}

func TestUnauthorized_IsSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid token"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("expired")

	_, err := c.IntegrationStatus(context.Background())
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	_, err = c.Projects(context.Background())
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	_, err = c.SendChat(context.Background(), api.ChatRequest{UserMessage: "hi"})
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	err = c.SaveConfig(context.Background(), api.AgentConfig{}, false)
	assert.ErrorIs(t, err, api.ErrSessionExpired)
}

func TestProjects_NormalizesShapes(t *testing.T) {
	shapes := map[string]string{
		"bare array":       `[{"id":"1","key":"ALPHA","name":"Project Alpha"}]`,
		"values envelope":  `{"values":[{"id":"1","key":"ALPHA","name":"Project Alpha"}]}`,
		"projects wrapper": `{"projects":[{"id":"1","key":"ALPHA","name":"Project Alpha"}]}`,
	}

	for name, payload := range shapes {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(payload))
			}))
			defer srv.Close()

			c := api.NewClient(srv.URL)
			c.SetToken("tok")
			projects, err := c.Projects(context.Background())
			require.NoError(t, err)
			require.Len(t, projects, 1)
			assert.Equal(t, "ALPHA", projects[0].Key)
			assert.Equal(t, "Project Alpha", projects[0].Name)
		})
	}
}

func TestBoards_ProjectKeyFromLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"boards":[
			{"id":1,"name":"Sprint Board 1","type":"scrum","location":{"projectKey":"ALPHA"}},
			{"id":2,"name":"Kanban Board","type":"kanban","projectKey":"BETA"}
		]}`))
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	boards, err := c.Boards(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)
	assert.Equal(t, "ALPHA", boards[0].ProjectKey)
	assert.Equal(t, "BETA", boards[1].ProjectKey)
}

func TestGetConfig_NotFoundMeansUnconfigured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "Configuration not found"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	cfg, err := c.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestSaveConfig_UpdateUsesPut(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewEncoder(w).Encode(map[string]string{"message": "Configuration updated successfully"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	require.NoError(t, c.SaveConfig(context.Background(), api.AgentConfig{ManagementTool: "Jira"}, true))
	assert.Equal(t, "PUT", gotMethod)
}

func TestSaveConfig_BackendRejectionIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error":   "Invalid management tool",
			"message": "Only Jira is supported at the moment",
		})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	err := c.SaveConfig(context.Background(), api.AgentConfig{ManagementTool: "Trello"}, false)

	var connErr *api.ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, "management", connErr.Category)
	assert.Contains(t, connErr.Message, "Only Jira is supported")
}

func TestSendChat_ReturnsReplyWithMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req api.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Sprint Status", req.UserMessage)
		assert.Equal(t, "ALPHA", req.ProjectKey)
		assert.Equal(t, 1, req.BoardID)
		assert.Equal(t, "chatgpt", req.AIEngine)

		json.NewEncoder(w).Encode(map[string]any{
			"response": "Here is the current sprint status.",
			"metadata": map[string]any{
				"hasChart":  true,
				"issueCard": map[string]string{"key": "PROJ-123", "summary": "Implement user authentication", "status": "In Progress"},
			},
		})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	reply, err := c.SendChat(context.Background(), api.ChatRequest{
		UserMessage: "Sprint Status", ProjectKey: "ALPHA", BoardID: 1, AIEngine: "chatgpt",
	})
	require.NoError(t, err)
	assert.Equal(t, "Here is the current sprint status.", reply.Response)
	require.NotNil(t, reply.Metadata)
	assert.True(t, reply.Metadata.HasChart)
	require.NotNil(t, reply.Metadata.IssueCard)
	assert.Equal(t, "PROJ-123", reply.Metadata.IssueCard.Key)
}

func TestSendChat_FailureIsChatSendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Error getting AI response"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	_, err := c.SendChat(context.Background(), api.ChatRequest{UserMessage: "hello"})

	var sendErr *api.ChatSendError
	assert.ErrorAs(t, err, &sendErr)
}

func TestDataFetch_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // connection refused from here on

	c := api.NewClient(srv.URL)
	c.SetToken("tok")
	_, err := c.Projects(context.Background())

	var fetchErr *api.DataFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "projects", fetchErr.Resource)
}
