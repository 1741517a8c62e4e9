package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/log"
)

func TestMain(m *testing.M) {
	log.Initialize(false)
	defer log.Close()
	m.Run()
}

// newHub spins up a fake backend covering the config, AI connect and list
// endpoints. It records the methods seen on the config endpoint.
func newHub(t *testing.T) (*api.Client, *hubState) {
	t.Helper()
	state := &hubState{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/scrum-master/config":
			state.configMethods = append(state.configMethods, r.Method)
			var cfg api.AgentConfig
			require.NoError(t, json.NewDecoder(r.Body).Decode(&cfg))
			state.lastConfig = cfg
			if cfg.ManagementTool != "" && cfg.ManagementTool != "Jira" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"message": "Only Jira is supported at the moment"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"message": "saved"})
		case "/api/ai-config/connect":
			state.aiConnects++
			json.NewEncoder(w).Encode(map[string]string{"message": "connected"})
		case "/api/scrum-master/jira/projects":
			json.NewEncoder(w).Encode([]api.Project{projAlpha, projBeta})
		case "/api/scrum-master/jira/boards":
			json.NewEncoder(w).Encode([]api.Board{boardAlpha, boardBeta})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL)
	client.SetToken("tok-test")
	return client, state
}

type hubState struct {
	configMethods []string
	lastConfig    api.AgentConfig
	aiConnects    int
}

func jiraCreds() Credentials {
	return Credentials{Email: "pm@corp.io", Token: "atl-token", Domain: "corp.atlassian.net"}
}

func TestConnectRejectsEmptyCredentialsLocally(t *testing.T) {
	client, state := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(Management, "Jira")

	err := cfg.Connect(context.Background(), Management)
	require.ErrorIs(t, err, ErrEmptyCredentials)

	// No request reached the backend.
	assert.Empty(t, state.configMethods)
	assert.False(t, cfg.Connection(Management).Connected)
}

func TestConnectManagementRequiresFullTriple(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(Management, "Jira")
	cfg.SetCredentials(Management, Credentials{Email: "pm@corp.io", Token: "atl-token"})

	err := cfg.Connect(context.Background(), Management)
	assert.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestConnectManagementFetchesLists(t *testing.T) {
	client, state := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(Management, "Jira")
	cfg.SetCredentials(Management, jiraCreds())

	require.NoError(t, cfg.Connect(context.Background(), Management))

	assert.True(t, cfg.Connection(Management).Connected)
	assert.Equal(t, []string{http.MethodPost}, state.configMethods)
	assert.Len(t, cfg.Projects(), 2)
	assert.Len(t, cfg.Boards(""), 2)
	assert.Len(t, cfg.Boards("ALPHA"), 1)
}

func TestConnectManagementRejectedByBackend(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(Management, "Trello")
	cfg.SetCredentials(Management, jiraCreds())

	err := cfg.Connect(context.Background(), Management)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only Jira is supported")
	assert.False(t, cfg.Connection(Management).Connected)
	assert.Empty(t, cfg.Projects())
}

func TestConnectAI(t *testing.T) {
	client, state := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(AI, "ChatGPT")
	cfg.SetCredentials(AI, Credentials{Secret: "sk-abc"})

	require.NoError(t, cfg.Connect(context.Background(), AI))

	assert.True(t, cfg.Connection(AI).Connected)
	assert.Equal(t, 1, state.aiConnects)
}

func TestConnectOptionalCategoriesAreLocal(t *testing.T) {
	client, state := newHub(t)
	cfg := New(client)

	cfg.SelectProvider(Communication, "Slack")
	cfg.SetCredentials(Communication, Credentials{Secret: "xoxb-1"})
	require.NoError(t, cfg.Connect(context.Background(), Communication))

	cfg.SelectProvider(Email, "Gmail")
	cfg.SetCredentials(Email, Credentials{Secret: "app-pass"})
	require.NoError(t, cfg.Connect(context.Background(), Email))

	assert.True(t, cfg.Connection(Communication).Connected)
	assert.True(t, cfg.Connection(Email).Connected)
	assert.Empty(t, state.configMethods, "optional categories do not round-trip on connect")
	assert.Equal(t, 0, state.aiConnects)
}

func TestSelectProviderResetsConnection(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(AI, "ChatGPT")
	cfg.SetCredentials(AI, Credentials{Secret: "sk-abc"})
	require.NoError(t, cfg.Connect(context.Background(), AI))

	cfg.SelectProvider(AI, "Gemini")

	conn := cfg.Connection(AI)
	assert.Equal(t, "Gemini", conn.SelectedProvider)
	assert.False(t, conn.Connected, "switching providers drops the connection")
	assert.Empty(t, conn.Credentials.Secret)
}

func TestSelectSameProviderDeselects(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(Communication, "Slack")

	cfg.SelectProvider(Communication, "Slack")

	assert.Empty(t, cfg.Connection(Communication).SelectedProvider)
}

func TestManagementSwitchDiscardsListsAndSelection(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(Management, "Jira")
	cfg.SetCredentials(Management, jiraCreds())
	require.NoError(t, cfg.Connect(context.Background(), Management))

	cfg.Selection().SelectProject(projAlpha)
	require.NoError(t, cfg.Selection().SelectBoard(boardAlpha))

	cfg.SelectProvider(Management, "Azure")

	assert.Empty(t, cfg.Projects())
	assert.Empty(t, cfg.Boards(""))
	_, ok := cfg.Selection().Project()
	assert.False(t, ok, "project selection belongs to the previous provider")
}

func TestEditDropsConnectionAndCredentials(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)
	cfg.SelectProvider(AI, "ChatGPT")
	cfg.SetCredentials(AI, Credentials{Secret: "sk-abc"})
	require.NoError(t, cfg.Connect(context.Background(), AI))

	cfg.Edit(AI)

	conn := cfg.Connection(AI)
	assert.Equal(t, "ChatGPT", conn.SelectedProvider, "editing keeps the provider")
	assert.False(t, conn.Connected)
	assert.Empty(t, conn.Credentials.Secret)
}

func TestIsReadyToSaveMatrix(t *testing.T) {
	// Readiness depends only on the two mandatory categories; optional ones
	// never block.
	cases := []struct {
		name          string
		mgmt, ai      bool
		comm, email   bool
		ready         bool
	}{
		{"nothing connected", false, false, false, false, false},
		{"management only", true, false, false, false, false},
		{"ai only", false, true, false, false, false},
		{"both mandatory", true, true, false, false, true},
		{"mandatory plus comm", true, true, true, false, true},
		{"mandatory plus email", true, true, false, true, true},
		{"everything", true, true, true, true, true},
		{"optional only", false, false, true, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newHub(t)
			cfg := New(client)
			connect := func(c Category, provider string, creds Credentials) {
				cfg.SelectProvider(c, provider)
				cfg.SetCredentials(c, creds)
				require.NoError(t, cfg.Connect(context.Background(), c))
			}
			if tc.mgmt {
				connect(Management, "Jira", jiraCreds())
			}
			if tc.ai {
				connect(AI, "ChatGPT", Credentials{Secret: "sk-abc"})
			}
			if tc.comm {
				connect(Communication, "Slack", Credentials{Secret: "xoxb-1"})
			}
			if tc.email {
				connect(Email, "Gmail", Credentials{Secret: "app-pass"})
			}
			assert.Equal(t, tc.ready, cfg.IsReadyToSave())
		})
	}
}

func TestSaveRequiresReadiness(t *testing.T) {
	client, state := newHub(t)
	cfg := New(client)

	err := cfg.Save(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, state.configMethods)
}

func TestSavePersistsFullRecord(t *testing.T) {
	client, state := newHub(t)
	cfg := New(client)

	cfg.SelectProvider(Management, "Jira")
	cfg.SetCredentials(Management, jiraCreds())
	require.NoError(t, cfg.Connect(context.Background(), Management))

	cfg.SelectProvider(AI, "Gemini")
	cfg.SetCredentials(AI, Credentials{Secret: "gm-key"})
	require.NoError(t, cfg.Connect(context.Background(), AI))

	cfg.SelectProvider(Communication, "Teams")
	cfg.SetCredentials(Communication, Credentials{Secret: "webhook"})
	require.NoError(t, cfg.Connect(context.Background(), Communication))

	cfg.Selection().SelectProject(projAlpha)
	require.NoError(t, cfg.Selection().SelectBoard(boardAlpha))

	require.NoError(t, cfg.Save(context.Background()))

	// The management connect created the record, so Save updates it.
	require.Equal(t, []string{http.MethodPost, http.MethodPut}, state.configMethods)

	saved := state.lastConfig
	assert.Equal(t, "Jira", saved.ManagementTool)
	assert.Equal(t, "pm@corp.io", saved.ManagementEmail)
	assert.Equal(t, "corp.atlassian.net", saved.ManagementDomain)
	assert.Equal(t, "Teams", saved.CommunicationTool)
	assert.Equal(t, "Gemini", saved.AIEngine)
	assert.Equal(t, "ALPHA", saved.SelectedProject)
	assert.Equal(t, "7", saved.SelectedBoard)
	assert.Empty(t, saved.EmailTool)
}

func TestLoadSavedRehydrates(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)

	cfg.LoadSaved(&api.AgentConfig{
		ManagementTool:        "Jira",
		ManagementEmail:       "pm@corp.io",
		ManagementCredentials: "atl-token",
		ManagementDomain:      "corp.atlassian.net",
		AIEngine:              "DeepSeek",
		AICredentials:         "ds-key",
		EmailTool:             "Office365",
	})

	assert.True(t, cfg.Connection(Management).Connected)
	assert.True(t, cfg.Connection(AI).Connected)
	assert.True(t, cfg.IsReadyToSave())
	// Email came back without credentials, so it stays disconnected.
	email := cfg.Connection(Email)
	assert.Equal(t, "Office365", email.SelectedProvider)
	assert.False(t, email.Connected)
}

func TestLoadSavedNilIsNoop(t *testing.T) {
	client, _ := newHub(t)
	cfg := New(client)

	cfg.LoadSaved(nil)

	assert.False(t, cfg.IsReadyToSave())
	assert.Empty(t, cfg.Connection(Management).SelectedProvider)
}
