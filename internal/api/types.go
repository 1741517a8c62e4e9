package api

// User is the authenticated profile returned alongside a bearer token.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResult is the successful response of Login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// IntegrationStatus is the management tool's reachability snapshot.
type IntegrationStatus struct {
	IsOnline bool   `json:"is_online"`
	Message  string `json:"message"`
}

// Project is one project reported by the management tool.
type Project struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Board is one board reported by the management tool. A board belongs to
// exactly one project, identified by ProjectKey.
type Board struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	ProjectKey string `json:"projectKey"`
}

// AgentConfig is the full provider configuration persisted as one record.
// Field names follow the backend's contract.
type AgentConfig struct {
	ManagementTool           string `json:"managementTool"`
	ManagementEmail          string `json:"managementEmail,omitempty"`
	ManagementDomain         string `json:"managementDomain,omitempty"`
	ManagementCredentials    string `json:"managementCredentials,omitempty"`
	CommunicationTool        string `json:"communicationTool,omitempty"`
	CommunicationCredentials string `json:"communicationCredentials,omitempty"`
	EmailTool                string `json:"emailTool,omitempty"`
	EmailCredentials         string `json:"emailCredentials,omitempty"`
	AIEngine                 string `json:"aiEngine"`
	AICredentials            string `json:"aiCredentials,omitempty"`
	SelectedProject          string `json:"selectedProject,omitempty"`
	SelectedBoard            string `json:"selectedBoard,omitempty"`
}

// ChatRequest carries one user message plus the context the backend needs to
// route it: the project key, board id and the AI engine id (lowercase).
type ChatRequest struct {
	UserMessage string `json:"userMessage"`
	ProjectKey  string `json:"projectKey"`
	BoardID     int    `json:"boardId"`
	AIEngine    string `json:"aiEngine"`
}

// ReplyMetadata is the structured part of an agent reply, passed through
// verbatim for rendering. All fields are optional.
type ReplyMetadata struct {
	HasChart  bool       `json:"hasChart,omitempty"`
	IssueCard *IssueCard `json:"issueCard,omitempty"`
}

// IssueCard is an inline issue summary attached to an agent reply.
type IssueCard struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// ChatReply is the backend's answer to one chat request.
type ChatReply struct {
	Response string         `json:"response"`
	Metadata *ReplyMetadata `json:"metadata,omitempty"`
}
