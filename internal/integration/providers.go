// Package integration drives the provider connection workflow: four
// categories, each holding at most one selected provider, with independent
// connect/disconnect sub-state. Management and AI are mandatory before the
// workspace counts as configured; communication and email are optional.
package integration

// Category is one provider slot. Exactly one concrete provider can occupy a
// category at a time.
type Category int

const (
	Management Category = iota
	Communication
	Email
	AI
)

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{Management, Communication, Email, AI}
}

func (c Category) String() string {
	switch c {
	case Management:
		return "management"
	case Communication:
		return "communication"
	case Email:
		return "email"
	case AI:
		return "ai"
	default:
		return "unknown"
	}
}

// Title returns the category's display label.
func (c Category) Title() string {
	switch c {
	case Management:
		return "Management Tool"
	case Communication:
		return "Communication"
	case Email:
		return "Email Integration"
	case AI:
		return "AI Engine"
	default:
		return "Unknown"
	}
}

// Required reports whether the category must be connected before the
// configuration can be saved.
func (c Category) Required() bool {
	return c == Management || c == AI
}

// Provider is one concrete offering within a category.
type Provider struct {
	ID   string
	Name string
}

// Providers returns the catalog for a category. Only Jira round-trips
// against the backend today; selecting another management provider surfaces
// the backend's rejection on connect.
func Providers(c Category) []Provider {
	switch c {
	case Management:
		return []Provider{
			{ID: "Jira", Name: "Jira"},
			{ID: "Azure", Name: "Azure DevOps"},
			{ID: "Trello", Name: "Trello"},
			{ID: "GitHub", Name: "GitHub"},
		}
	case Communication:
		return []Provider{
			{ID: "Slack", Name: "Slack"},
			{ID: "Teams", Name: "Teams"},
		}
	case Email:
		return []Provider{
			{ID: "Gmail", Name: "Gmail"},
			{ID: "Office365", Name: "Office 365"},
		}
	case AI:
		return []Provider{
			{ID: "ChatGPT", Name: "ChatGPT"},
			{ID: "Gemini", Name: "Gemini"},
			{ID: "DeepSeek", Name: "DeepSeek"},
			{ID: "Llama", Name: "Meta LLaMA"},
		}
	default:
		return nil
	}
}

// ProviderName resolves a provider id to its display name.
func ProviderName(c Category, id string) string {
	for _, p := range Providers(c) {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
