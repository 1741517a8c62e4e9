package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agenthub-io/agenthub/ui"
)

// CredentialsForm collects the secrets for one integration category. The
// management tool needs the email/token/domain triple; every other category
// takes a single secret.
type CredentialsForm struct {
	form      *huh.Form
	title     string
	triple    bool
	submitted bool
	canceled  bool
	width     int

	emailVal  string
	tokenVal  string
	domainVal string
	secretVal string
}

// NewCredentialsForm creates the form. triple selects the management layout.
func NewCredentialsForm(title string, triple bool, width int) *CredentialsForm {
	f := &CredentialsForm{
		title:  title,
		triple: triple,
		width:  width,
	}

	formWidth := width - 6
	if formWidth < 34 {
		formWidth = 34
	}

	var fields []huh.Field
	if triple {
		fields = []huh.Field{
			huh.NewInput().
				Key("email").
				Title("account email").
				Value(&f.emailVal),
			huh.NewInput().
				Key("token").
				Title("api token").
				EchoMode(huh.EchoModePassword).
				Value(&f.tokenVal),
			huh.NewInput().
				Key("domain").
				Title("workspace domain").
				Placeholder("yourcompany.atlassian.net").
				Value(&f.domainVal),
		}
	} else {
		fields = []huh.Field{
			huh.NewInput().
				Key("secret").
				Title("api key").
				EchoMode(huh.EchoModePassword).
				Value(&f.secretVal),
		}
	}

	f.form = huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(ThemeRosePine()).
		WithWidth(formWidth).
		WithShowHelp(false).
		WithShowErrors(false)

	_ = f.form.Init()

	return f
}

func (f *CredentialsForm) updateForm(msg tea.Msg) {
	updated, _ := f.form.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		f.form = form
	}
}

// HandleKeyPress processes a key and returns true when the overlay should close.
func (f *CredentialsForm) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEsc:
		f.canceled = true
		return true

	case tea.KeyEnter:
		if f.empty() {
			return false
		}
		f.submitted = true
		return true

	case tea.KeyTab, tea.KeyDown:
		f.updateForm(huh.NextField())
		return false

	case tea.KeyShiftTab, tea.KeyUp:
		f.updateForm(huh.PrevField())
		return false

	default:
		f.updateForm(msg)
		return false
	}
}

func (f *CredentialsForm) empty() bool {
	if f.triple {
		return strings.TrimSpace(f.emailVal) == "" ||
			strings.TrimSpace(f.tokenVal) == "" ||
			strings.TrimSpace(f.domainVal) == ""
	}
	return strings.TrimSpace(f.secretVal) == ""
}

// Email returns the account email (triple layout only).
func (f *CredentialsForm) Email() string {
	return strings.TrimSpace(f.emailVal)
}

// Token returns the api token (triple layout only).
func (f *CredentialsForm) Token() string {
	return strings.TrimSpace(f.tokenVal)
}

// Domain returns the workspace domain (triple layout only).
func (f *CredentialsForm) Domain() string {
	return strings.TrimSpace(f.domainVal)
}

// Secret returns the single secret (non-triple layout).
func (f *CredentialsForm) Secret() string {
	return strings.TrimSpace(f.secretVal)
}

// IsSubmitted returns true when the form was submitted.
func (f *CredentialsForm) IsSubmitted() bool {
	return f.submitted
}

// Render returns the styled overlay string.
func (f *CredentialsForm) Render() string {
	w := f.width
	if w < 40 {
		w = 40
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorIris).
		Bold(true).
		MarginBottom(1)

	hintStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1)

	content := titleStyle.Render(f.title) + "\n"
	content += f.form.View() + "\n"
	content += hintStyle.Render("tab/↑↓ navigate · enter connect · esc cancel")

	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ui.ColorIris).
		Padding(1, 2).
		Width(w)

	return style.Render(content)
}
