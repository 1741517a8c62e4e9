package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/agenthub-io/agenthub/ui"
)

// LoginForm is the sign-in form backed by huh.Form.
type LoginForm struct {
	form        *huh.Form
	emailVal    string
	passwordVal string
	rememberVal bool
	submitted   bool
	width       int

	// errText surfaces the last rejected attempt under the form.
	errText string
}

// NewLoginForm creates the email/password/remember form.
func NewLoginForm(width int) *LoginForm {
	f := &LoginForm{
		width:       width,
		rememberVal: true,
	}

	formWidth := width - 6
	if formWidth < 34 {
		formWidth = 34
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("email").
				Title("email").
				Value(&f.emailVal),
			huh.NewInput().
				Key("password").
				Title("password").
				EchoMode(huh.EchoModePassword).
				Value(&f.passwordVal),
			huh.NewConfirm().
				Key("remember").
				Title("remember me").
				Affirmative("yes").
				Negative("no").
				Value(&f.rememberVal),
		),
	).
		WithTheme(ThemeRosePine()).
		WithWidth(formWidth).
		WithShowHelp(false).
		WithShowErrors(false)

	_ = f.form.Init()

	return f
}

func (f *LoginForm) updateForm(msg tea.Msg) {
	updated, _ := f.form.Update(msg)
	if form, ok := updated.(*huh.Form); ok {
		f.form = form
	}
}

// SetError shows a rejection message under the form and clears the password.
func (f *LoginForm) SetError(text string) {
	f.errText = text
	f.submitted = false
}

// HandleKeyPress processes a key and returns true when the form was
// submitted with both fields present.
func (f *LoginForm) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyEnter:
		if strings.TrimSpace(f.emailVal) == "" || f.passwordVal == "" {
			f.errText = "email and password are required"
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
		f.errText = ""
		f.updateForm(msg)
		return false
	}
}

// Email returns the email field value.
func (f *LoginForm) Email() string {
	return strings.TrimSpace(f.emailVal)
}

// Password returns the password field value.
func (f *LoginForm) Password() string {
	return f.passwordVal
}

// Remember returns the remember-me choice.
func (f *LoginForm) Remember() bool {
	return f.rememberVal
}

// IsSubmitted returns true when the form was submitted.
func (f *LoginForm) IsSubmitted() bool {
	return f.submitted
}

// Render returns the styled form string.
func (f *LoginForm) Render() string {
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

	errStyle := lipgloss.NewStyle().
		Foreground(ui.ColorLove).
		MarginTop(1)

	content := titleStyle.Render("Sign in") + "\n"
	content += f.form.View() + "\n"
	if f.errText != "" {
		content += errStyle.Render(f.errText) + "\n"
	}
	content += hintStyle.Render("tab/↑↓ navigate · enter sign in")

	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(ui.ColorIris).
		Padding(1, 2).
		Width(w)

	return style.Render(content)
}
