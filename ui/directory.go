package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
)

// Agent is one entry in the hub's directory. Only configured agents can be
// opened; the rest render as inert cards.
type Agent struct {
	ID        string
	Name      string
	Tagline   string
	Available bool
}

// AgentCatalog returns the directory in display order. The scrum master is
// the only agent with a working backend today.
func AgentCatalog() []Agent {
	return []Agent{
		{ID: "scrum-master", Name: "Scrum Master", Tagline: "Sprint planning, backlog and board insights", Available: true},
		{ID: "project-manager", Name: "Project Manager", Tagline: "Timelines, budgets and resourcing", Available: false},
		{ID: "accountant", Name: "Accountant", Tagline: "Invoices, expenses and reporting", Available: false},
		{ID: "hr", Name: "HR Assistant", Tagline: "Onboarding, leave and policies", Available: false},
	}
}

const (
	directoryColumns = 2
	cardWidth        = 36
	cardHeight       = 5
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay).
	Padding(0, 2).
	Width(cardWidth)

var cardFocusedStyle = cardStyle.
	BorderForeground(ColorIris)

var cardNameStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Bold(true)

var cardNameDimStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Bold(true)

var cardTaglineStyle = lipgloss.NewStyle().
	Foreground(ColorSubtle)

var cardTaglineDimStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

var cardBadgeAvailable = lipgloss.NewStyle().
	Foreground(ColorFoam).
	Render("● available")

var cardBadgeSoon = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Render("○ coming soon")

var directoryTitleStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Bold(true).
	MarginBottom(1)

// DirectoryPane renders the agent card grid and tracks the keyboard cursor.
type DirectoryPane struct {
	agents        []Agent
	selected      int
	width, height int
}

// NewDirectoryPane creates the pane over the static catalog.
func NewDirectoryPane() *DirectoryPane {
	return &DirectoryPane{agents: AgentCatalog()}
}

// SetSize sets the available area.
func (d *DirectoryPane) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// Agents returns the catalog backing the grid.
func (d *DirectoryPane) Agents() []Agent {
	return d.agents
}

// Selected returns the agent under the cursor.
func (d *DirectoryPane) Selected() Agent {
	return d.agents[d.selected]
}

// Select moves the cursor to the given grid index if it exists.
func (d *DirectoryPane) Select(idx int) {
	if idx >= 0 && idx < len(d.agents) {
		d.selected = idx
	}
}

// MoveUp moves the cursor one row up.
func (d *DirectoryPane) MoveUp() {
	d.Select(d.selected - directoryColumns)
}

// MoveDown moves the cursor one row down.
func (d *DirectoryPane) MoveDown() {
	d.Select(d.selected + directoryColumns)
}

// MoveLeft moves the cursor one card left.
func (d *DirectoryPane) MoveLeft() {
	d.Select(d.selected - 1)
}

// MoveRight moves the cursor one card right.
func (d *DirectoryPane) MoveRight() {
	d.Select(d.selected + 1)
}

func (d *DirectoryPane) renderCard(idx int) string {
	a := d.agents[idx]

	name := cardNameStyle
	tagline := cardTaglineStyle
	badge := cardBadgeAvailable
	if !a.Available {
		name = cardNameDimStyle
		tagline = cardTaglineDimStyle
		badge = cardBadgeSoon
	}

	style := cardStyle
	if idx == d.selected {
		style = cardFocusedStyle
	}

	content := name.Render(a.Name) + "\n" +
		tagline.Render(a.Tagline) + "\n" +
		badge

	return zone.Mark(AgentCardZoneID(idx), style.Render(content))
}

// String renders the grid centered in the pane.
func (d *DirectoryPane) String() string {
	var rows []string
	for start := 0; start < len(d.agents); start += directoryColumns {
		end := start + directoryColumns
		if end > len(d.agents) {
			end = len(d.agents)
		}
		cards := make([]string, 0, directoryColumns)
		for i := start; i < end; i++ {
			cards = append(cards, d.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	grid := directoryTitleStyle.Render("Choose your agent") + "\n" +
		strings.Join(rows, "\n")

	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, grid)
}
