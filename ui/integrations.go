package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/agenthub-io/agenthub/internal/api"
	"github.com/agenthub-io/agenthub/internal/integration"
)

// IntegrationsFocus identifies which part of the panel owns the cursor.
type IntegrationsFocus int

const (
	FocusCategories IntegrationsFocus = iota
	FocusProviders
	FocusProjects
	FocusBoards
)

var panelTitleStyle = lipgloss.NewStyle().
	Foreground(ColorIris).
	Bold(true).
	MarginBottom(1)

var backLinkStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

var categoryRowStyle = lipgloss.NewStyle().
	Foreground(ColorText).
	Padding(0, 1)

var categoryRowFocusedStyle = categoryRowStyle.
	Background(ColorOverlay)

var requiredMarkStyle = lipgloss.NewStyle().Foreground(ColorGold)

var connectedGlyph = lipgloss.NewStyle().Foreground(ColorFoam).Render("✓")
var disconnectedGlyph = lipgloss.NewStyle().Foreground(ColorMuted).Render("○")

var providerChipStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorOverlay).
	Padding(0, 1)

var providerChipSelectedStyle = providerChipStyle.
	BorderForeground(ColorFoam)

var providerChipFocusedStyle = providerChipStyle.
	BorderForeground(ColorIris)

var pickerItemStyle = lipgloss.NewStyle().Foreground(ColorSubtle).Padding(0, 1)
var pickerItemChosenStyle = lipgloss.NewStyle().Foreground(ColorFoam).Padding(0, 1)
var pickerItemFocusedStyle = lipgloss.NewStyle().Foreground(ColorText).Background(ColorOverlay).Padding(0, 1)

var saveReadyStyle = lipgloss.NewStyle().
	Foreground(ColorBase).
	Background(ColorFoam).
	Padding(0, 2).
	Bold(true)

var saveBlockedStyle = lipgloss.NewStyle().
	Foreground(ColorMuted).
	Background(ColorSurface).
	Padding(0, 2)

var panelHintStyle = lipgloss.NewStyle().Foreground(ColorMuted)

// IntegrationsPane renders the configurator: category rows, provider chips
// for the focused category, and the project/board pickers once the
// management tool is connected.
type IntegrationsPane struct {
	cfg *integration.Configurator

	focus         IntegrationsFocus
	categoryIdx   int
	providerIdx   int
	projectIdx    int
	boardIdx      int
	width, height int
}

// NewIntegrationsPane creates the pane bound to a configurator.
func NewIntegrationsPane(cfg *integration.Configurator) *IntegrationsPane {
	return &IntegrationsPane{cfg: cfg}
}

// SetSize sets the available area.
func (p *IntegrationsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Focus returns the section owning the cursor.
func (p *IntegrationsPane) Focus() IntegrationsFocus {
	return p.focus
}

// SetFocus moves the cursor between sections, clamping the row indices.
func (p *IntegrationsPane) SetFocus(f IntegrationsFocus) {
	p.focus = f
	p.providerIdx = 0
	p.projectIdx = 0
	p.boardIdx = 0
}

// SelectCategory moves the category cursor directly to idx, used by mouse
// hit-testing.
func (p *IntegrationsPane) SelectCategory(idx int) {
	if idx >= 0 && idx < len(integration.Categories()) {
		p.categoryIdx = idx
		p.providerIdx = 0
	}
}

// FocusedCategory returns the category row under the cursor.
func (p *IntegrationsPane) FocusedCategory() integration.Category {
	return integration.Categories()[p.categoryIdx]
}

// FocusedProvider returns the provider chip under the cursor.
func (p *IntegrationsPane) FocusedProvider() integration.Provider {
	providers := integration.Providers(p.FocusedCategory())
	return providers[p.providerIdx]
}

// FocusedProject returns the project row under the cursor, if any.
func (p *IntegrationsPane) FocusedProject() (api.Project, bool) {
	projects := p.cfg.Projects()
	if p.projectIdx < 0 || p.projectIdx >= len(projects) {
		return api.Project{}, false
	}
	return projects[p.projectIdx], true
}

// FocusedBoard returns the board row under the cursor, if any.
func (p *IntegrationsPane) FocusedBoard() (api.Board, bool) {
	boards := p.visibleBoards()
	if p.boardIdx < 0 || p.boardIdx >= len(boards) {
		return api.Board{}, false
	}
	return boards[p.boardIdx], true
}

// visibleBoards filters the board picker to the selected project.
func (p *IntegrationsPane) visibleBoards() []api.Board {
	if project, ok := p.cfg.Selection().Project(); ok {
		return p.cfg.Boards(project.Key)
	}
	return nil
}

// MoveUp moves the cursor within the focused section.
func (p *IntegrationsPane) MoveUp() {
	p.move(-1)
}

// MoveDown moves the cursor within the focused section.
func (p *IntegrationsPane) MoveDown() {
	p.move(1)
}

func (p *IntegrationsPane) move(delta int) {
	switch p.focus {
	case FocusCategories:
		p.categoryIdx = clamp(p.categoryIdx+delta, 0, len(integration.Categories())-1)
	case FocusProviders:
		n := len(integration.Providers(p.FocusedCategory()))
		p.providerIdx = clamp(p.providerIdx+delta, 0, n-1)
	case FocusProjects:
		p.projectIdx = clamp(p.projectIdx+delta, 0, len(p.cfg.Projects())-1)
	case FocusBoards:
		p.boardIdx = clamp(p.boardIdx+delta, 0, len(p.visibleBoards())-1)
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (p *IntegrationsPane) renderCategoryRow(idx int) string {
	c := integration.Categories()[idx]
	conn := p.cfg.Connection(c)

	glyph := disconnectedGlyph
	if conn.Connected {
		glyph = connectedGlyph
	}

	label := c.Title()
	if c.Required() {
		label += requiredMarkStyle.Render(" *")
	}

	provider := "—"
	if conn.SelectedProvider != "" {
		provider = integration.ProviderName(c, conn.SelectedProvider)
	}
	if conn.Connecting {
		provider += " (connecting…)"
	}

	style := categoryRowStyle
	if p.focus == FocusCategories && idx == p.categoryIdx {
		style = categoryRowFocusedStyle
	}

	row := glyph + " " + label + "  " +
		lipgloss.NewStyle().Foreground(ColorSubtle).Render(provider)
	return zone.Mark(CategoryZoneID(idx), style.Width(p.innerWidth()).Render(row))
}

func (p *IntegrationsPane) renderProviderChips() string {
	c := p.FocusedCategory()
	conn := p.cfg.Connection(c)

	chips := make([]string, 0, 4)
	for i, provider := range integration.Providers(c) {
		style := providerChipStyle
		if provider.ID == conn.SelectedProvider {
			style = providerChipSelectedStyle
		}
		if p.focus == FocusProviders && i == p.providerIdx {
			style = providerChipFocusedStyle
		}
		chips = append(chips, zone.Mark(ProviderZoneID(i), style.Render(provider.Name)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (p *IntegrationsPane) renderProjectPicker() string {
	projects := p.cfg.Projects()
	if len(projects) == 0 {
		return panelHintStyle.Render("No projects found for this workspace.")
	}

	chosen, _ := p.cfg.Selection().Project()
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Project"))
	b.WriteByte('\n')
	for i, project := range projects {
		style := pickerItemStyle
		if project.Key == chosen.Key {
			style = pickerItemChosenStyle
		}
		if p.focus == FocusProjects && i == p.projectIdx {
			style = pickerItemFocusedStyle
		}
		b.WriteString(style.Render(project.Key + "  " + project.Name))
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *IntegrationsPane) renderBoardPicker() string {
	if _, ok := p.cfg.Selection().Project(); !ok {
		return panelHintStyle.Render("Pick a project to see its boards.")
	}
	boards := p.visibleBoards()
	if len(boards) == 0 {
		return panelHintStyle.Render("No boards in the selected project.")
	}

	chosen, _ := p.cfg.Selection().Board()
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Board"))
	b.WriteByte('\n')
	for i, board := range boards {
		style := pickerItemStyle
		if board.ID == chosen.ID {
			style = pickerItemChosenStyle
		}
		if p.focus == FocusBoards && i == p.boardIdx {
			style = pickerItemFocusedStyle
		}
		b.WriteString(style.Render(board.Name + "  (" + board.Type + ")"))
		b.WriteByte('\n')
	}
	return b.String()
}

func (p *IntegrationsPane) renderSaveButton() string {
	if p.cfg.IsReadyToSave() {
		return zone.Mark(ZoneSaveConfig, saveReadyStyle.Render("Save configuration"))
	}
	return saveBlockedStyle.Render("Connect the required integrations to save")
}

func (p *IntegrationsPane) innerWidth() int {
	w := p.width - 4
	if w < 40 {
		w = 40
	}
	return w
}

// String renders the full panel.
func (p *IntegrationsPane) String() string {
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		panelTitleStyle.Render("Integrations"), "  ",
		zone.Mark(ZoneBackToGrid, backLinkStyle.Render("← directory"))))
	b.WriteByte('\n')

	for i := range integration.Categories() {
		b.WriteString(p.renderCategoryRow(i))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(p.renderProviderChips())
	b.WriteByte('\n')

	if p.cfg.Connection(integration.Management).Connected {
		b.WriteByte('\n')
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			p.renderProjectPicker(), "    ", p.renderBoardPicker()))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(p.renderSaveButton())

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}
