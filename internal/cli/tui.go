package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pagesmith/pagesmith/pkg/canvas"
	"github.com/pagesmith/pagesmith/pkg/markup"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)

	canvasBorderStyle  = lipgloss.NewStyle().Foreground(colorDim)
	componentStyle     = lipgloss.NewStyle().Foreground(colorWhite)
	componentDragStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	regionLineStyle    = lipgloss.NewStyle().Foreground(colorDim)
	tabActiveStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	tabInactiveStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// builderLayout maps the canvas coordinate space onto terminal cells.
type builderLayout struct {
	cols, rows int     // canvas grid size in cells
	cellW      float64 // canvas units per cell, horizontal
	cellH      float64 // canvas units per cell, vertical
}

func newBuilderLayout(rect canvas.Rect, cols, rows int) builderLayout {
	return builderLayout{
		cols:  cols,
		rows:  rows,
		cellW: rect.Width / float64(cols),
		cellH: rect.Height / float64(rows),
	}
}

// toCanvas converts a cell coordinate to a canvas point (cell center).
func (l builderLayout) toCanvas(col, row int) canvas.Point {
	return canvas.Point{
		X: (float64(col) + 0.5) * l.cellW,
		Y: (float64(row) + 0.5) * l.cellH,
	}
}

// toCell converts a canvas point to a cell coordinate.
func (l builderLayout) toCell(p canvas.Point) (col, row int) {
	col = int(p.X / l.cellW)
	row = int(p.Y / l.cellH)
	return min(max(col, 0), l.cols-1), min(max(row, 0), l.rows-1)
}

// =============================================================================
// BuilderModel - Interactive canvas editor
// =============================================================================

// BuilderModel is the bubbletea model for the interactive page builder.
// Mouse events on the canvas pane drive the controller's reposition
// machine; the catalog pane places components into the active region.
type BuilderModel struct {
	ctl    *canvas.Controller
	rect   canvas.Rect
	layout builderLayout

	DocumentName string

	cursor   int   // catalog cursor within the active region
	selected int64 // last clicked component id, 0 if none
	status   string

	canvasLeft int // column offset of the canvas pane content
	canvasTop  int // row offset of the canvas pane content

	Saved     bool // whether the document was saved on quit
	generated string
}

const (
	builderCols = 60
	builderRows = 24
)

// NewBuilderModel creates a builder editing the given store.
func NewBuilderModel(ctl *canvas.Controller, rect canvas.Rect, documentName string) BuilderModel {
	return BuilderModel{
		ctl:          ctl,
		rect:         rect,
		layout:       newBuilderLayout(rect, builderCols, builderRows),
		DocumentName: documentName,
		canvasLeft:   28, // catalog pane width + borders
		canvasTop:    3,  // title + tab line
	}
}

func (m BuilderModel) Init() tea.Cmd {
	return nil
}

func (m BuilderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	}
	return m, nil
}

func (m BuilderModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := canvas.CatalogFor(m.ctl.Store().ActiveRegion())

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.cycleRegion(1)
		m.cursor = 0
	case "shift+tab":
		m.cycleRegion(-1)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(entries) {
			placed := m.ctl.SelectEntry(entries[m.cursor], m.rect)
			m.selected = placed.ID
			m.status = fmt.Sprintf("placed %s", placed.Label)
		}
	case "d", "backspace":
		if m.selected != 0 {
			m.ctl.Delete(m.selected)
			m.status = fmt.Sprintf("deleted component %d", m.selected)
			m.selected = 0
		}
	case "c":
		m.ctl.Reset()
		m.selected = 0
		m.cursor = 0
		m.status = "cleared canvas"
	case "g":
		out, err := markup.Generate(m.ctl.Store().Components())
		if err != nil {
			m.status = err.Error()
		} else {
			m.generated = out
			m.status = fmt.Sprintf("generated %d bytes (saved on quit)", len(out))
		}
	case "s":
		m.Saved = true
		return m, tea.Quit
	}
	return m, nil
}

func (m BuilderModel) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionRelease {
		return m, nil
	}

	col := msg.X - m.canvasLeft
	row := msg.Y - m.canvasTop
	inCanvas := col >= 0 && col < m.layout.cols && row >= 0 && row < m.layout.rows
	pointer := m.layout.toCanvas(col, row)

	switch msg.Action {
	case tea.MouseActionPress:
		if !inCanvas {
			return m, nil
		}
		if id, ok := m.componentAt(pointer); ok {
			m.selected = id
			m.ctl.BeginDrag(id, pointer, m.rect)
		}
	case tea.MouseActionMotion:
		m.ctl.MoveDrag(pointer, m.rect)
	case tea.MouseActionRelease:
		m.ctl.EndDrag()
	}
	return m, nil
}

// componentAt finds the topmost component whose footprint contains p.
// Later placements win, matching visual stacking order.
func (m BuilderModel) componentAt(p canvas.Point) (int64, bool) {
	components := m.ctl.Store().Components()
	for i := len(components) - 1; i >= 0; i-- {
		c := components[i]
		if p.X >= c.Position.X && p.X < c.Position.X+canvas.FootprintWidth &&
			p.Y >= c.Position.Y && p.Y < c.Position.Y+canvas.FootprintHeight {
			return c.ID, true
		}
	}
	return 0, false
}

func (m *BuilderModel) cycleRegion(delta int) {
	regions := canvas.Regions()
	current := 0
	for i, r := range regions {
		if r == m.ctl.Store().ActiveRegion() {
			current = i
		}
	}
	next := (current + delta + len(regions)) % len(regions)
	m.ctl.SetActiveRegion(regions[next])
}

// =============================================================================
// View
// =============================================================================

func (m BuilderModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pagesmith Builder"))
	if m.DocumentName != "" {
		b.WriteString(listDimStyle.Render("  " + m.DocumentName))
	}
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	catalog := m.renderCatalog()
	canvasPane := m.renderCanvas()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, catalog, canvasPane))
	b.WriteString("\n")

	b.WriteString(listDimStyle.Render("tab region  ⏎ place  drag move  d delete  c clear  g generate  s save  q quit"))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(m.status))
	}
	return b.String()
}

func (m BuilderModel) renderTabs() string {
	parts := make([]string, 0, 3)
	for _, r := range canvas.Regions() {
		label := fmt.Sprintf(" %s (%d) ", r.Label(), m.ctl.Store().CountIn(r))
		if r == m.ctl.Store().ActiveRegion() {
			parts = append(parts, tabActiveStyle.Render(label))
		} else {
			parts = append(parts, tabInactiveStyle.Render(label))
		}
	}
	return strings.Join(parts, listDimStyle.Render("|"))
}

func (m BuilderModel) renderCatalog() string {
	var b strings.Builder
	b.WriteString(listDimStyle.Render("Catalog") + "\n")

	for i, e := range canvas.CatalogFor(m.ctl.Store().ActiveRegion()) {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + e.Label
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(24).Render(b.String())
}

// renderCanvas draws the canvas as a cell grid: region baselines as
// horizontal rules, components as labels anchored at their position.
func (m BuilderModel) renderCanvas() string {
	grid := make([][]rune, m.layout.rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", m.layout.cols))
	}

	// Region baselines (skip the header baseline at the top edge)
	for _, r := range canvas.Regions()[1:] {
		_, row := m.layout.toCell(canvas.Point{X: 0, Y: r.Baseline()})
		for col := 0; col < m.layout.cols; col++ {
			grid[row][col] = '┄'
		}
		label := []rune(r.Label())
		copy(grid[row][1:], label)
	}

	// Components, in placement order so later ones draw on top
	owner := make(map[[2]int]int64)
	for _, c := range m.ctl.Store().Components() {
		col, row := m.layout.toCell(c.Position)
		label := []rune("[" + c.Label + "]")
		for i, ch := range label {
			if col+i >= m.layout.cols {
				break
			}
			grid[row][col+i] = ch
			owner[[2]int{row, col + i}] = c.ID
		}
	}

	var b strings.Builder
	for row, runes := range grid {
		line := string(runes)
		switch {
		case strings.ContainsRune(line, '┄'):
			b.WriteString(regionLineStyle.Render(line))
		case m.rowHasSelection(owner, row):
			b.WriteString(componentDragStyle.Render(line))
		default:
			b.WriteString(componentStyle.Render(line))
		}
		if row < m.layout.rows-1 {
			b.WriteString("\n")
		}
	}

	return canvasBorderStyle.
		Border(lipgloss.RoundedBorder()).
		Render(b.String())
}

func (m BuilderModel) rowHasSelection(owner map[[2]int]int64, row int) bool {
	if m.selected == 0 {
		return false
	}
	for col := 0; col < m.layout.cols; col++ {
		if id, ok := owner[[2]int{row, col}]; ok && id == m.selected {
			return true
		}
	}
	return false
}

// Generated returns the markup produced with the g key, if any.
func (m BuilderModel) Generated() string {
	return m.generated
}
