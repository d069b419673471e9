// Package tui implements the terminal front-end: three tabbed table views
// over one editing session, with cell editing, element selection, and
// configuration save/load.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bcaguide/internal/core"
	"bcaguide/internal/deck"
	"bcaguide/pkg/catalog"
	"bcaguide/pkg/domain"
)

type pane int

const (
	paneBeam pane = iota
	paneTarget
	paneLayers
)

var paneTitles = []string{"Beam", "Target", "Layers"}

type inputMode int

const (
	modeBrowse inputMode = iota
	modeEditCell
	modeSaveName
	modeLoadName
)

// Model is the bubbletea model of the application.
type Model struct {
	session *core.Session
	catalog *catalog.Catalog
	store   domain.ConfigStore
	writer  *deck.Writer

	styles styles
	keys   keyMap
	help   help.Model
	input  textinput.Model

	pane pane
	row  int
	col  int
	mode inputMode

	status string
	dirty  bool
	width  int
	height int
}

// New constructs the model. store and writer may be nil; saving is then
// disabled.
func New(session *core.Session, cat *catalog.Catalog, store domain.ConfigStore, writer *deck.Writer) Model {
	input := textinput.New()
	input.CharLimit = 64
	return Model{
		session: session,
		catalog: cat,
		store:   store,
		writer:  writer,
		styles:  newStyles(),
		keys:    newKeyMap(),
		help:    help.New(),
		input:   input,
		col:     2,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.mode != modeBrowse {
			return m.updatePrompt(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.NextPane):
		m.pane = (m.pane + 1) % 3
		m.clampCursor()
	case key.Matches(msg, k.Up):
		m.row--
		m.clampCursor()
	case key.Matches(msg, k.Down):
		m.row++
		m.clampCursor()
	case key.Matches(msg, k.Left):
		m.col--
		m.clampCursor()
	case key.Matches(msg, k.Right):
		m.col++
		m.clampCursor()
	case key.Matches(msg, k.AddRow):
		m.addRow()
	case key.Matches(msg, k.DeleteRow):
		m.deleteRow()
	case key.Matches(msg, k.NextElement):
		m.cycleElement()
	case key.Matches(msg, k.Edit):
		return m.beginEdit()
	case key.Matches(msg, k.Save):
		return m.beginPrompt(modeSaveName, "save configuration as")
	case key.Matches(msg, k.Load):
		return m.beginPrompt(modeLoadName, "open configuration")
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		mode := m.mode
		m.mode = modeBrowse
		m.input.Blur()
		switch mode {
		case modeEditCell:
			m.commitEdit(value)
		case modeSaveName:
			m.saveConfig(value)
		case modeLoadName:
			m.loadConfig(value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) addRow() {
	if m.pane == paneLayers {
		m.session.Layers.AddRow()
		m.dirty = true
		return
	}
	if m.compTable().AddRow() == nil {
		m.status = fmt.Sprintf("component limit of %d reached", m.session.Counter().Maximum())
		return
	}
	m.dirty = true
	m.row = m.compTable().Len() - 1
	m.clampCursor()
}

func (m *Model) deleteRow() {
	if m.pane == paneLayers {
		m.session.Layers.RemoveRow(m.row)
	} else {
		m.compTable().RemoveRow(m.row)
	}
	m.dirty = true
	m.clampCursor()
}

func (m *Model) cycleElement() {
	if m.pane == paneLayers {
		return
	}
	t := m.compTable()
	if m.row >= t.Len() {
		return
	}
	row := t.Rows()[m.row]
	elements := m.catalog.Elements()
	if len(elements) == 0 {
		return
	}
	next := 0
	for i, el := range elements {
		if el.Symbol == row.Element().Symbol {
			next = (i + 1) % len(elements)
			break
		}
	}
	el := elements[next]
	if n := t.SetElement(row, el); n > 1 {
		m.status = fmt.Sprintf("%s now occurs %d times in this table", el.Symbol, n)
	} else {
		m.status = ""
	}
	m.dirty = true
}

func (m Model) beginEdit() (tea.Model, tea.Cmd) {
	cell := m.cellAt(m.row, m.col)
	if cell == nil {
		return m, nil
	}
	if !cell.Enabled() || !cell.Assignable() {
		m.status = "cell is read-only"
		return m, nil
	}
	m.mode = modeEditCell
	m.input.SetValue(strconv.FormatFloat(cell.Value(), 'g', -1, 64))
	m.input.Prompt = cell.Field().Label() + " = "
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) commitEdit(raw string) {
	cell := m.cellAt(m.row, m.col)
	if cell == nil {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		m.status = fmt.Sprintf("not a number: %q", raw)
		return
	}
	cell.Set(v)
	m.dirty = true
	m.status = ""
}

func (m Model) beginPrompt(mode inputMode, prompt string) (tea.Model, tea.Cmd) {
	if m.store == nil {
		m.status = "no configuration store available"
		return m, nil
	}
	m.mode = mode
	m.input.SetValue("")
	m.input.Prompt = prompt + ": "
	m.input.Focus()
	return m, textinput.Blink
}

func (m *Model) saveConfig(name string) {
	if name == "" {
		return
	}
	ctx := context.Background()
	args := m.session.GetArguments()
	if _, err := m.store.Save(ctx, name, args); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	if m.writer != nil {
		if _, err := m.writer.Archive(ctx, name, args); err != nil {
			m.status = fmt.Sprintf("saved, but deck archive failed: %v", err)
			return
		}
	}
	m.dirty = false
	m.status = fmt.Sprintf("saved %q", name)
}

func (m *Model) loadConfig(name string) {
	if name == "" {
		return
	}
	args, err := m.store.Load(context.Background(), name)
	if err != nil {
		m.status = fmt.Sprintf("open failed: %v", err)
		return
	}
	diags := m.session.SetArguments(args, m.catalog)
	m.dirty = false
	m.row, m.col = 0, 2
	m.clampCursor()
	if len(diags) > 0 {
		m.status = strings.Join(diags, "; ")
	} else {
		m.status = fmt.Sprintf("opened %q", name)
	}
}

func (m *Model) compTable() *core.CompTable {
	if m.pane == paneTarget {
		return m.session.Target
	}
	return m.session.Beam
}

func (m *Model) rowCount() int {
	if m.pane == paneLayers {
		return m.session.Layers.Len()
	}
	return m.compTable().Len()
}

func (m *Model) colCount() int {
	if m.pane == paneLayers {
		return 2 + len(m.session.Layers.Elements())
	}
	return len(m.compTable().Fields())
}

func (m *Model) clampCursor() {
	if max := m.rowCount() - 1; m.row > max {
		m.row = max
	}
	if m.row < 0 {
		m.row = 0
	}
	if max := m.colCount() - 1; m.col > max {
		m.col = max
	}
	if m.col < 0 {
		m.col = 0
	}
}

func (m *Model) cellAt(row, col int) *core.Cell {
	if m.pane == paneLayers {
		rows := m.session.Layers.Rows()
		if row >= len(rows) {
			return nil
		}
		switch {
		case col == 0:
			return rows[row].Segments()
		case col == 1:
			return rows[row].Thickness()
		case col-2 < len(rows[row].Abundances()):
			return rows[row].Abundances()[col-2]
		}
		return nil
	}
	t := m.compTable()
	if row >= t.Len() || col >= len(t.Fields()) {
		return nil
	}
	return t.Rows()[row].Cell(t.Fields()[col].Unique())
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n")
	if m.pane == paneLayers {
		b.WriteString(m.viewLayers())
	} else {
		b.WriteString(m.viewCompTable())
	}
	b.WriteString("\n")
	if m.mode != modeBrowse {
		b.WriteString(m.styles.prompt.Render(m.input.View()))
		b.WriteString("\n")
	}
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return m.styles.app.Render(b.String())
}

func (m Model) viewTabs() string {
	tabs := make([]string, len(paneTitles))
	for i, title := range paneTitles {
		if pane(i) == m.pane {
			tabs[i] = m.styles.tabActive.Render(title)
		} else {
			tabs[i] = m.styles.tabInactive.Render(title)
		}
	}
	return m.styles.tabsRow.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewCompTable() string {
	t := m.compTable()
	fields := t.Fields()
	var b strings.Builder
	headers := make([]string, len(fields))
	for i, f := range fields {
		headers[i] = m.styles.header.Render(f.Label())
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")
	for ri, row := range t.Rows() {
		cols := make([]string, len(fields))
		for ci, f := range fields {
			var text string
			switch ci {
			case 0:
				text = strconv.Itoa(row.Rank())
			case 1:
				if row.ContainsData() {
					text = row.Element().Symbol
				} else {
					text = "--"
				}
			default:
				cell := row.Cell(f.Unique())
				text = strconv.FormatFloat(cell.Value(), 'g', 6, 64)
			}
			cols[ci] = m.cellStyle(ri, ci, row.Cell(f.Unique())).Render(text)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) viewLayers() string {
	lt := m.session.Layers
	var b strings.Builder
	headers := []string{m.styles.header.Render("Layer"), m.styles.header.Render("Segments"), m.styles.header.Render("Thickness")}
	for _, sym := range lt.Elements() {
		if sym == "" {
			sym = "--"
		}
		headers = append(headers, m.styles.header.Render(sym))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	b.WriteString("\n")
	for ri, row := range lt.Rows() {
		cols := []string{m.styles.cell.Render(row.Name())}
		cols = append(cols, m.cellStyle(ri, 0, row.Segments()).Render(strconv.FormatFloat(row.Segments().Value(), 'g', 6, 64)))
		cols = append(cols, m.cellStyle(ri, 1, row.Thickness()).Render(strconv.FormatFloat(row.Thickness().Value(), 'g', 6, 64)))
		for ci, cell := range row.Abundances() {
			cols = append(cols, m.cellStyle(ri, ci+2, cell).Render(strconv.FormatFloat(cell.Value(), 'g', 6, 64)))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) cellStyle(row, col int, cell *core.Cell) lipgloss.Style {
	if row == m.row && col == m.col {
		return m.styles.cellCursor
	}
	if cell != nil && cell.Highlighted() {
		return m.styles.cellFlagged
	}
	if cell != nil && (!cell.Enabled() || !cell.Assignable()) {
		return m.styles.cellDim
	}
	return m.styles.cell
}

func (m Model) viewStatus() string {
	segments := []string{
		fmt.Sprintf("%s | %d/%d components", m.session.Simulation(), m.session.Counter().Len(), m.session.Counter().Maximum()),
	}
	if m.dirty {
		segments = append(segments, "unsaved changes")
	}
	line := m.styles.statusBar.Render(strings.Join(segments, "  "))
	if m.status != "" {
		line += m.styles.statusWarn.Render(m.status)
	}
	return line
}
