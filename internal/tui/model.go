// Package tui is the interactive terminal form.
//
// Rows are rebuilt from the form layout and its visibility set after every
// change, so revealing or hiding fields needs no per-field wiring here.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"wavegen/internal/field"
	"wavegen/internal/form"
	"wavegen/internal/inputfile"
	"wavegen/internal/logging"
	"wavegen/internal/validate"
)

// HelpDelay is how long the cursor must rest on a row before its help text
// is shown.
const HelpDelay = 500 * time.Millisecond

// footerLines is the space View reserves below the rows.
const footerLines = 8

type rowKind int

const (
	rowHeader rowKind = iota
	rowField
	rowDepth
	rowWavemaker
	rowOutput
	rowValidate
	rowGenerate
)

type row struct {
	kind   rowKind
	title  string
	name   string
	depth  form.DepthMode
	output form.OutputVar
}

// id identifies a row across rebuilds.
func (r row) id() string {
	switch r.kind {
	case rowHeader:
		return "header:" + r.title
	case rowField:
		return "field:" + r.name
	case rowDepth:
		return "depth:" + r.depth.String()
	case rowWavemaker:
		return "wavemaker"
	case rowOutput:
		return "output:" + r.output.Code
	case rowValidate:
		return "validate"
	case rowGenerate:
		return "generate"
	default:
		panic(fmt.Sprintf("tui: unhandled row kind %d", int(r.kind)))
	}
}

// helpMsg fires HelpDelay after the cursor moved. Only the tick carrying
// the latest seq shows help.
type helpMsg struct{ seq int }

type generatedMsg struct {
	path string
	err  error
}

// Model is the bubbletea model for the form.
type Model struct {
	form *form.Form
	dir  string

	rows   []row
	cursor int

	editing bool
	input   textinput.Model

	helpSeq int
	help    string
	status  string
	failed  bool
	report  string

	height   int
	quitting bool
}

// New returns a model over f that writes input files into dir.
func New(f *form.Form, dir string) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	m := Model{form: f, dir: dir, input: ti}
	m.rebuild()
	m.cursor = m.nextFocusable(0, 1)
	return m
}

// Run shows the form until the user quits.
func Run(f *form.Form, dir string) error {
	if _, err := tea.NewProgram(New(f, dir), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return helpTick(m.helpSeq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil
	case helpMsg:
		if msg.seq == m.helpSeq {
			m.help = m.currentHelp()
		}
		return m, nil
	case generatedMsg:
		if msg.err != nil {
			m.status = "Generate failed: " + msg.err.Error()
			m.failed = true
			logging.Error("generate failed", zap.Error(msg.err))
		} else {
			m.status = "Wrote " + msg.path
			m.failed = false
			logging.Info("generated input file", zap.String("path", msg.path))
		}
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateBrowsing(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		name := m.rows[m.cursor].name
		if err := m.form.SetText(name, m.input.Value()); err != nil {
			m.status, m.failed = err.Error(), true
		}
		m.stopEditing()
		m.rebuild()
		return m, nil
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.move(-1)
		return m, m.scheduleHelp()
	case "down", "j":
		m.move(1)
		return m, m.scheduleHelp()
	case "left":
		m.cycle(-1)
	case "right":
		m.cycle(1)
	case " ":
		m.toggle()
	case "enter":
		return m.activate()
	case "v":
		m.runValidate()
	case "g":
		return m, m.generate()
	}
	return m, nil
}

func (m *Model) stopEditing() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

// move steps the cursor over focusable rows.
func (m *Model) move(delta int) {
	if next := m.nextFocusable(m.cursor+delta, delta); next >= 0 {
		m.cursor = next
	}
}

// nextFocusable returns the first non-header row from i in direction dir,
// or -1.
func (m *Model) nextFocusable(i, dir int) int {
	for ; i >= 0 && i < len(m.rows); i += dir {
		if m.rows[i].kind != rowHeader {
			return i
		}
	}
	return -1
}

func (m *Model) scheduleHelp() tea.Cmd {
	m.helpSeq++
	m.help = ""
	return helpTick(m.helpSeq)
}

func helpTick(seq int) tea.Cmd {
	return tea.Tick(HelpDelay, func(time.Time) tea.Msg { return helpMsg{seq: seq} })
}

func (m *Model) currentHelp() string {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return ""
	}
	r := m.rows[m.cursor]
	switch r.kind {
	case rowField:
		if fld, err := m.form.Field(r.name); err == nil {
			return fld.Help()
		}
	case rowDepth:
		return "Exactly one depth type is active"
	case rowWavemaker:
		return "Use left/right to choose the wave maker type"
	case rowOutput:
		return r.output.Label
	case rowValidate:
		return "Check the form for common mistakes"
	case rowGenerate:
		return "Write " + inputfile.FileName
	}
	return ""
}

// rebuild recomputes the rows and keeps the cursor on the same row when it
// is still shown.
func (m *Model) rebuild() {
	var current string
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		current = m.rows[m.cursor].id()
	}

	var rows []row
	for _, sec := range m.form.State().Layout() {
		var body []row
		for _, it := range sec.Items {
			switch it.Control {
			case form.ControlNone:
				if m.form.Visible(it.Field) {
					body = append(body, row{kind: rowField, name: it.Field})
				}
			case form.ControlDepthMode:
				for _, d := range form.DepthModes() {
					body = append(body, row{kind: rowDepth, depth: d})
				}
			case form.ControlWavemakerKind:
				if m.form.ControlVisible(it.Control) {
					body = append(body, row{kind: rowWavemaker})
				}
			case form.ControlOutputs:
				for _, v := range form.OutputCatalog() {
					body = append(body, row{kind: rowOutput, output: v})
				}
			}
		}
		if len(body) > 0 {
			rows = append(rows, row{kind: rowHeader, title: sec.Title})
			rows = append(rows, body...)
		}
	}
	rows = append(rows, row{kind: rowHeader, title: "Actions"}, row{kind: rowValidate}, row{kind: rowGenerate})

	old := m.cursor
	m.rows = rows
	for i, r := range rows {
		if r.id() == current {
			m.cursor = i
			return
		}
	}
	if old >= len(rows) {
		old = len(rows) - 1
	}
	if next := m.nextFocusable(old, 1); next >= 0 {
		m.cursor = next
	} else {
		m.cursor = m.nextFocusable(old, -1)
	}
}

func (m *Model) fieldAt() field.Field {
	r := m.rows[m.cursor]
	if r.kind != rowField {
		return nil
	}
	fld, err := m.form.Field(r.name)
	if err != nil {
		return nil
	}
	return fld
}

// cycle handles left/right: enums and the wavemaker kind.
func (m *Model) cycle(delta int) {
	r := m.rows[m.cursor]
	switch r.kind {
	case rowWavemaker:
		m.form.CycleWavemaker(delta)
	case rowField:
		if fld := m.fieldAt(); fld != nil && fld.Kind() == field.KindChoice {
			_ = m.form.Cycle(r.name, delta)
		}
	default:
		return
	}
	m.rebuild()
}

// toggle handles space on checkbox rows.
func (m *Model) toggle() {
	r := m.rows[m.cursor]
	switch r.kind {
	case rowField:
		fld := m.fieldAt()
		if fld == nil || fld.Kind() != field.KindBool {
			return
		}
		_ = m.form.Toggle(r.name)
	case rowDepth:
		m.form.ToggleDepth(r.depth)
	case rowOutput:
		_ = m.form.ToggleOutput(r.output.Code)
	default:
		return
	}
	m.rebuild()
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	r := m.rows[m.cursor]
	switch r.kind {
	case rowField:
		fld := m.fieldAt()
		switch {
		case fld == nil:
		case fld.Kind() == field.KindBool:
			m.toggle()
		case fld.Kind() == field.KindChoice:
			m.cycle(1)
		default:
			m.editing = true
			m.input.SetValue(fld.Text())
			m.input.CursorEnd()
			return m, m.input.Focus()
		}
	case rowDepth, rowOutput:
		m.toggle()
	case rowWavemaker:
		m.cycle(1)
	case rowValidate:
		m.runValidate()
	case rowGenerate:
		return m, m.generate()
	}
	return m, nil
}

func (m *Model) runValidate() {
	r := validate.Run(m.form.State())
	m.report = r.String()
	logging.Debug("validated", zap.Int("warnings", r.Count()))
}

// generate builds the document now and writes it off the update loop.
func (m *Model) generate() tea.Cmd {
	s := m.form.State()
	doc := inputfile.Build(s)
	dir, overwrite := m.dir, s.Overwrite.Get()
	return func() tea.Msg {
		path, err := inputfile.Write(doc, dir, overwrite)
		return generatedMsg{path: path, err: err}
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("FUNWAVE-TVD Input Generator") + "\n")

	start, end := m.window()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i) + "\n")
	}

	b.WriteString("\n")
	if m.help != "" {
		b.WriteString(helpStyle.Render(m.help) + "\n")
	}
	if m.report != "" {
		b.WriteString(warningStyle.Render(strings.TrimSuffix(m.report, "\n")) + "\n")
	}
	if m.status != "" {
		style := statusStyle
		if m.failed {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(dimStyle.Render("↑/↓ move • enter edit • space toggle • ←/→ cycle • v validate • g generate • q quit"))
	return b.String()
}

// window returns the row range that fits the terminal with the cursor in
// view.
func (m Model) window() (int, int) {
	avail := m.height - footerLines
	if m.height == 0 || avail >= len(m.rows) {
		return 0, len(m.rows)
	}
	if avail < 1 {
		avail = 1
	}
	start := m.cursor - avail/2
	if start < 0 {
		start = 0
	}
	if start+avail > len(m.rows) {
		start = len(m.rows) - avail
	}
	return start, start + avail
}

func (m Model) renderRow(i int) string {
	r := m.rows[i]
	if r.kind == rowHeader {
		return headerStyle.Render(r.title)
	}

	var line string
	s := m.form.State()
	switch r.kind {
	case rowField:
		fld, _ := m.form.Field(r.name)
		line = labelStyle.Render(fld.Label()) + m.renderValue(i, fld)
	case rowDepth:
		line = radio(s.Depth.Is(r.depth)) + " " + r.depth.Label()
	case rowWavemaker:
		line = labelStyle.Render("Wave Maker Type") + "< " + s.Wavemaker.Kind().Label() + " >"
	case rowOutput:
		line = checkbox(s.Outputs.Has(r.output.Code)) + " " + r.output.Display()
	case rowValidate:
		line = actionStyle.Render("Validate")
	case rowGenerate:
		line = actionStyle.Render("Generate")
	}

	if i == m.cursor {
		return focusStyle.Render("> " + line)
	}
	return "  " + line
}

func (m Model) renderValue(i int, fld field.Field) string {
	if m.editing && i == m.cursor {
		return m.input.View()
	}
	switch v := fld.(type) {
	case *field.Bool:
		return checkbox(v.Get())
	case *field.Choice:
		return "< " + v.Get() + " >"
	default:
		return fld.Text()
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func radio(on bool) string {
	if on {
		return "(•)"
	}
	return "( )"
}
