package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"wavegen/internal/form"
	"wavegen/internal/inputfile"
	"wavegen/internal/validate"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return mm, cmd
}

// focus moves the cursor straight to the row with the given id.
func focus(t *testing.T, m Model, id string) Model {
	t.Helper()
	for i, r := range m.rows {
		if r.id() == id {
			m.cursor = i
			return m
		}
	}
	t.Fatalf("no row %q", id)
	return m
}

func hasRow(m Model, id string) bool {
	for _, r := range m.rows {
		if r.id() == id {
			return true
		}
	}
	return false
}

func TestNewStartsOnFirstField(t *testing.T) {
	m := New(form.New(), t.TempDir())
	if got := m.rows[m.cursor].id(); got != "field:"+form.KeyTitle {
		t.Errorf("cursor on %s", got)
	}
	if m.rows[0].kind != rowHeader {
		t.Error("first row is not a section header")
	}
}

func TestMoveSkipsHeaders(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m, _ = send(t, m, key("down"))
	if got := m.rows[m.cursor].id(); got != "field:"+form.KeyPX {
		t.Errorf("after down cursor on %s", got)
	}
	m, _ = send(t, m, key("k"))
	if got := m.rows[m.cursor].id(); got != "field:"+form.KeyTitle {
		t.Errorf("after k cursor on %s", got)
	}
	m, _ = send(t, m, key("up"))
	if got := m.rows[m.cursor].id(); got != "field:"+form.KeyTitle {
		t.Errorf("cursor left the first field: %s", got)
	}
}

func TestHelpDebounce(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m, cmd := send(t, m, key("down"))
	if cmd == nil {
		t.Fatal("move did not schedule help")
	}
	first := m.helpSeq
	m, _ = send(t, m, key("down"))
	if m.help != "" {
		t.Fatal("help shown before the delay")
	}

	m, _ = send(t, m, helpMsg{seq: first})
	if m.help != "" {
		t.Error("stale tick showed help")
	}
	m, _ = send(t, m, helpMsg{seq: m.helpSeq})
	fld, _ := m.form.Field(form.KeyPY)
	if m.help != fld.Help() {
		t.Errorf("help = %q, want %q", m.help, fld.Help())
	}

	m, _ = send(t, m, key("j"))
	if m.help != "" {
		t.Error("moving did not clear help")
	}
}

func TestToggleRevealsRows(t *testing.T) {
	m := New(form.New(), t.TempDir())
	if hasRow(m, "field:"+form.KeyFileNumberHot) {
		t.Fatal("hot start fields shown by default")
	}
	m = focus(t, m, "field:"+form.KeyHotStart)
	m, _ = send(t, m, key("enter"))
	if !m.form.State().HotStart.Get() {
		t.Fatal("enter did not toggle HOT_START")
	}
	if !hasRow(m, "field:"+form.KeyFileNumberHot) {
		t.Error("hot start fields not revealed")
	}
	if got := m.rows[m.cursor].id(); got != "field:"+form.KeyHotStart {
		t.Errorf("cursor moved to %s", got)
	}

	m, _ = send(t, m, key("space"))
	if hasRow(m, "field:"+form.KeyFileNumberHot) {
		t.Error("hot start fields still shown")
	}
}

func TestEditNumericField(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m = focus(t, m, "field:"+form.KeyMglob)
	m, _ = send(t, m, key("enter"))
	if !m.editing {
		t.Fatal("enter did not start editing")
	}
	m.input.SetValue("")
	m, _ = send(t, m, key("250"))
	m, _ = send(t, m, key("enter"))
	if m.editing {
		t.Fatal("still editing after enter")
	}
	if got := m.form.State().Mglob.Get(); got != 250 {
		t.Errorf("Mglob = %d, want 250", got)
	}

	m, _ = send(t, m, key("enter"))
	m.input.SetValue("-4")
	m, _ = send(t, m, key("enter"))
	s := m.form.State()
	if s.Mglob.Get() != 250 || s.Mglob.Text() != "250" {
		t.Errorf("rejected edit changed Mglob to %d (%q)", s.Mglob.Get(), s.Mglob.Text())
	}

	m, _ = send(t, m, key("enter"))
	m.input.SetValue("9")
	m, _ = send(t, m, key("esc"))
	if s.Mglob.Get() != 250 {
		t.Error("esc committed the edit")
	}
}

func TestQuitIgnoredWhileEditing(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m = focus(t, m, "field:"+form.KeyTitle)
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("q"))
	if m.quitting {
		t.Fatal("q quit while editing")
	}
	if !strings.HasSuffix(m.input.Value(), "q") {
		t.Errorf("input = %q", m.input.Value())
	}
}

func TestDepthRows(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m = focus(t, m, "depth:SLOPE")
	m, _ = send(t, m, key("space"))
	if !m.form.State().Depth.Is(form.DepthSlope) {
		t.Fatal("space did not select SLOPE")
	}
	if !hasRow(m, "field:"+form.KeySlope) || hasRow(m, "field:"+form.KeyDepthFile) {
		t.Error("rows do not follow depth mode")
	}
	m, _ = send(t, m, key("enter"))
	if !m.form.State().Depth.Is(form.DepthSlope) {
		t.Error("clicking the active mode changed it")
	}
}

func TestWavemakerRow(t *testing.T) {
	m := New(form.New(), t.TempDir())
	if hasRow(m, "wavemaker") {
		t.Fatal("kind row shown while disabled")
	}
	m = focus(t, m, "field:"+form.KeyWavemakerOn)
	m, _ = send(t, m, key("enter"))
	m = focus(t, m, "wavemaker")
	m, _ = send(t, m, key("right"))
	if got := m.form.State().Wavemaker.Kind(); got != form.WKIrr {
		t.Fatalf("kind = %s, want WK_IRR", got)
	}
	if !hasRow(m, "field:"+form.KeyHmo) || hasRow(m, "field:"+form.KeyTperiod) {
		t.Error("parameter rows do not follow kind")
	}
	m, _ = send(t, m, key("left"))
	if got := m.form.State().Wavemaker.Kind(); got != form.WKReg {
		t.Errorf("kind = %s, want WK_REG", got)
	}
}

func TestChoiceCycles(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m = focus(t, m, "field:"+form.KeyHighOrder)
	m, _ = send(t, m, key("right"))
	if got := m.form.State().HighOrder.Get(); got != "THIRD" {
		t.Errorf("HIGH_ORDER = %s", got)
	}
	m, _ = send(t, m, key("left"))
	m, _ = send(t, m, key("left"))
	if got := m.form.State().HighOrder.Get(); got != "SECOND" {
		t.Errorf("HIGH_ORDER = %s", got)
	}
}

func TestOutputRow(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m = focus(t, m, "output:ETA")
	m, _ = send(t, m, key("space"))
	if !m.form.State().Outputs.Has("ETA") {
		t.Error("space did not select ETA")
	}
}

func TestValidateKey(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m, _ = send(t, m, key("v"))
	if !strings.Contains(m.report, validate.MsgZeroDimensions) {
		t.Errorf("report = %q", m.report)
	}
	if !strings.Contains(m.View(), validate.MsgZeroDimensions) {
		t.Error("report not rendered")
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	m := New(form.New(), dir)
	m, cmd := send(t, m, key("g"))
	if cmd == nil {
		t.Fatal("g returned no command")
	}
	m, _ = send(t, m, cmd())
	want := filepath.Join(dir, inputfile.FileName)
	if m.status != "Wrote "+want || m.failed {
		t.Errorf("status = %q", m.status)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatal(err)
	}

	m = focus(t, m, "field:"+form.KeyOverwrite)
	m, _ = send(t, m, key("space"))
	m = focus(t, m, "generate")
	m, cmd = send(t, m, key("enter"))
	m, _ = send(t, m, cmd())
	if m.status != "Wrote "+filepath.Join(dir, "input(1).txt") {
		t.Errorf("status = %q", m.status)
	}
}

func TestGenerateFailureShownInStatus(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	m := New(form.New(), filepath.Join(blocker, "out"))
	m, cmd := send(t, m, key("g"))
	m, _ = send(t, m, cmd())
	if !m.failed || !strings.HasPrefix(m.status, "Generate failed: ") {
		t.Errorf("status = %q failed = %v", m.status, m.failed)
	}
}

func TestQuit(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m, cmd := send(t, m, key("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if m.View() != "" {
		t.Error("view not cleared on quit")
	}
}

func TestWindowKeepsCursorVisible(t *testing.T) {
	m := New(form.New(), t.TempDir())
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	m = focus(t, m, "generate")
	start, end := m.window()
	if end-start != 20-footerLines {
		t.Errorf("window size = %d", end-start)
	}
	if m.cursor < start || m.cursor >= end {
		t.Errorf("cursor %d outside window [%d, %d)", m.cursor, start, end)
	}
}
