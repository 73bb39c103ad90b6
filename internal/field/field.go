// Package field provides the typed, edit-guarded values that back every
// entry of the input form.
//
// Numeric fields never hold an unparsed value: SetText either commits a new
// value or reverts the display text to the last committed one. Rejected
// edits are not errors; callers that need to know (presets, the question
// wizard) ask Valid first.
package field

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the value type a field holds.
type Kind int

const (
	KindInt Kind = iota
	KindReal
	KindText
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "string"
	case KindBool:
		return "boolean"
	case KindChoice:
		return "enum"
	default:
		return "unknown"
	}
}

// Field is the common surface the form, presets and front ends use to edit a
// value without knowing its concrete type.
type Field interface {
	Name() string
	Label() string
	Help() string
	Kind() Kind

	// Text returns the display string.
	Text() string
	// SetText applies a user edit. Invalid input is rejected silently.
	SetText(raw string)
	// Valid reports whether SetText(raw) would commit a new value.
	Valid(raw string) bool
	// Reset restores the default value.
	Reset()
}

// Meta carries the descriptive part shared by every field.
type Meta struct {
	Name  string
	Label string
	Help  string
}

// ---------------------------------------------------------------------------
// Integer
// ---------------------------------------------------------------------------

// Int is a non-negative whole number. No sign character is accepted. A digit
// string too large for int is rejected like any other bad input, leaving the
// committed value unchanged.
type Int struct {
	meta  Meta
	def   int
	value int
	text  string
}

// NewInt returns an Int committed to def.
func NewInt(m Meta, def int) *Int {
	f := &Int{meta: m, def: def}
	f.SetValue(def)
	return f
}

func (f *Int) Name() string  { return f.meta.Name }
func (f *Int) Label() string { return f.meta.Label }
func (f *Int) Help() string  { return f.meta.Help }
func (f *Int) Kind() Kind    { return KindInt }
func (f *Int) Text() string  { return f.text }
func (f *Int) Get() int      { return f.value }
func (f *Int) Default() int  { return f.def }
func (f *Int) Reset()        { f.SetValue(f.def) }

// SetValue commits x and updates the display text.
func (f *Int) SetValue(x int) {
	f.value = x
	f.text = FormatInt(x)
}

func (f *Int) SetText(raw string) {
	t := strings.TrimSpace(raw)
	if t == "" {
		f.text = ""
		return
	}
	v, ok := parseInt(t)
	if !ok {
		f.text = FormatInt(f.value)
		return
	}
	f.value = v
	f.text = raw
}

func (f *Int) Valid(raw string) bool {
	_, ok := parseInt(strings.TrimSpace(raw))
	return ok
}

func parseInt(t string) (int, bool) {
	if t == "" || !allDigits(t) {
		return 0, false
	}
	v, err := strconv.Atoi(t)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatInt renders an integer directive value.
func FormatInt(x int) string { return strconv.Itoa(x) }

// ---------------------------------------------------------------------------
// Real
// ---------------------------------------------------------------------------

// Real is a signed decimal number: an optional leading '-', digits and at
// most one '.'.
type Real struct {
	meta  Meta
	def   float64
	value float64
	text  string
}

// NewReal returns a Real committed to def.
func NewReal(m Meta, def float64) *Real {
	f := &Real{meta: m, def: def}
	f.SetValue(def)
	return f
}

func (f *Real) Name() string     { return f.meta.Name }
func (f *Real) Label() string    { return f.meta.Label }
func (f *Real) Help() string     { return f.meta.Help }
func (f *Real) Kind() Kind       { return KindReal }
func (f *Real) Text() string     { return f.text }
func (f *Real) Get() float64     { return f.value }
func (f *Real) Default() float64 { return f.def }
func (f *Real) Reset()           { f.SetValue(f.def) }

// SetValue commits x and updates the display text.
func (f *Real) SetValue(x float64) {
	f.value = x
	f.text = FormatReal(x)
}

func (f *Real) SetText(raw string) {
	t := strings.TrimSpace(raw)
	if t == "" {
		f.text = ""
		return
	}
	v, ok := parseReal(t)
	if !ok {
		f.text = FormatReal(f.value)
		return
	}
	f.value = v
	f.text = raw
}

func (f *Real) Valid(raw string) bool {
	_, ok := parseReal(strings.TrimSpace(raw))
	return ok
}

func parseReal(t string) (float64, bool) {
	body := strings.TrimPrefix(t, "-")
	if strings.Count(body, ".") > 1 {
		return 0, false
	}
	digits := strings.Replace(body, ".", "", 1)
	if digits == "" || !allDigits(digits) {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatReal renders a real directive value in fixed-point notation.
func FormatReal(x float64) string { return strconv.FormatFloat(x, 'f', 6, 64) }

// ---------------------------------------------------------------------------
// String
// ---------------------------------------------------------------------------

// Text is a single-line string. Values holding a line break are rejected,
// since each directive in the input file must stay on one line.
type Text struct {
	meta  Meta
	def   string
	value string
}

// NewText returns a Text set to def.
func NewText(m Meta, def string) *Text {
	return &Text{meta: m, def: def, value: def}
}

func (f *Text) Name() string  { return f.meta.Name }
func (f *Text) Label() string { return f.meta.Label }
func (f *Text) Help() string  { return f.meta.Help }
func (f *Text) Kind() Kind    { return KindText }
func (f *Text) Text() string  { return f.value }
func (f *Text) Get() string   { return f.value }
func (f *Text) Reset()        { f.value = f.def }

// SetText commits raw unless it contains a line break.
func (f *Text) SetText(raw string) {
	if f.Valid(raw) {
		f.value = raw
	}
}

func (f *Text) Valid(raw string) bool { return !strings.ContainsAny(raw, "\r\n") }

// Blank reports whether the value is empty after trimming.
func (f *Text) Blank() bool { return strings.TrimSpace(f.value) == "" }

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// Bool is a checkbox.
type Bool struct {
	meta  Meta
	def   bool
	value bool
}

// NewBool returns a Bool set to def.
func NewBool(m Meta, def bool) *Bool {
	return &Bool{meta: m, def: def, value: def}
}

func (f *Bool) Name() string  { return f.meta.Name }
func (f *Bool) Label() string { return f.meta.Label }
func (f *Bool) Help() string  { return f.meta.Help }
func (f *Bool) Kind() Kind    { return KindBool }
func (f *Bool) Text() string  { return FormatBool(f.value) }
func (f *Bool) Get() bool     { return f.value }
func (f *Bool) Set(v bool)    { f.value = v }
func (f *Bool) Toggle()       { f.value = !f.value }
func (f *Bool) Reset()        { f.value = f.def }

func (f *Bool) Valid(raw string) bool {
	_, ok := ParseBool(raw)
	return ok
}

func (f *Bool) SetText(raw string) {
	if v, ok := ParseBool(raw); ok {
		f.value = v
	}
}

// ParseBool accepts T/F, true/false, yes/no, y/n and 1/0, case-insensitive.
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "t", "true", "y", "yes", "1":
		return true, true
	case "f", "false", "n", "no", "0":
		return false, true
	}
	return false, false
}

// FormatBool renders a boolean directive value.
func FormatBool(v bool) string {
	if v {
		return "T"
	}
	return "F"
}

// ---------------------------------------------------------------------------
// Enum
// ---------------------------------------------------------------------------

// Choice holds one of a fixed list of options.
type Choice struct {
	meta    Meta
	options []string
	def     int
	idx     int
}

// NewChoice returns a Choice with def selected. It panics if def is not one
// of options.
func NewChoice(m Meta, options []string, def string) *Choice {
	f := &Choice{meta: m, options: options}
	i := f.index(def)
	if i < 0 {
		panic(fmt.Sprintf("field %s: default %q not in options", m.Name, def))
	}
	f.def, f.idx = i, i
	return f
}

func (f *Choice) Name() string          { return f.meta.Name }
func (f *Choice) Label() string         { return f.meta.Label }
func (f *Choice) Help() string          { return f.meta.Help }
func (f *Choice) Kind() Kind            { return KindChoice }
func (f *Choice) Text() string          { return f.options[f.idx] }
func (f *Choice) Get() string           { return f.options[f.idx] }
func (f *Choice) Index() int            { return f.idx }
func (f *Choice) Options() []string     { return append([]string(nil), f.options...) }
func (f *Choice) Reset()                { f.idx = f.def }
func (f *Choice) Valid(raw string) bool { return f.index(strings.TrimSpace(raw)) >= 0 }

func (f *Choice) SetText(raw string) {
	if i := f.index(strings.TrimSpace(raw)); i >= 0 {
		f.idx = i
	}
}

// Next selects the following option, wrapping around.
func (f *Choice) Next() { f.idx = (f.idx + 1) % len(f.options) }

// Prev selects the preceding option, wrapping around.
func (f *Choice) Prev() { f.idx = (f.idx + len(f.options) - 1) % len(f.options) }

func (f *Choice) index(v string) int {
	for i, o := range f.options {
		if o == v {
			return i
		}
	}
	return -1
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
