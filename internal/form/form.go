package form

import (
	"fmt"

	"wavegen/internal/field"
)

// Form owns a State and keeps its Visibility current. Every mutating method
// ends with a single recompute pass over all rules.
//
// A Form is not safe for concurrent use; front ends drive it from one loop.
type Form struct {
	state *State
	vis   Visibility
}

// New returns a Form over a default State.
func New() *Form {
	return Wrap(NewState())
}

// Wrap returns a Form over s.
func Wrap(s *State) *Form {
	f := &Form{state: s}
	f.recompute()
	return f
}

// State returns the underlying state. Mutations made directly on it must be
// followed by Refresh.
func (f *Form) State() *State { return f.state }

// Refresh recomputes visibility after direct State mutation.
func (f *Form) Refresh() { f.recompute() }

func (f *Form) recompute() { f.vis = Visible(f.state) }

// Visible reports whether the named field is shown.
func (f *Form) Visible(name string) bool { return f.vis.Has(name) }

// Visibility returns the last computed visibility set.
func (f *Form) Visibility() Visibility { return f.vis }

// ControlVisible reports whether a control row is shown.
func (f *Form) ControlVisible(c Control) bool { return ControlVisible(f.state, c) }

// Field looks up a field by name.
func (f *Form) Field(name string) (field.Field, error) {
	fld, ok := f.state.Registry.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("form: unknown field %q", name)
	}
	return fld, nil
}

// VisibleFields returns the shown fields in registry order.
func (f *Form) VisibleFields() []field.Field {
	var out []field.Field
	for _, fld := range f.state.Registry.All() {
		if f.vis.Has(fld.Name()) {
			out = append(out, fld)
		}
	}
	return out
}

// SetText applies a user edit to the named field. Invalid values are
// rejected by the field itself; the only error is an unknown name.
func (f *Form) SetText(name, raw string) error {
	fld, err := f.Field(name)
	if err != nil {
		return err
	}
	fld.SetText(raw)
	f.recompute()
	return nil
}

// Toggle flips a boolean field.
func (f *Form) Toggle(name string) error {
	fld, err := f.Field(name)
	if err != nil {
		return err
	}
	b, ok := fld.(*field.Bool)
	if !ok {
		return fmt.Errorf("form: field %q is %s, not boolean", name, fld.Kind())
	}
	b.Toggle()
	f.recompute()
	return nil
}

// Cycle moves an enum field forward (delta > 0) or backward (delta < 0).
func (f *Form) Cycle(name string, delta int) error {
	fld, err := f.Field(name)
	if err != nil {
		return err
	}
	c, ok := fld.(*field.Choice)
	if !ok {
		return fmt.Errorf("form: field %q is %s, not enum", name, fld.Kind())
	}
	switch {
	case delta > 0:
		c.Next()
	case delta < 0:
		c.Prev()
	}
	f.recompute()
	return nil
}

// ToggleDepth handles a click on a depth mode checkbox. It returns false when
// m was already active, which leaves the state unchanged.
func (f *Form) ToggleDepth(m DepthMode) bool {
	changed := f.state.Depth.Toggle(m)
	f.recompute()
	return changed
}

// SelectWavemaker selects kind k.
func (f *Form) SelectWavemaker(k WavemakerKind) {
	f.state.Wavemaker.Select(k)
	f.recompute()
}

// CycleWavemaker moves the kind selection forward or backward.
func (f *Form) CycleWavemaker(delta int) {
	switch {
	case delta > 0:
		f.state.Wavemaker.Next()
	case delta < 0:
		f.state.Wavemaker.Prev()
	}
	f.recompute()
}

// ToggleOutput flips an output variable.
func (f *Form) ToggleOutput(code string) error {
	if err := f.state.Outputs.Toggle(code); err != nil {
		return err
	}
	f.recompute()
	return nil
}

// Reset restores all defaults.
func (f *Form) Reset() {
	f.state.Reset()
	f.recompute()
}
