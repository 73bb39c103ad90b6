// Package prompt fills a form by asking one question per visible field.
//
// Visibility is re-read before every question, so answering "Wave Maker"
// with yes brings the wavemaker kind and its parameters into the walk.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"wavegen/internal/field"
	"wavegen/internal/form"
	"wavegen/internal/logging"
)

// Run walks the form layout in order and asks for every field and control
// that is visible when it is reached.
func Run(ctx context.Context, d Driver, f *form.Form) error {
	for _, sec := range f.State().Layout() {
		if !sectionVisible(f, sec) {
			continue
		}
		if err := d.Info(ctx, "== "+sec.Title+" =="); err != nil {
			return err
		}
		for _, it := range sec.Items {
			var err error
			if it.Control != form.ControlNone {
				err = askControl(ctx, d, f, it.Control)
			} else {
				err = askField(ctx, d, f, it.Field)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func sectionVisible(f *form.Form, sec form.Section) bool {
	for _, it := range sec.Items {
		if it.Control != form.ControlNone {
			if f.ControlVisible(it.Control) {
				return true
			}
			continue
		}
		if f.Visible(it.Field) {
			return true
		}
	}
	return false
}

func askField(ctx context.Context, d Driver, f *form.Form, name string) error {
	if !f.Visible(name) {
		return nil
	}
	fld, err := f.Field(name)
	if err != nil {
		return err
	}

	switch v := fld.(type) {
	case *field.Bool:
		ans, err := d.Confirm(ctx, ConfirmConfig{Message: v.Label(), Default: v.Get(), Help: v.Help()})
		if err != nil {
			return err
		}
		v.Set(ans)
	case *field.Choice:
		opts := v.Options()
		idx, err := d.Select(ctx, SelectConfig{Message: v.Label(), Options: opts, DefaultIndex: v.Index(), Help: v.Help()})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(opts) {
			return fmt.Errorf("prompt: %s: answer index %d out of range", name, idx)
		}
		v.SetText(opts[idx])
	case *field.Text:
		// survey hands back the default for an empty answer, so clearing
		// a value needs its own answer.
		ans, err := d.Input(ctx, InputConfig{
			Message:   v.Label(),
			Default:   v.Text(),
			Help:      blankHelp(v.Help()),
			Validator: validator(v),
		})
		if err != nil {
			return err
		}
		if strings.TrimSpace(ans) == BlankAnswer {
			ans = ""
		}
		v.SetText(ans)
	default:
		ans, err := d.Input(ctx, InputConfig{
			Message:   fld.Label(),
			Default:   fld.Text(),
			Help:      fld.Help(),
			Validator: validator(fld),
		})
		if err != nil {
			return err
		}
		fld.SetText(ans)
	}
	logging.Debug("answered", zap.String("field", name), zap.String("value", fld.Text()))
	f.Refresh()
	return nil
}

// BlankAnswer empties a text field. An empty answer keeps the current value.
const BlankAnswer = "-"

func blankHelp(help string) string {
	note := fmt.Sprintf("Answer %q to leave this empty.", BlankAnswer)
	if help == "" {
		return note
	}
	return help + " " + note
}

// validator rejects input the field would discard.
func validator(fld field.Field) func(string) error {
	return func(s string) error {
		if !fld.Valid(s) {
			return fmt.Errorf("%q is not a valid %s", s, fld.Kind())
		}
		return nil
	}
}

func askControl(ctx context.Context, d Driver, f *form.Form, c form.Control) error {
	if !f.ControlVisible(c) {
		return nil
	}
	s := f.State()
	switch c {
	case form.ControlDepthMode:
		modes := form.DepthModes()
		opts := make([]string, len(modes))
		def := 0
		for i, m := range modes {
			opts[i] = m.Label()
			if s.Depth.Is(m) {
				def = i
			}
		}
		idx, err := d.Select(ctx, SelectConfig{Message: "Depth Type", Options: opts, DefaultIndex: def})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(modes) {
			return fmt.Errorf("prompt: depth type: answer index %d out of range", idx)
		}
		f.ToggleDepth(modes[idx])
	case form.ControlWavemakerKind:
		kinds := form.WavemakerKinds()
		opts := make([]string, len(kinds))
		def := 0
		for i, k := range kinds {
			opts[i] = k.Label()
			if s.Wavemaker.Kind() == k {
				def = i
			}
		}
		idx, err := d.Select(ctx, SelectConfig{Message: "Wave Maker Type", Options: opts, DefaultIndex: def, PageSize: len(opts)})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(kinds) {
			return fmt.Errorf("prompt: wave maker type: answer index %d out of range", idx)
		}
		f.SelectWavemaker(kinds[idx])
	case form.ControlOutputs:
		catalog := form.OutputCatalog()
		opts := make([]string, len(catalog))
		var defs []int
		for i, v := range catalog {
			opts[i] = v.Display()
			if s.Outputs.Has(v.Code) {
				defs = append(defs, i)
			}
		}
		idxs, err := d.MultiSelect(ctx, SelectConfig{Message: "Output Variables", Options: opts, Defaults: defs, PageSize: 12})
		if err != nil {
			return err
		}
		s.Outputs.Clear()
		for _, i := range idxs {
			if i < 0 || i >= len(catalog) {
				return fmt.Errorf("prompt: output variables: answer index %d out of range", i)
			}
			if err := f.ToggleOutput(catalog[i].Code); err != nil {
				return err
			}
		}
		f.Refresh()
	default:
		return fmt.Errorf("prompt: unhandled control %d", int(c))
	}
	return nil
}
