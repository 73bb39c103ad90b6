// Package preset loads and saves snapshots of form values so a run can be
// repeated without the interactive form.
//
// A preset is YAML (.yaml, .yml) or TOML (.toml). Only the values it names
// are applied; everything else keeps its current value.
package preset

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"wavegen/internal/field"
	"wavegen/internal/form"
)

// Preset is a partial or complete snapshot of a form.
type Preset struct {
	DepthMode string         `yaml:"depth_mode,omitempty" toml:"depth_mode,omitempty"`
	Wavemaker *Wavemaker     `yaml:"wavemaker,omitempty" toml:"wavemaker,omitempty"`
	Outputs   []string       `yaml:"outputs,omitempty" toml:"outputs,omitempty"`
	Fields    map[string]any `yaml:"fields,omitempty" toml:"fields,omitempty"`
}

// Wavemaker selects the wave maker. Enabled is the WAVEMAKER_ON switch.
type Wavemaker struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Kind    string `yaml:"kind,omitempty" toml:"kind,omitempty"`
}

// Load reads a preset, choosing the codec by file extension. Unknown keys
// are errors.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var p Preset
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &p)
		if err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", path, err)
		}
		if extra := md.Undecoded(); len(extra) > 0 {
			return nil, fmt.Errorf("unmarshal %s: unknown keys %v", path, extra)
		}
	default:
		return nil, fmt.Errorf("preset %s: unsupported extension %q (want .yaml, .yml or .toml)", path, ext)
	}
	return &p, nil
}

// Save writes p to path in the format its extension names.
func Save(p *Preset, path string) error {
	var data []byte
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = Marshal(p)
	case ".toml":
		data, err = MarshalTOML(p)
	default:
		return fmt.Errorf("preset %s: unsupported extension %q (want .yaml, .yml or .toml)", path, ext)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Marshal renders p as YAML.
func Marshal(p *Preset) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal preset: %w", err)
	}
	return data, nil
}

// MarshalTOML renders p as TOML.
func MarshalTOML(p *Preset) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("marshal preset: %w", err)
	}
	return buf.Bytes(), nil
}

// FromState snapshots every value of s.
func FromState(s *form.State) *Preset {
	p := &Preset{
		DepthMode: s.Depth.Active().String(),
		Wavemaker: &Wavemaker{Enabled: s.Wavemaker.Enabled(), Kind: s.Wavemaker.Kind().String()},
		Outputs:   s.Outputs.Selected(),
		Fields:    make(map[string]any, s.Registry.Len()),
	}
	for _, f := range s.Registry.All() {
		if f.Name() == form.KeyWavemakerOn {
			continue
		}
		switch v := f.(type) {
		case *field.Int:
			p.Fields[f.Name()] = v.Get()
		case *field.Real:
			p.Fields[f.Name()] = v.Get()
		case *field.Bool:
			p.Fields[f.Name()] = v.Get()
		case *field.Text:
			p.Fields[f.Name()] = v.Get()
		case *field.Choice:
			p.Fields[f.Name()] = v.Get()
		default:
			panic(fmt.Sprintf("preset: unhandled field type %T", f))
		}
	}
	return p
}

// Apply sets the values p names on f. Every value is checked first; on
// error f is unchanged.
func (p *Preset) Apply(f *form.Form) error {
	s := f.State()

	depth := s.Depth.Active()
	if p.DepthMode != "" {
		m, err := form.ParseDepthMode(p.DepthMode)
		if err != nil {
			return fmt.Errorf("preset: %w", err)
		}
		depth = m
	}

	kind := s.Wavemaker.Kind()
	if p.Wavemaker != nil && p.Wavemaker.Kind != "" {
		k, err := form.ParseWavemakerKind(p.Wavemaker.Kind)
		if err != nil {
			return fmt.Errorf("preset: %w", err)
		}
		kind = k
	}

	var scratch form.OutputSelection
	for _, code := range p.Outputs {
		if err := scratch.Set(code, true); err != nil {
			return fmt.Errorf("preset: %w", err)
		}
	}

	type edit struct {
		fld  field.Field
		text string
	}
	names := make([]string, 0, len(p.Fields))
	for name := range p.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	edits := make([]edit, 0, len(names))
	for _, name := range names {
		fld, err := f.Field(name)
		if err != nil {
			return fmt.Errorf("preset: %w", err)
		}
		text, err := toText(p.Fields[name])
		if err != nil {
			return fmt.Errorf("preset: field %s: %w", name, err)
		}
		if !fld.Valid(text) {
			return fmt.Errorf("preset: field %s: invalid %s value %q", name, fld.Kind(), text)
		}
		edits = append(edits, edit{fld: fld, text: text})
	}

	for _, e := range edits {
		e.fld.SetText(e.text)
	}
	s.Depth.Toggle(depth)
	s.Wavemaker.Select(kind)
	if p.Wavemaker != nil {
		s.WavemakerOn.Set(p.Wavemaker.Enabled)
	}
	if p.Outputs != nil {
		s.Outputs.Clear()
		for _, code := range p.Outputs {
			_ = s.Outputs.Set(code, true)
		}
	}
	f.Refresh()
	return nil
}

// toText converts a decoded scalar to the text a field accepts.
func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return field.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}
