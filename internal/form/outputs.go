package form

import "fmt"

// OutputVar is one entry of the output variable catalog.
type OutputVar struct {
	Code  string
	Label string
}

// Display returns the list entry, e.g. "HMAX (Max Surface Elevation)".
func (v OutputVar) Display() string {
	if v.Label == "" {
		return v.Code
	}
	return fmt.Sprintf("%s (%s)", v.Code, v.Label)
}

var outputCatalog = []OutputVar{
	{"U", ""},
	{"V", ""},
	{"ETA", "Surface Elevation"},
	{"MASK", ""},
	{"MASK9", ""},
	{"DEPTH_OUT", ""},
	{"SourceX", ""},
	{"SourceY", ""},
	{"P", ""},
	{"Q", ""},
	{"Fx", ""},
	{"Fy", ""},
	{"Gx", ""},
	{"Gy", ""},
	{"AGE", "Breaking Age"},
	{"HMAX", "Max Surface Elevation"},
	{"HMIN", "Min Surface Elevation"},
	{"UMAX", "Max U"},
	{"VORMAX", "Max Vorticity"},
	{"MFMAX", "Max Momentum Flux"},
	{"OUT_Time", "Tsunami Arrival Time"},
	{"WaveHeight", ""},
	{"OUT_METEO", "Pressure Field"},
	{"ROLLER", ""},
	{"UNDERTOW", ""},
	{"OUT_NU", "Breaking Location"},
}

// OutputCatalog returns the selectable output variables in display order.
func OutputCatalog() []OutputVar {
	return append([]OutputVar(nil), outputCatalog...)
}

// OutputSelection is the multi-select over the catalog.
type OutputSelection struct {
	selected map[string]bool
}

func knownOutput(code string) bool {
	for _, v := range outputCatalog {
		if v.Code == code {
			return true
		}
	}
	return false
}

// Set checks or unchecks code.
func (o *OutputSelection) Set(code string, on bool) error {
	if !knownOutput(code) {
		return fmt.Errorf("unknown output variable %q", code)
	}
	if o.selected == nil {
		o.selected = make(map[string]bool)
	}
	if on {
		o.selected[code] = true
	} else {
		delete(o.selected, code)
	}
	return nil
}

// Toggle flips code.
func (o *OutputSelection) Toggle(code string) error {
	return o.Set(code, !o.Has(code))
}

// Has reports whether code is checked.
func (o *OutputSelection) Has(code string) bool { return o.selected[code] }

// Clear unchecks everything.
func (o *OutputSelection) Clear() { o.selected = nil }

// Selected returns checked codes in catalog order.
func (o *OutputSelection) Selected() []string {
	var out []string
	for _, v := range outputCatalog {
		if o.selected[v.Code] {
			out = append(out, v.Code)
		}
	}
	return out
}
