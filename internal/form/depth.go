package form

import "fmt"

// DepthMode selects how bathymetry is specified.
type DepthMode int

const (
	DepthFlat DepthMode = iota
	DepthSlope
	DepthData
)

// DepthModes lists every mode in display order.
func DepthModes() []DepthMode {
	return []DepthMode{DepthFlat, DepthSlope, DepthData}
}

// String returns the DEPTH_TYPE directive value.
func (m DepthMode) String() string {
	switch m {
	case DepthFlat:
		return "FLAT"
	case DepthSlope:
		return "SLOPE"
	case DepthData:
		return "DATA"
	default:
		return fmt.Sprintf("DepthMode(%d)", int(m))
	}
}

// Label is the human-readable name shown next to the mode's checkbox.
func (m DepthMode) Label() string {
	switch m {
	case DepthFlat:
		return "Flat"
	case DepthSlope:
		return "Slope"
	case DepthData:
		return "Data"
	default:
		return m.String()
	}
}

// ParseDepthMode maps a DEPTH_TYPE value back to its mode.
func ParseDepthMode(s string) (DepthMode, error) {
	for _, m := range DepthModes() {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown depth type %q (want FLAT, SLOPE or DATA)", s)
}

// DepthSelector is a set of three mutually exclusive checkboxes with exactly
// one member checked at all times.
type DepthSelector struct {
	active DepthMode
}

// Active returns the checked mode.
func (d *DepthSelector) Active() DepthMode { return d.active }

// Is reports whether m is the checked mode.
func (d *DepthSelector) Is(m DepthMode) bool { return d.active == m }

// Toggle handles a click on the checkbox for m. Clicking the checked mode
// cannot uncheck it, so that case is a no-op and returns false. Clicking any
// other mode checks it, unchecks the previous one, and returns true.
func (d *DepthSelector) Toggle(m DepthMode) bool {
	if m == d.active {
		return false
	}
	d.active = m
	return true
}
