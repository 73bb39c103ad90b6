package form

import (
	"fmt"

	"wavegen/internal/field"
)

// WavemakerKind is the wave generation method written as WAVEMAKER.
type WavemakerKind int

const (
	WKReg WavemakerKind = iota
	WKIrr
	WKNewIrr
	Jon2D
	Jon1D
	TMA1D
	WKTimeSeries
	WKData2D
	WKNewData2D
	LeftBCIrr
	LefSol
	IniSol
	IniRec
	IniGau
)

var wavemakerCodes = [...]struct {
	code  string
	label string
}{
	WKReg:        {"WK_REG", "Internal Wave Maker"},
	WKIrr:        {"WK_IRR", "TMA Spectrum Wave Maker"},
	WKNewIrr:     {"WK_NEW_IRR", "Spectrum w/ Wave Coherence"},
	Jon2D:        {"JON_2D", "JONSWAP Spectrum Wave Maker"},
	Jon1D:        {"JON_1D", "JONSWAP 1D Spectrum Wave Maker"},
	TMA1D:        {"TMA_1D", "TMA 1D Spectrum Wave Maker"},
	WKTimeSeries: {"WK_TIME_SERIES", "Wave Maker Time Series"},
	WKData2D:     {"WK_DATA2D", "2D Spectrum Data"},
	WKNewData2D:  {"WK_NEW_DATA_2D", "2D Wave Data"},
	LeftBCIrr:    {"LEFT_BC_IRR", "Left Boundary Wave Maker"},
	LefSol:       {"LEF_SOL", "Left Boundary Solitary"},
	IniSol:       {"INI_SOL", "Initial Solitary Wave"},
	IniRec:       {"INI_REC", "Rectangular Hump"},
	IniGau:       {"INI_GAU", "Initial Gaussian Hump"},
}

// WavemakerKinds lists all kinds in display order.
func WavemakerKinds() []WavemakerKind {
	out := make([]WavemakerKind, len(wavemakerCodes))
	for i := range wavemakerCodes {
		out[i] = WavemakerKind(i)
	}
	return out
}

// String returns the WAVEMAKER directive value.
func (k WavemakerKind) String() string {
	if k < 0 || int(k) >= len(wavemakerCodes) {
		return fmt.Sprintf("WavemakerKind(%d)", int(k))
	}
	return wavemakerCodes[k].code
}

// Label returns the list entry shown to the user, e.g.
// "Internal Wave Maker (WK_REG)".
func (k WavemakerKind) Label() string {
	if k < 0 || int(k) >= len(wavemakerCodes) {
		return k.String()
	}
	return fmt.Sprintf("%s (%s)", wavemakerCodes[k].label, wavemakerCodes[k].code)
}

// ParseWavemakerKind maps a WAVEMAKER value back to its kind.
func ParseWavemakerKind(s string) (WavemakerKind, error) {
	for i, c := range wavemakerCodes {
		if c.code == s {
			return WavemakerKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown wavemaker kind %q", s)
}

// Configured reports whether wavegen knows the parameters of k. Kinds that
// are not configured are still written, with a warning, so the user can
// complete the file by hand.
func (k WavemakerKind) Configured() bool {
	switch k {
	case WKReg, WKIrr:
		return true
	case WKNewIrr, Jon2D, Jon1D, TMA1D, WKTimeSeries, WKData2D, WKNewData2D,
		LeftBCIrr, LefSol, IniSol, IniRec, IniGau:
		return false
	default:
		panic(fmt.Sprintf("form: unhandled wavemaker kind %d", int(k)))
	}
}

// WavemakerParams returns the parameter keys kind k reveals, in serialization
// order. useDefaults hides the advanced spectral keys of WK_IRR.
func WavemakerParams(k WavemakerKind, useDefaults bool) []string {
	switch k {
	case WKReg:
		return []string{KeyDepWK, KeyXcWK, KeyYcWK, KeyYwidthWK, KeyTperiod, KeyAmpWK, KeyThetaWK, KeyTimeRamp}
	case WKIrr:
		keys := []string{
			KeyDepWK, KeyXcWK, KeyYcWK, KeyYwidthWK, KeyTimeRamp, KeyDeltaWK,
			KeyFreqPeak, KeyFreqMin, KeyFreqMax, KeyHmo,
		}
		if !useDefaults {
			keys = append(keys, KeyGammaTMA, KeyThetaPeak, KeyNfreq, KeyNtheta, KeyEqualEnergy)
		}
		return keys
	case WKNewIrr, Jon2D, Jon1D, TMA1D, WKTimeSeries, WKData2D, WKNewData2D,
		LeftBCIrr, LefSol, IniSol, IniRec, IniGau:
		return nil
	default:
		panic(fmt.Sprintf("form: unhandled wavemaker kind %d", int(k)))
	}
}

// WavemakerSelector pairs the master "Wave Maker" checkbox with the single
// selection from the kind list.
type WavemakerSelector struct {
	on          *field.Bool
	useDefaults *field.Bool
	kind        WavemakerKind
}

// Enabled reports whether the master checkbox is set.
func (w *WavemakerSelector) Enabled() bool { return w.on.Get() }

// Kind returns the selected kind. It is retained while disabled.
func (w *WavemakerSelector) Kind() WavemakerKind { return w.kind }

// Active reports whether the wavemaker is enabled with kind k selected.
func (w *WavemakerSelector) Active(k WavemakerKind) bool {
	return w.Enabled() && w.kind == k
}

// UseDefaults reports whether the WK_IRR advanced parameters are hidden.
func (w *WavemakerSelector) UseDefaults() bool { return w.useDefaults.Get() }

// Select makes k the selected kind.
func (w *WavemakerSelector) Select(k WavemakerKind) { w.kind = k }

// Next selects the following kind, wrapping around.
func (w *WavemakerSelector) Next() {
	w.kind = WavemakerKind((int(w.kind) + 1) % len(wavemakerCodes))
}

// Prev selects the preceding kind, wrapping around.
func (w *WavemakerSelector) Prev() {
	n := len(wavemakerCodes)
	w.kind = WavemakerKind((int(w.kind) + n - 1) % n)
}

// Params returns the keys revealed by the current selection, or nil when the
// wavemaker is disabled.
func (w *WavemakerSelector) Params() []string {
	if !w.Enabled() {
		return nil
	}
	return WavemakerParams(w.kind, w.UseDefaults())
}
