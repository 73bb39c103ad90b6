// Package validate runs the fixed sanity checklist over a form state.
//
// Warnings never block generation. Rules run in a fixed order because the
// report is shown in that order; new rules are appended.
package validate

import (
	"fmt"
	"math"
	"strings"

	"wavegen/internal/form"
)

// Warning messages.
const (
	MsgZeroDimensions   = "Global dimensions evaluate to 0"
	MsgWavemakerX       = "Out of Bounds x coordinate for wave maker"
	MsgWavemakerY       = "Out of Bounds y coordinate for wave maker"
	MsgWavemakerYWidth  = "Invalid wave maker y width"
	MsgWaveResolution   = "Wave maker produces waves outside of resolution (lambda > 2h)"
	MsgDepthFile        = "Depth data file not specified"
	MsgFrictionFile     = "Friction matrix file not specified"
	MsgEtaFile          = "Initial condition eta file not specified"
	MsgStationFile      = "Station file not specified"
	MsgZeroProcessors   = "Processor count evaluates to 0"
	msgUnconfiguredKind = "Wave maker %s has no configurable parameters; edit the generated file by hand"
)

// gravity is the acceleration used by the deep-water wavelength estimate.
const gravity = 9.8

// Report is the ordered list of warnings from one run.
type Report struct {
	Warnings []string
}

// Count returns the number of warnings.
func (r Report) Count() int { return len(r.Warnings) }

// Has reports whether msg is among the warnings.
func (r Report) Has(msg string) bool {
	for _, w := range r.Warnings {
		if w == msg {
			return true
		}
	}
	return false
}

// String renders the report as shown to the user: a "<n> warnings" summary
// line followed by one "- " line per warning.
func (r Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d warnings\n", r.Count())
	for _, w := range r.Warnings {
		b.WriteString("- " + w + "\n")
	}
	return b.String()
}

func (r *Report) add(msg string) { r.Warnings = append(r.Warnings, msg) }

// UnconfiguredKindMessage is the warning for a wavemaker kind wavegen has no
// parameters for.
func UnconfiguredKindMessage(k form.WavemakerKind) string {
	return fmt.Sprintf(msgUnconfiguredKind, k)
}

// Wavelength is the deep-water estimate 9.8·T²/(2π) for period T.
func Wavelength(period float64) float64 {
	return gravity * period * period / (2 * math.Pi)
}

// Run checks s and returns the warnings in display order.
func Run(s *form.State) Report {
	var r Report
	checkDimensions(s, &r)
	checkWavemaker(s, &r)
	checkFiles(s, &r)
	checkProcessors(s, &r)
	return r
}

func checkDimensions(s *form.State, r *Report) {
	if s.Mglob.Get() == 0 || s.Nglob.Get() == 0 || s.DX.Get() == 0 || s.DY.Get() == 0 {
		r.add(MsgZeroDimensions)
	}
}

func checkWavemaker(s *form.State, r *Report) {
	if !s.Wavemaker.Enabled() {
		return
	}
	k := s.Wavemaker.Kind()
	switch k {
	case form.WKReg:
		checkWavemakerBounds(s, r)
		if (s.Depth.Is(form.DepthFlat) || s.Depth.Is(form.DepthSlope)) &&
			Wavelength(s.Tperiod.Get()) > 2*s.DepthFlat.Get() {
			r.add(MsgWaveResolution)
		}
	case form.WKIrr:
		checkWavemakerBounds(s, r)
	case form.WKNewIrr, form.Jon2D, form.Jon1D, form.TMA1D, form.WKTimeSeries,
		form.WKData2D, form.WKNewData2D, form.LeftBCIrr, form.LefSol,
		form.IniSol, form.IniRec, form.IniGau:
		r.add(UnconfiguredKindMessage(k))
	default:
		panic(fmt.Sprintf("validate: unhandled wavemaker kind %d", int(k)))
	}
}

func checkWavemakerBounds(s *form.State, r *Report) {
	width := float64(s.Mglob.Get()) * s.DX.Get()
	height := float64(s.Nglob.Get()) * s.DY.Get()
	if s.XcWK.Get() > width {
		r.add(MsgWavemakerX)
	}
	if s.YcWK.Get() > height {
		r.add(MsgWavemakerY)
	}
	if s.YwidthWK.Get() > height {
		r.add(MsgWavemakerYWidth)
	}
}

func checkFiles(s *form.State, r *Report) {
	if s.Depth.Is(form.DepthData) && s.DepthFile.Blank() {
		r.add(MsgDepthFile)
	}
	if s.FrictionMatrix.Get() && s.FrictionFile.Blank() {
		r.add(MsgFrictionFile)
	}
	if s.IniUVZ.Get() && s.EtaFile.Blank() {
		r.add(MsgEtaFile)
	}
	if s.NumStations.Get() > 0 && s.StationFile.Blank() {
		r.add(MsgStationFile)
	}
}

func checkProcessors(s *form.State, r *Report) {
	if s.PX.Get()*s.PY.Get() == 0 {
		r.add(MsgZeroProcessors)
	}
}
