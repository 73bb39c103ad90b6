// Package form holds the complete state of a FUNWAVE-TVD input form and the
// rules that decide which of its fields are shown.
//
// State is a single owned value. Visibility is a pure function of State;
// Form recomputes it after every mutation so front ends never wire per-field
// change handlers.
package form

import (
	"runtime"

	"wavegen/internal/field"
)

// Field names. Where a field maps to one directive the name is the directive
// key; the remaining names are form-only switches.
const (
	KeyTitle = "TITLE"

	KeyPX = "PX"
	KeyPY = "PY"

	KeyMglob = "Mglob"
	KeyNglob = "Nglob"
	KeyDX    = "DX"
	KeyDY    = "DY"

	KeyTotalTime  = "TOTAL_TIME"
	KeyPlotIntv   = "PLOT_INTV"
	KeyScreenIntv = "SCREEN_INTV"
	KeyPlotStart  = "PLOT_START"
	KeyFixedDT    = "FIXED_DT"
	KeyDTFixed    = "DT_fixed"

	KeyDepthFlat = "DEPTH_FLAT"
	KeySlope     = "SLP"
	KeyXslp      = "Xslp"
	KeyDepthFile = "DEPTH_FILE"

	KeyDispersion        = "DISPERSION"
	KeyGamma1            = "Gamma1"
	KeyGamma2            = "Gamma2"
	KeyGamma3            = "Gamma3"
	KeyBetaRef           = "Beta_ref"
	KeySWEEtaDep         = "SWE_ETA_DEP"
	KeyRollerEffect      = "ROLLER_EFFECT"
	KeyViscosityBreaking = "VISCOSITY_BREAKING"
	KeyCbrk1             = "Cbrk1"
	KeyCbrk2             = "Cbrk2"

	KeyCdFixed        = "Cd_fixed"
	KeyFrictionMatrix = "FRICTION_MATRIX"
	KeyFrictionFile   = "FRICTION_FILE"
	KeyShowBreaking   = "SHOW_BREAKING"

	KeyTimeScheme = "Time_Scheme"
	KeyHighOrder  = "HIGH_ORDER"
	KeyCFL        = "CFL"
	KeyFroudeCap  = "FroudeCap"
	KeyMinDepth   = "MinDepth"

	KeyHotStart      = "HOT_START"
	KeyFileNumberHot = "FileNumber_HOTSTART"
	KeyHotStartIntv  = "HOTSTART_INTV"
	KeyIniUVZ        = "INI_UVZ"
	KeyEtaFile       = "ETA_FILE"
	KeyUFile         = "U_FILE"
	KeyVFile         = "V_FILE"
	KeyIniMask       = "INI_MASK"
	KeyMaskFile      = "MASK_FILE"
	KeyWavemakerOn   = "WAVEMAKER_ON"
	KeyWavemakerCbrk = "WAVEMAKER_cbrk"
	KeyWKUseDefaults = "WK_USE_DEFAULTS"
	KeyPeriodic      = "PERIODIC"
	KeyResultFolder  = "RESULT_FOLDER"
	KeyNumStations   = "NumStations"
	KeyStationFile   = "STATION_FILE"
	KeyOutputRes     = "OUTPUT_RES"
	KeyOverwrite     = "OVERWRITE"

	KeyXcWK        = "Xc_WK"
	KeyYcWK        = "Yc_WK"
	KeyYwidthWK    = "Ywidth_WK"
	KeyTperiod     = "Tperiod"
	KeyAmpWK       = "AMP_WK"
	KeyDepWK       = "DEP_WK"
	KeyThetaWK     = "Theta_WK"
	KeyTimeRamp    = "Time_ramp"
	KeyDeltaWK     = "Delta_WK"
	KeyFreqPeak    = "FreqPeak"
	KeyFreqMin     = "FreqMin"
	KeyFreqMax     = "FreqMax"
	KeyHmo         = "Hmo"
	KeyGammaTMA    = "GammaTMA"
	KeyThetaPeak   = "ThetaPeak"
	KeyNfreq       = "Nfreq"
	KeyNtheta      = "Ntheta"
	KeyEqualEnergy = "EqualEnergy"
)

// Enum options.
var (
	TimeSchemes = []string{"Runge_Kutta", "Predictor_Corrector"}
	HighOrders  = []string{"FOURTH", "THIRD", "SECOND"}
)

// Control identifies a form row that is not backed by a single field.
type Control int

const (
	ControlNone Control = iota
	ControlDepthMode
	ControlWavemakerKind
	ControlOutputs
)

// Item is one row of a section: either a field or a control.
type Item struct {
	Field   string
	Control Control
}

// Section is a titled group of rows, in display order.
type Section struct {
	Title string
	Items []Item
}

// State is every value the form collects.
type State struct {
	Registry *field.Registry

	Depth     DepthSelector
	Wavemaker WavemakerSelector
	Outputs   OutputSelection

	Title *field.Text

	PX *field.Int
	PY *field.Int

	Mglob *field.Int
	Nglob *field.Int
	DX    *field.Real
	DY    *field.Real

	TotalTime  *field.Real
	PlotIntv   *field.Real
	ScreenIntv *field.Real
	PlotStart  *field.Real
	FixedDT    *field.Bool
	DTFixed    *field.Real

	DepthFlat *field.Real
	Slope     *field.Real
	Xslp      *field.Real
	DepthFile *field.Text

	Dispersion        *field.Bool
	Gamma1            *field.Real
	Gamma2            *field.Real
	Gamma3            *field.Real
	BetaRef           *field.Real
	SWEEtaDep         *field.Real
	RollerEffect      *field.Bool
	ViscosityBreaking *field.Bool
	Cbrk1             *field.Real
	Cbrk2             *field.Real

	CdFixed        *field.Real
	FrictionMatrix *field.Bool
	FrictionFile   *field.Text
	ShowBreaking   *field.Bool

	TimeScheme *field.Choice
	HighOrder  *field.Choice
	CFL        *field.Real
	FroudeCap  *field.Real
	MinDepth   *field.Real

	HotStart      *field.Bool
	FileNumberHot *field.Int
	HotStartIntv  *field.Real

	IniUVZ   *field.Bool
	EtaFile  *field.Text
	UFile    *field.Text
	VFile    *field.Text
	IniMask  *field.Bool
	MaskFile *field.Text

	WavemakerOn   *field.Bool
	WavemakerCbrk *field.Real
	XcWK          *field.Real
	YcWK          *field.Real
	YwidthWK      *field.Real
	Tperiod       *field.Real
	AmpWK         *field.Real
	DepWK         *field.Real
	ThetaWK       *field.Real
	TimeRamp      *field.Real
	DeltaWK       *field.Real
	FreqPeak      *field.Real
	FreqMin       *field.Real
	FreqMax       *field.Real
	Hmo           *field.Real
	WKUseDefaults *field.Bool
	GammaTMA      *field.Real
	ThetaPeak     *field.Real
	Nfreq         *field.Int
	Ntheta        *field.Int
	EqualEnergy   *field.Bool

	Periodic *field.Bool

	ResultFolder *field.Text
	NumStations  *field.Int
	StationFile  *field.Text
	OutputRes    *field.Int

	Overwrite *field.Bool

	layout []Section
}

// builder registers fields and records the section layout as it goes.
type builder struct {
	reg      *field.Registry
	sections []Section
}

func (b *builder) section(title string) {
	b.sections = append(b.sections, Section{Title: title})
}

func (b *builder) add(f field.Field) {
	field.Register(b.reg, f)
	b.item(Item{Field: f.Name()})
}

func (b *builder) control(c Control) { b.item(Item{Control: c}) }

func (b *builder) item(it Item) {
	s := &b.sections[len(b.sections)-1]
	s.Items = append(s.Items, it)
}

func intField(b *builder, name, label, help string, def int) *field.Int {
	f := field.NewInt(field.Meta{Name: name, Label: label, Help: help}, def)
	b.add(f)
	return f
}

func realField(b *builder, name, label, help string, def float64) *field.Real {
	f := field.NewReal(field.Meta{Name: name, Label: label, Help: help}, def)
	b.add(f)
	return f
}

func textField(b *builder, name, label, help, def string) *field.Text {
	f := field.NewText(field.Meta{Name: name, Label: label, Help: help}, def)
	b.add(f)
	return f
}

func boolField(b *builder, name, label, help string, def bool) *field.Bool {
	f := field.NewBool(field.Meta{Name: name, Label: label, Help: help}, def)
	b.add(f)
	return f
}

func choiceField(b *builder, name, label, help string, options []string, def string) *field.Choice {
	f := field.NewChoice(field.Meta{Name: name, Label: label, Help: help}, options, def)
	b.add(f)
	return f
}

// DefaultPX is half the logical CPUs, at least one.
func DefaultPX() int {
	if n := runtime.NumCPU() / 2; n > 0 {
		return n
	}
	return 1
}

// NewState returns a State with every field at its default: FLAT depth,
// wavemaker disabled with WK_REG selected, no output variables.
func NewState() *State {
	b := &builder{reg: field.NewRegistry()}
	s := &State{Registry: b.reg}

	b.section("Title")
	s.Title = textField(b, KeyTitle, "Log Title", "Title only used in the log file", "model1")

	b.section("Parallel")
	s.PX = intField(b, KeyPX, "PX", "Processor numbers in X.\nNOTE: PX*PY must match mpirun -np", DefaultPX())
	s.PY = intField(b, KeyPY, "PY", "Processor numbers in Y.\nNOTE: PX*PY must match mpirun -np", 1)

	b.section("Dimension")
	s.Mglob = intField(b, KeyMglob, "Mglob", "Global grid points in X", 0)
	s.Nglob = intField(b, KeyNglob, "Nglob", "Global grid points in Y", 0)
	s.DX = realField(b, KeyDX, "dx (m)", "Grid spacing in X", 1.0)
	s.DY = realField(b, KeyDY, "dy (m)", "Grid spacing in Y", 1.0)

	b.section("Time")
	s.TotalTime = realField(b, KeyTotalTime, "Total Time (s)", "Total computational time", 300.0)
	s.PlotIntv = realField(b, KeyPlotIntv, "Output Interval (s)", "Interval between output files", 1.0)
	s.ScreenIntv = realField(b, KeyScreenIntv, "Console Interval (s)", "Interval between console reports", 1.0)
	s.PlotStart = realField(b, KeyPlotStart, "Output Start Time (s)", "Time of the first output file", 0.0)
	s.FixedDT = boolField(b, KeyFixedDT, "Fixed dt", "Use a fixed time step instead of the CFL-limited one", false)
	s.DTFixed = realField(b, KeyDTFixed, "dt (s)", "Fixed time step", 1.0)

	b.section("Depth")
	b.control(ControlDepthMode)
	s.DepthFlat = realField(b, KeyDepthFlat, "Depth (m)", "Water depth of the flat bottom", 10.0)
	s.Slope = realField(b, KeySlope, "Slope", "Bottom slope", 0.05)
	s.Xslp = realField(b, KeyXslp, "X Pos (m)", "X coordinate where the slope starts", 400)
	s.DepthFile = textField(b, KeyDepthFile, "File name", "Bathymetry data file", "depth.txt")

	b.section("Physics")
	s.Dispersion = boolField(b, KeyDispersion, "Dispersion", "Include all dispersive terms", true)
	s.Gamma1 = realField(b, KeyGamma1, "Gamma1", "1.0 for fully nonlinear equations", 1.0)
	s.Gamma2 = realField(b, KeyGamma2, "Gamma2", "1.0 for fully nonlinear equations", 1.0)
	s.Gamma3 = realField(b, KeyGamma3, "Gamma3", "0.0 selects linear shallow water equations", 1.0)
	s.BetaRef = realField(b, KeyBetaRef, "Beta", "Reference level parameter", -0.531)
	s.SWEEtaDep = realField(b, KeySWEEtaDep, "Ratio for NSWE", "Ratio of height/depth switching to NSWE for breaking", 0.8)
	s.RollerEffect = boolField(b, KeyRollerEffect, "Roller Effect", "Include the surface roller", false)
	s.ViscosityBreaking = boolField(b, KeyViscosityBreaking, "Viscosity Breaking", "Use the eddy viscosity breaking scheme", false)
	s.Cbrk1 = realField(b, KeyCbrk1, "c1", "Breaking onset parameter", 0.45)
	s.Cbrk2 = realField(b, KeyCbrk2, "c2", "Breaking stop parameter", 0.35)

	b.section("Friction")
	s.CdFixed = realField(b, KeyCdFixed, "Bottom Friction Coef", "Fixed bottom friction coefficient", 0.0)
	s.FrictionMatrix = boolField(b, KeyFrictionMatrix, "Friction Matrix", "Read a spatially varying friction file", false)
	s.FrictionFile = textField(b, KeyFrictionFile, "Matrix File", "Friction coefficient file", "")
	s.ShowBreaking = boolField(b, KeyShowBreaking, "Calculate Breaking Index", "Write the breaking index", false)

	b.section("Numerics")
	s.TimeScheme = choiceField(b, KeyTimeScheme, "Time Scheme", "Runge_Kutta for all equations, Predictor_Corrector for NSWE", TimeSchemes, TimeSchemes[0])
	s.HighOrder = choiceField(b, KeyHighOrder, "Higher Order Scheme", "Order of the spatial reconstruction", HighOrders, HighOrders[0])
	s.CFL = realField(b, KeyCFL, "CFL", "Courant number", 0.5)
	s.FroudeCap = realField(b, KeyFroudeCap, "Froude Number Cap", "Upper limit of the Froude number", 3.0)
	s.MinDepth = realField(b, KeyMinDepth, "Wetting/Drying Min Depth", "Minimum depth for wetting and drying", 0.1)

	b.section("Hot Start")
	s.HotStart = boolField(b, KeyHotStart, "Hot Start", "Resume from a saved state", false)
	s.FileNumberHot = intField(b, KeyFileNumberHot, "Initial Enumeration", "Number of the saved files to start from", 0)
	s.HotStartIntv = realField(b, KeyHotStartIntv, "Hot Start Time (s)", "Interval between hot start files", 0.0)

	b.section("Initial Condition")
	s.IniUVZ = boolField(b, KeyIniUVZ, "Initial Condition", "Read initial u, v and eta from files", false)
	s.EtaFile = textField(b, KeyEtaFile, "Initial Eta File", "Initial surface elevation file", "")
	s.UFile = textField(b, KeyUFile, "Initial U File", "Initial u velocity file", "")
	s.VFile = textField(b, KeyVFile, "Initial V File", "Initial v velocity file", "")
	s.IniMask = boolField(b, KeyIniMask, "Initial Mask", "Read an initial wet/dry mask", false)
	s.MaskFile = textField(b, KeyMaskFile, "Mask File", "Initial mask file", "")

	b.section("Wave Maker")
	s.WavemakerOn = boolField(b, KeyWavemakerOn, "Wave Maker", "Enable a wave maker", false)
	s.WavemakerCbrk = realField(b, KeyWavemakerCbrk, "Breaking Parameter", "Breaking parameter near the wave maker", 0.45)
	b.control(ControlWavemakerKind)
	s.XcWK = realField(b, KeyXcWK, "X (m)", "X coordinate of the wave maker", 0)
	s.YcWK = realField(b, KeyYcWK, "Y (m)", "Y coordinate of the wave maker", 0)
	s.YwidthWK = realField(b, KeyYwidthWK, "Y Width (m)", "Width of the wave maker in Y", 0)
	s.Tperiod = realField(b, KeyTperiod, "Period (s)", "Wave period", 0)
	s.AmpWK = realField(b, KeyAmpWK, "Amplitude (m)", "Wave amplitude", 0)
	s.DepWK = realField(b, KeyDepWK, "Water Depth (m)", "Water depth at the wave maker", 0)
	s.ThetaWK = realField(b, KeyThetaWK, "Theta (deg)", "Wave angle", 0)
	s.TimeRamp = realField(b, KeyTimeRamp, "Time Ramp (s)", "Ramp-up time, as a factor of the period", 0)
	s.DeltaWK = realField(b, KeyDeltaWK, "Delta", "Width parameter of the source function", 0)
	s.FreqPeak = realField(b, KeyFreqPeak, "Peak Freq (1/s)", "Peak frequency", 0)
	s.FreqMin = realField(b, KeyFreqMin, "Min Freq (1/s)", "Lowest frequency", 0)
	s.FreqMax = realField(b, KeyFreqMax, "Max Freq (1/s)", "Highest frequency", 0)
	s.Hmo = realField(b, KeyHmo, "Hmo (m)", "Significant wave height", 0)
	s.WKUseDefaults = boolField(b, KeyWKUseDefaults, "Use Defaults", "Use default spectral parameters", true)
	s.GammaTMA = realField(b, KeyGammaTMA, "Gamma", "TMA peak enhancement factor", 3.3)
	s.ThetaPeak = realField(b, KeyThetaPeak, "Theta Peak", "Peak direction (deg)", 0.0)
	s.Nfreq = intField(b, KeyNfreq, "Num Freq", "Number of frequency bins", 45)
	s.Ntheta = intField(b, KeyNtheta, "Num Theta", "Number of direction bins", 24)
	s.EqualEnergy = boolField(b, KeyEqualEnergy, "Equal Energy", "Split the spectrum into equal energy bins", false)

	b.section("Periodic Boundary")
	s.Periodic = boolField(b, KeyPeriodic, "Periodic Boundary Condition", "South-North periodic boundary", false)

	b.section("Output")
	s.ResultFolder = textField(b, KeyResultFolder, "Output Folder", "Result folder; blank means ./", "output/")
	s.NumStations = intField(b, KeyNumStations, "Number of Stations", "Stations need i,j in STATION_FILE", 0)
	s.StationFile = textField(b, KeyStationFile, "Station File", "File listing station grid indices", "")
	s.OutputRes = intField(b, KeyOutputRes, "Output Resolution", "Write every n-th grid point", 1)
	b.control(ControlOutputs)

	b.section("Generate")
	s.Overwrite = boolField(b, KeyOverwrite, "Overwrite?", "Overwrites input.txt when checked", true)

	s.Wavemaker = WavemakerSelector{on: s.WavemakerOn, useDefaults: s.WKUseDefaults, kind: WKReg}
	s.Depth = DepthSelector{active: DepthFlat}
	s.layout = b.sections
	return s
}

// Layout returns the sections in display order.
func (s *State) Layout() []Section {
	out := make([]Section, len(s.layout))
	for i, sec := range s.layout {
		out[i] = Section{Title: sec.Title, Items: append([]Item(nil), sec.Items...)}
	}
	return out
}

// ResultFolderOrDefault returns RESULT_FOLDER, or "./" when it is blank.
func (s *State) ResultFolderOrDefault() string {
	if s.ResultFolder.Blank() {
		return "./"
	}
	return s.ResultFolder.Get()
}

// Reset restores every field and selector to its default.
func (s *State) Reset() {
	s.Registry.ResetAll()
	s.Depth = DepthSelector{active: DepthFlat}
	s.Wavemaker.Select(WKReg)
	s.Outputs.Clear()
}
