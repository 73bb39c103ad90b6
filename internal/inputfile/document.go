// Package inputfile turns a form state into a FUNWAVE-TVD input.txt.
//
// Build is pure: it reads the state and the visibility set and returns a
// Document. Write is the only function that touches the filesystem.
package inputfile

import (
	"fmt"
	"strings"

	"wavegen/internal/field"
	"wavegen/internal/form"
)

// FileName is the name FUNWAVE-TVD reads its parameters from.
const FileName = "input.txt"

// Line is a single "KEY = VALUE" directive, or a "!" comment when Key is
// empty.
type Line struct {
	Key     string
	Value   string
	Comment string
}

func (l Line) String() string {
	if l.Key == "" {
		return "! " + l.Comment
	}
	return l.Key + " = " + l.Value
}

// Section is a titled run of lines. The title is written as a banner
// comment.
type Section struct {
	Title string
	Lines []Line
}

// Document is a complete input file.
type Document struct {
	Header   []string
	Sections []Section
}

// Bytes renders the document. Every line ends with a newline and sections
// are separated by one blank line.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for _, h := range d.Header {
		b.WriteString("! " + h + "\n")
	}
	for i, sec := range d.Sections {
		if i > 0 || len(d.Header) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "! %s %s\n", strings.Repeat("-", 16), sec.Title)
		for _, l := range sec.Lines {
			b.WriteString(l.String() + "\n")
		}
	}
	return []byte(b.String())
}

// Lookup returns the value of the first directive named key.
func (d *Document) Lookup(key string) (string, bool) {
	for _, sec := range d.Sections {
		for _, l := range sec.Lines {
			if l.Key == key {
				return l.Value, true
			}
		}
	}
	return "", false
}

// Keys returns every directive key in file order.
func (d *Document) Keys() []string {
	var out []string
	for _, sec := range d.Sections {
		for _, l := range sec.Lines {
			if l.Key != "" {
				out = append(out, l.Key)
			}
		}
	}
	return out
}

// section accumulates the lines of one Section. Directives are resolved
// against the state's registry so every value is formatted by its field
// kind.
type section struct {
	s   *form.State
	vis form.Visibility
	out Section
}

func (w *section) comment(c string) { w.out.Lines = append(w.out.Lines, Line{Comment: c}) }

func (w *section) set(key, value string) {
	w.out.Lines = append(w.out.Lines, Line{Key: key, Value: value})
}

// field writes the committed value of the named field.
func (w *section) field(name string) {
	f, ok := w.s.Registry.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("inputfile: no field %q", name))
	}
	w.set(name, Value(f))
}

// shown writes the named field only when it is visible.
func (w *section) shown(name string) {
	if w.vis.Has(name) {
		w.field(name)
	}
}

// Value formats the committed value of f the way FUNWAVE-TVD reads it:
// integers plain, reals fixed-point with six decimals, booleans T or F.
func Value(f field.Field) string {
	switch v := f.(type) {
	case *field.Int:
		return field.FormatInt(v.Get())
	case *field.Real:
		return field.FormatReal(v.Get())
	case *field.Bool:
		return field.FormatBool(v.Get())
	case *field.Text:
		return v.Get()
	case *field.Choice:
		return v.Get()
	default:
		panic(fmt.Sprintf("inputfile: unhandled field type %T", f))
	}
}

// Build assembles the document for s.
func Build(s *form.State) *Document {
	vis := form.Visible(s)
	doc := &Document{
		Header: []string{
			"INPUT FILE FOR FUNWAVE_TVD",
			"NOTE: all input parameters are case sensitive",
		},
	}
	add := func(title string, fill func(w *section)) {
		w := &section{s: s, vis: vis, out: Section{Title: title}}
		fill(w)
		if len(w.out.Lines) > 0 {
			doc.Sections = append(doc.Sections, w.out)
		}
	}

	add("TITLE", func(w *section) {
		w.comment("title only for log file")
		w.field(form.KeyTitle)
	})
	add("PARALLEL INFO", func(w *section) {
		w.comment("PX,PY - processor numbers in X and Y")
		w.comment("NOTE: make sure consistency with mpirun -np n (px*py)")
		w.field(form.KeyPX)
		w.field(form.KeyPY)
	})
	add("DEPTH", func(w *section) {
		w.comment("DEPTH_TYPE=DATA: from depth file")
		w.comment("DEPTH_TYPE=FLAT: idealized flat, need DEPTH_FLAT")
		w.comment("DEPTH_TYPE=SLOPE: idealized slope, need SLP, Xslp and DEPTH_FLAT")
		w.set("DEPTH_TYPE", s.Depth.Active().String())
		w.shown(form.KeyDepthFlat)
		w.shown(form.KeySlope)
		w.shown(form.KeyXslp)
		w.shown(form.KeyDepthFile)
	})
	add("PRINT", func(w *section) {
		w.comment("result folder")
		w.set(form.KeyResultFolder, s.ResultFolderOrDefault())
	})
	add("DIMENSION", func(w *section) {
		w.comment("global grid dimension")
		w.field(form.KeyMglob)
		w.field(form.KeyNglob)
		w.field(form.KeyDX)
		w.field(form.KeyDY)
	})
	add("TIME", func(w *section) {
		w.comment("total computational time / plot time / screen interval, all in seconds")
		w.field(form.KeyTotalTime)
		w.field(form.KeyPlotIntv)
		w.field(form.KeyScreenIntv)
		w.field(form.KeyPlotStart)
		if s.FixedDT.Get() {
			w.field(form.KeyFixedDT)
			w.shown(form.KeyDTFixed)
		}
	})
	add("HOT START", func(w *section) {
		if !s.HotStart.Get() {
			return
		}
		w.field(form.KeyHotStart)
		w.shown(form.KeyFileNumberHot)
		w.shown(form.KeyHotStartIntv)
	})
	add("INITIAL CONDITION", func(w *section) {
		if !s.IniUVZ.Get() {
			return
		}
		w.field(form.KeyIniUVZ)
		w.shown(form.KeyEtaFile)
		if !s.UFile.Blank() {
			w.shown(form.KeyUFile)
		}
		if !s.VFile.Blank() {
			w.shown(form.KeyVFile)
		}
		w.shown(form.KeyMaskFile)
	})
	add("PHYSICS", func(w *section) {
		w.comment("DISPERSION: all dispersive terms")
		w.comment("Gamma1=1.0, Gamma2=1.0: fully nonlinear equations")
		w.field(form.KeyDispersion)
		w.field(form.KeyGamma1)
		w.field(form.KeyGamma2)
		w.field(form.KeyGamma3)
		w.field(form.KeyBetaRef)
		w.field(form.KeyViscosityBreaking)
		w.shown(form.KeyCbrk1)
		w.shown(form.KeyCbrk2)
		w.field(form.KeySWEEtaDep)
		w.field(form.KeyRollerEffect)
	})
	add("FRICTION", func(w *section) {
		w.field(form.KeyCdFixed)
		w.field(form.KeyFrictionMatrix)
		w.shown(form.KeyFrictionFile)
		w.field(form.KeyShowBreaking)
		w.field(form.KeyWavemakerCbrk)
	})
	add("NUMERICS", func(w *section) {
		w.comment("time scheme: Runge_Kutta for all types of equations")
		w.comment("             Predictor_Corrector for NSWE")
		w.comment("cfl condition: CFL")
		w.comment("froude number cap: FroudeCap")
		w.field(form.KeyTimeScheme)
		w.field(form.KeyHighOrder)
		w.field(form.KeyCFL)
		w.field(form.KeyFroudeCap)
		w.field(form.KeyMinDepth)
	})
	add("WAVEMAKER", func(w *section) {
		if !s.Wavemaker.Enabled() {
			return
		}
		k := s.Wavemaker.Kind()
		w.set("WAVEMAKER", k.String())
		if !k.Configured() {
			w.comment(fmt.Sprintf("WARNING: parameters for %s are not generated; add them by hand", k))
			return
		}
		for _, key := range s.Wavemaker.Params() {
			w.shown(key)
		}
	})
	add("PERIODIC BOUNDARY CONDITION", func(w *section) {
		w.comment("South-North periodic boundary condition")
		w.field(form.KeyPeriodic)
	})
	add("OUTPUT", func(w *section) {
		w.comment("stations: if NumStations > 0, need input i,j in STATION_FILE")
		w.field(form.KeyNumStations)
		w.shown(form.KeyStationFile)
		w.field(form.KeyOutputRes)
	})
	add("OUTPUT VARIABLES", func(w *section) {
		for _, code := range s.Outputs.Selected() {
			w.set(code, "T")
		}
	})
	return doc
}
