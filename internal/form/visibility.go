package form

import "sort"

// Visibility is the set of field names currently shown.
type Visibility map[string]bool

// Has reports whether name is shown.
func (v Visibility) Has(name string) bool { return v[name] }

// Names returns the shown names, sorted.
func (v Visibility) Names() []string {
	out := make([]string, 0, len(v))
	for n, ok := range v {
		if ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// rule decides whether a conditional field is shown. Fields without a rule
// are always shown.
type rule func(s *State) bool

var rules = map[string]rule{
	KeyDTFixed: func(s *State) bool { return s.FixedDT.Get() },

	KeyDepthFlat: func(s *State) bool { return s.Depth.Is(DepthFlat) || s.Depth.Is(DepthSlope) },
	KeySlope:     func(s *State) bool { return s.Depth.Is(DepthSlope) },
	KeyXslp:      func(s *State) bool { return s.Depth.Is(DepthSlope) },
	KeyDepthFile: func(s *State) bool { return s.Depth.Is(DepthData) },

	KeyCbrk1:        func(s *State) bool { return s.ViscosityBreaking.Get() },
	KeyCbrk2:        func(s *State) bool { return s.ViscosityBreaking.Get() },
	KeyFrictionFile: func(s *State) bool { return s.FrictionMatrix.Get() },

	KeyFileNumberHot: func(s *State) bool { return s.HotStart.Get() },
	KeyHotStartIntv:  func(s *State) bool { return s.HotStart.Get() },

	KeyEtaFile:  func(s *State) bool { return s.IniUVZ.Get() },
	KeyUFile:    func(s *State) bool { return s.IniUVZ.Get() },
	KeyVFile:    func(s *State) bool { return s.IniUVZ.Get() },
	KeyIniMask:  func(s *State) bool { return s.IniUVZ.Get() },
	KeyMaskFile: func(s *State) bool { return s.IniUVZ.Get() && s.IniMask.Get() },

	KeyWavemakerCbrk: func(s *State) bool { return s.Wavemaker.Enabled() },
	KeyWKUseDefaults: func(s *State) bool { return s.Wavemaker.Active(WKIrr) },

	KeyStationFile: func(s *State) bool { return s.NumStations.Get() > 0 },
}

func init() {
	seen := make(map[string]bool)
	for _, k := range WavemakerKinds() {
		for _, useDefaults := range []bool{true, false} {
			for _, key := range WavemakerParams(k, useDefaults) {
				seen[key] = true
			}
		}
	}
	for key := range seen {
		key := key // per-iteration copy; go.mod targets go1.21 loop semantics
		rules[key] = func(s *State) bool {
			for _, p := range s.Wavemaker.Params() {
				if p == key {
					return true
				}
			}
			return false
		}
	}
}

// Visible computes which fields are shown for s.
func Visible(s *State) Visibility {
	v := make(Visibility, s.Registry.Len())
	for _, f := range s.Registry.All() {
		r, ok := rules[f.Name()]
		v[f.Name()] = !ok || r(s)
	}
	return v
}

// ControlVisible reports whether a control row is shown for s.
func ControlVisible(s *State, c Control) bool {
	switch c {
	case ControlWavemakerKind:
		return s.Wavemaker.Enabled()
	case ControlDepthMode, ControlOutputs:
		return true
	default:
		return false
	}
}
