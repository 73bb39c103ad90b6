package preset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"wavegen/internal/form"
	"wavegen/internal/inputfile"
	"wavegen/internal/preset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const channelYAML = `depth_mode: SLOPE
wavemaker:
  enabled: true
  kind: WK_REG
outputs: [HMAX, ETA]
fields:
  TITLE: channel
  Mglob: 1024
  Nglob: 3
  DX: 0.5
  Tperiod: 2
  Xc_WK: 100
  DISPERSION: false
  Time_Scheme: Predictor_Corrector
`

func TestLoadYAMLAndApply(t *testing.T) {
	p, err := preset.Load(writeFile(t, "channel.yaml", channelYAML))
	if err != nil {
		t.Fatal(err)
	}
	f := form.New()
	if err := p.Apply(f); err != nil {
		t.Fatal(err)
	}
	s := f.State()
	if !s.Depth.Is(form.DepthSlope) {
		t.Errorf("depth = %s, want SLOPE", s.Depth.Active())
	}
	if !s.Wavemaker.Enabled() || s.Wavemaker.Kind() != form.WKReg {
		t.Errorf("wavemaker = %v %s", s.Wavemaker.Enabled(), s.Wavemaker.Kind())
	}
	if s.Title.Get() != "channel" || s.Mglob.Get() != 1024 || s.DX.Get() != 0.5 {
		t.Errorf("fields not applied: %q %d %v", s.Title.Get(), s.Mglob.Get(), s.DX.Get())
	}
	if s.Dispersion.Get() {
		t.Error("DISPERSION still on")
	}
	if s.TimeScheme.Get() != "Predictor_Corrector" {
		t.Errorf("Time_Scheme = %s", s.TimeScheme.Get())
	}
	if diff := cmp.Diff([]string{"ETA", "HMAX"}, s.Outputs.Selected()); diff != "" {
		t.Errorf("outputs (-want +got):\n%s", diff)
	}
	if !f.Visible(form.KeySlope) || !f.Visible(form.KeyTperiod) {
		t.Error("visibility not refreshed after apply")
	}
}

func TestLoadTOML(t *testing.T) {
	const doc = `depth_mode = "DATA"
outputs = ["U", "V"]

[wavemaker]
enabled = true
kind = "WK_IRR"

[fields]
DEPTH_FILE = "bathy.dep"
Mglob = 200
Hmo = 1.5
WK_USE_DEFAULTS = false
`
	p, err := preset.Load(writeFile(t, "run.toml", doc))
	if err != nil {
		t.Fatal(err)
	}
	f := form.New()
	if err := p.Apply(f); err != nil {
		t.Fatal(err)
	}
	s := f.State()
	if !s.Depth.Is(form.DepthData) || s.DepthFile.Get() != "bathy.dep" {
		t.Errorf("depth = %s %q", s.Depth.Active(), s.DepthFile.Get())
	}
	if s.Mglob.Get() != 200 || s.Hmo.Get() != 1.5 {
		t.Errorf("Mglob = %d, Hmo = %v", s.Mglob.Get(), s.Hmo.Get())
	}
	if !f.Visible(form.KeyGammaTMA) {
		t.Error("advanced spectral fields hidden with defaults off")
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
	}{
		{"extension", "run.json", "{}"},
		{"unknown yaml key", "run.yaml", "depth: FLAT\n"},
		{"unknown toml key", "run.toml", "depth = \"FLAT\"\n"},
		{"bad yaml", "run.yaml", "fields: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := preset.Load(writeFile(t, tc.file, tc.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if _, err := preset.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestApplyRejectsWithoutMutating(t *testing.T) {
	cases := []struct {
		name string
		p    preset.Preset
		want string
	}{
		{"negative int", preset.Preset{Fields: map[string]any{"Mglob": 10, "Nglob": -3}}, "Nglob"},
		{"bad real", preset.Preset{Fields: map[string]any{"DX": "1.2.3"}}, "DX"},
		{"unknown field", preset.Preset{Fields: map[string]any{"NOPE": 1}}, "NOPE"},
		{"bad enum", preset.Preset{Fields: map[string]any{"HIGH_ORDER": "FIFTH"}}, "HIGH_ORDER"},
		{"bad depth", preset.Preset{DepthMode: "STEEP"}, "STEEP"},
		{"bad kind", preset.Preset{Wavemaker: &preset.Wavemaker{Kind: "WK_BIG"}}, "WK_BIG"},
		{"bad output", preset.Preset{Outputs: []string{"ETA", "XYZ"}}, "XYZ"},
		{"multi-line text", preset.Preset{DepthMode: "DATA", Fields: map[string]any{"DEPTH_FILE": "bathy.txt\nDEPTH_TYPE = SLOPE"}}, "DEPTH_FILE"},
		{"carriage return", preset.Preset{Fields: map[string]any{"TITLE": "run\rPX = 999"}}, "TITLE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := form.New()
			before := string(inputfile.Build(f.State()).Bytes())
			err := tc.p.Apply(f)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not name %q", err, tc.want)
			}
			if after := string(inputfile.Build(f.State()).Bytes()); after != before {
				t.Error("state changed by a rejected preset")
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	f := form.New()
	s := f.State()
	s.Mglob.SetValue(640)
	s.Nglob.SetValue(2)
	s.BetaRef.SetValue(-0.4)
	s.HotStart.Set(true)
	s.Depth.Toggle(form.DepthSlope)
	s.WavemakerOn.Set(true)
	s.Wavemaker.Select(form.WKIrr)
	_ = s.Outputs.Set("MASK", true)
	f.Refresh()
	want := string(inputfile.Build(s).Bytes())

	for _, name := range []string{"snap.yaml", "snap.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := preset.Save(preset.FromState(s), path); err != nil {
				t.Fatal(err)
			}
			p, err := preset.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			g := form.New()
			if err := p.Apply(g); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, string(inputfile.Build(g.State()).Bytes())); diff != "" {
				t.Errorf("round trip (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadYAMLMultiLineTextRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inject.yaml")
	data := "depth_mode: DATA\nfields:\n  DEPTH_FILE: \"bathy.txt\\nDEPTH_TYPE = SLOPE\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := preset.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Apply(form.New()); err == nil || !strings.Contains(err.Error(), "DEPTH_FILE") {
		t.Fatalf("err = %v, want one naming DEPTH_FILE", err)
	}
}
