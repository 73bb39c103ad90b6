package field_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"wavegen/internal/field"
)

func TestIntSetText(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantVal  int
		wantText string
	}{
		{"digits commit", "42", 42, "42"},
		{"surrounding space", " 17 ", 17, " 17 "},
		{"leading zeros", "007", 7, "007"},
		{"empty keeps value", "", 3, ""},
		{"blank keeps value", "   ", 3, ""},
		{"negative rejected", "-4", 3, "3"},
		{"plus rejected", "+4", 3, "3"},
		{"decimal rejected", "4.0", 3, "3"},
		{"letters rejected", "4a", 3, "3"},
		{"overflow rejected", "99999999999999999999999", 3, "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := field.NewInt(field.Meta{Name: "PX"}, 3)
			f.SetText(tt.raw)
			if f.Get() != tt.wantVal {
				t.Errorf("Get() = %d, want %d", f.Get(), tt.wantVal)
			}
			if f.Text() != tt.wantText {
				t.Errorf("Text() = %q, want %q", f.Text(), tt.wantText)
			}
		})
	}
}

func TestIntRejectKeepsLastCommitted(t *testing.T) {
	f := field.NewInt(field.Meta{Name: "Mglob"}, 0)
	f.SetText("250")
	f.SetText("25x")
	if f.Get() != 250 {
		t.Fatalf("Get() = %d after rejected edit, want 250", f.Get())
	}
	if f.Text() != "250" {
		t.Errorf("Text() = %q, want reverted %q", f.Text(), "250")
	}
}

func TestIntRejectsOverflow(t *testing.T) {
	f := field.NewInt(field.Meta{Name: "Mglob"}, 7)
	if f.Valid("99999999999999999999") {
		t.Error("Valid accepted a value past int range")
	}
	f.SetText("99999999999999999999")
	if f.Get() != 7 || f.Text() != "7" {
		t.Errorf("overflow changed the field: Get() = %d, Text() = %q", f.Get(), f.Text())
	}
}

func TestTextRejectsLineBreaks(t *testing.T) {
	f := field.NewText(field.Meta{Name: "TITLE"}, "model1")
	for _, raw := range []string{"run\nPX = 999", "run\r", "\n"} {
		if f.Valid(raw) {
			t.Errorf("Valid(%q) = true", raw)
		}
		f.SetText(raw)
		if f.Get() != "model1" {
			t.Errorf("SetText(%q) committed %q", raw, f.Get())
		}
	}
	f.SetText("run 2")
	if f.Get() != "run 2" {
		t.Errorf("Get() = %q, want %q", f.Get(), "run 2")
	}
	f.SetText("")
	if !f.Blank() {
		t.Error("empty text not accepted")
	}
}

func TestRealSetText(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantVal float64
		commit  bool
	}{
		{"integer", "12", 12, true},
		{"decimal", "0.05", 0.05, true},
		{"negative", "-0.531", -0.531, true},
		{"leading dot", ".5", 0.5, true},
		{"trailing dot", "5.", 5, true},
		{"two dots", "1.2.3", 1.5, false},
		{"two signs", "--1", 1.5, false},
		{"inner sign", "1-2", 1.5, false},
		{"trailing sign", "5-", 1.5, false},
		{"sign only", "-", 1.5, false},
		{"dot only", ".", 1.5, false},
		{"exponent", "1e3", 1.5, false},
		{"letters", "abc", 1.5, false},
		{"inf", "Inf", 1.5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := field.NewReal(field.Meta{Name: "DX"}, 1.5)
			if got := f.Valid(tt.raw); got != tt.commit {
				t.Errorf("Valid(%q) = %v, want %v", tt.raw, got, tt.commit)
			}
			f.SetText(tt.raw)
			if f.Get() != tt.wantVal {
				t.Errorf("Get() = %v, want %v", f.Get(), tt.wantVal)
			}
			if !tt.commit && f.Text() != "1.500000" {
				t.Errorf("Text() = %q, want reverted %q", f.Text(), "1.500000")
			}
		})
	}
}

func TestRealSetValueFormatsFixedPoint(t *testing.T) {
	f := field.NewReal(field.Meta{Name: "CFL"}, 0)
	f.SetValue(0.5)
	if f.Text() != "0.500000" {
		t.Errorf("Text() = %q, want %q", f.Text(), "0.500000")
	}
	f.SetText("")
	if f.Get() != 0.5 || f.Text() != "" {
		t.Errorf("empty edit: Get() = %v Text() = %q, want 0.5 and empty", f.Get(), f.Text())
	}
	f.Reset()
	if f.Get() != 0 {
		t.Errorf("Reset: Get() = %v, want 0", f.Get())
	}
}

func TestBoolSetText(t *testing.T) {
	f := field.NewBool(field.Meta{Name: "PERIODIC"}, false)
	for _, raw := range []string{"T", "true", "YES", "1"} {
		f.Set(false)
		f.SetText(raw)
		if !f.Get() {
			t.Errorf("SetText(%q) did not set true", raw)
		}
	}
	f.SetText("maybe")
	if !f.Get() {
		t.Error("invalid text changed the value")
	}
	if f.Valid("maybe") {
		t.Error("Valid(maybe) = true")
	}
	f.Toggle()
	if f.Text() != "F" {
		t.Errorf("Text() = %q, want F", f.Text())
	}
}

func TestChoice(t *testing.T) {
	f := field.NewChoice(field.Meta{Name: "HIGH_ORDER"}, []string{"FOURTH", "THIRD", "SECOND"}, "FOURTH")
	f.SetText("THIRD")
	if f.Get() != "THIRD" {
		t.Fatalf("Get() = %q, want THIRD", f.Get())
	}
	f.SetText("FIFTH")
	if f.Get() != "THIRD" {
		t.Errorf("unknown option changed selection to %q", f.Get())
	}
	f.Next()
	f.Next()
	if f.Get() != "FOURTH" {
		t.Errorf("Next wrap: Get() = %q, want FOURTH", f.Get())
	}
	f.Prev()
	if f.Get() != "SECOND" {
		t.Errorf("Prev wrap: Get() = %q, want SECOND", f.Get())
	}
}

func TestNewChoicePanicsOnBadDefault(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for default outside options")
		}
	}()
	field.NewChoice(field.Meta{Name: "X"}, []string{"A"}, "B")
}

func TestRegistryOrderAndLookup(t *testing.T) {
	r := field.NewRegistry()
	field.Register(r, field.NewText(field.Meta{Name: "TITLE"}, "model1"))
	px := field.Register(r, field.NewInt(field.Meta{Name: "PX"}, 2))
	field.Register(r, field.NewBool(field.Meta{Name: "PERIODIC"}, false))

	var names []string
	for _, f := range r.All() {
		names = append(names, f.Name())
	}
	if diff := cmp.Diff([]string{"TITLE", "PX", "PERIODIC"}, names); diff != "" {
		t.Errorf("All() order mismatch (-want +got):\n%s", diff)
	}

	got, ok := r.Lookup("PX")
	if !ok || got != field.Field(px) {
		t.Fatalf("Lookup(PX) = %v, %v", got, ok)
	}
	if _, ok := r.Lookup("PY"); ok {
		t.Error("Lookup(PY) found an unregistered field")
	}

	px.SetValue(9)
	r.ResetAll()
	if px.Get() != 2 {
		t.Errorf("ResetAll: PX = %d, want 2", px.Get())
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	r := field.NewRegistry()
	field.Register(r, field.NewText(field.Meta{Name: "TITLE"}, ""))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	field.Register(r, field.NewText(field.Meta{Name: "TITLE"}, ""))
}
