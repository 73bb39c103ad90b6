package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"wavegen/internal/logging"
)

func TestInitWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wavegen.log")
	if err := logging.Init(path, false); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { logging.Close() })

	logging.Debug("hidden at info level")
	logging.Info("generated", zap.String("path", "input.txt"))
	logging.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"generated"`) || !strings.Contains(out, `"path":"input.txt"`) {
		t.Errorf("log missing entry:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestCloseReleasesFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.log")
	second := filepath.Join(dir, "second.log")
	if err := logging.Init(first, false); err != nil {
		t.Fatal(err)
	}
	logging.Info("to first")
	if err := logging.Init(second, false); err != nil {
		t.Fatal(err)
	}
	logging.Info("to second")
	if err := logging.Close(); err != nil {
		t.Fatal(err)
	}
	logging.Info("after close")
	if err := logging.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(a), "to first") || strings.Contains(string(a), "to second") {
		t.Errorf("first log:\n%s", a)
	}
	if !strings.Contains(string(b), "to second") || strings.Contains(string(b), "after close") {
		t.Errorf("second log:\n%s", b)
	}
}

func TestInitBadPath(t *testing.T) {
	if err := logging.Init(filepath.Join(t.TempDir(), "no", "such", "dir.log"), false); err == nil {
		t.Fatal("expected error")
	}
}

func TestSetRoutesPackageFuncs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	logging.Set(zap.New(core))
	t.Cleanup(func() { logging.Set(zap.NewNop()) })

	logging.Warn("careful", zap.Int("n", 2))
	logging.Error("broken")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Message != "careful" || entries[0].ContextMap()["n"] != int64(2) {
		t.Errorf("first entry = %+v", entries[0])
	}
}
