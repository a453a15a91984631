package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VantageDataChat/pptlabs/resize"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestDefaultPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath() error: %v", err)
	}
	if want := filepath.Join("/tmp/xdg", "pptlabs", "config.toml"); path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}

func TestDefaultPathFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", t.TempDir())
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	if !strings.HasSuffix(path, filepath.Join("pptlabs", "config.toml")) {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestLoadMissingFile(t *testing.T) {
	unsetEnv(t, "PPTLABS_REFERENCE_MODE")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	rt, err := cfg.RefType()
	if err != nil || rt != resize.FirstSelected {
		t.Errorf("RefType() = %v, %v; want first-selected", rt, err)
	}
}

func TestLoadFile(t *testing.T) {
	unsetEnv(t, "PPTLABS_REFERENCE_MODE")
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "reference_mode = \"outermost\"\ncolour = \"blue\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if rt, _ := cfg.RefType(); rt != resize.Outermost {
		t.Errorf("RefType() = %v, want outermost", rt)
	}
	if keys := cfg.UnknownKeys(); len(keys) != 1 || keys[0] != "colour" {
		t.Errorf("UnknownKeys() = %v", keys)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`reference_mode = "first-selected"`), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PPTLABS_REFERENCE_MODE", "outermost")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ReferenceMode != "outermost" {
		t.Errorf("ReferenceMode = %q, want outermost", cfg.ReferenceMode)
	}
}

func TestLoadErrors(t *testing.T) {
	unsetEnv(t, "PPTLABS_REFERENCE_MODE")
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "reference_mode = "},
		{"bad type", "reference_mode = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadInvalidModeCanBeRepaired(t *testing.T) {
	unsetEnv(t, "PPTLABS_REFERENCE_MODE")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`reference_mode = "outermots"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := cfg.RefType(); err == nil {
		t.Fatal("RefType() should reject the stored value")
	}
	if err := cfg.Set(KeyReferenceMode, "outermost"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load() after repair: %v", err)
	}
	if rt, err := cfg.RefType(); err != nil || rt != resize.Outermost {
		t.Errorf("RefType() = %v, %v, want outermost", rt, err)
	}
}

func TestLoadInvalidEnvMode(t *testing.T) {
	t.Setenv("PPTLABS_REFERENCE_MODE", "middle")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := cfg.RefType(); err == nil {
		t.Error("RefType() should reject PPTLABS_REFERENCE_MODE=middle")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	unsetEnv(t, "PPTLABS_REFERENCE_MODE")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	if err := cfg.Set(KeyReferenceMode, "Outermost"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `reference_mode = "outermost"`) {
		t.Errorf("saved config = %q", data)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if v, _ := loaded.Get(KeyReferenceMode); v != "outermost" {
		t.Errorf("Get() = %q, want outermost", v)
	}
}

func TestGetSetUnknownKey(t *testing.T) {
	cfg := Default()
	if _, err := cfg.Get("colour"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get() error = %v, want ErrUnknownKey", err)
	}
	if err := cfg.Set("colour", "blue"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set() error = %v, want ErrUnknownKey", err)
	}
	if err := cfg.Set(KeyReferenceMode, "sideways"); err == nil {
		t.Error("Set() should reject an invalid mode")
	}
	if cfg.ReferenceMode != "first-selected" {
		t.Errorf("ReferenceMode changed to %q", cfg.ReferenceMode)
	}
}
