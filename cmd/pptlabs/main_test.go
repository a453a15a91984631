package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunVerbose(t *testing.T) {
	t.Setenv("PPTLABS_REFERENCE_MODE", "")
	os.Unsetenv("PPTLABS_REFERENCE_MODE")
	config := filepath.Join(t.TempDir(), "config.toml")

	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := []string{"config", "set", "reference-mode", "outermost", "--config", config}
			if tt.verbose {
				args = append(args, "-v")
			}
			var logs bytes.Buffer
			if err := run(context.Background(), args, &logs); err != nil {
				t.Fatalf("run: %v", err)
			}
			if got := strings.Contains(logs.String(), "Saved settings"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v; logs = %q", got, tt.wantDebug, logs.String())
			}
		})
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var logs bytes.Buffer
	if err := run(context.Background(), []string{"shrink"}, &logs); err == nil {
		t.Error("expected error for unknown command")
	}
}
