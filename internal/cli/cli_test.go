package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); !reflect.DeepEqual(got, []string{pipeline.FormatSVG}) {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("png"); !reflect.DeepEqual(got, []string{"png"}) {
		t.Errorf("parseFormats(\"png\") = %v", got)
	}
	if got := parseFormats("svg,png,pdf"); !reflect.DeepEqual(got, []string{"svg", "png", "pdf"}) {
		t.Errorf("parseFormats(\"svg,png,pdf\") = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		input  string
		want   string
	}{
		{"", "data.json", "data"},
		{"", "dir/data.csv", "dir/data"},
		{"out.svg", "data.json", "out"},
		{"out.png", "data.json", "out"},
		{"out", "data.json", "out"},
		{"archive.tar", "data.json", "archive.tar"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir = %q", dir)
	}
}

func TestLoggerFromContext(t *testing.T) {
	// Without a logger attached, the default logger comes back.
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("expected default logger for bare context")
	}

	l := newLogger(os.Stderr, log.DebugLevel)
	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Error("expected attached logger to round-trip")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	root := c.RootCommand()

	want := []string{"layout", "render", "visualize", "preview", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
