package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	const rc = `
# window
window_width = 1024
height=600
compact = TRUE
seed = 42
font = Regular
log_level = debug
debug_fills = true
savedir = /tmp/shots
bogus line
unknown = 1
window_width = -5
`
	cfg, err := Parse(strings.NewReader(rc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Config{
		WindowWidth:   1024,
		WindowHeight:  600,
		Compact:       true,
		Seed:          42,
		Font:          "regular",
		LogLevel:      "debug",
		DebugFills:    true,
		SaveDirectory: "/tmp/shots",
	}
	if *cfg != want {
		t.Errorf("Parse = %+v, want %+v", *cfg, want)
	}
}

func TestParseEmptyGivesDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *Default() {
		t.Errorf("Parse(\"\") = %+v, want defaults", *cfg)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("seed = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Seed != 9 || cfg.WindowWidth != 1280 {
		t.Errorf("LoadFile = %+v", *cfg)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestSavePath(t *testing.T) {
	c := Default()
	if got := c.SavePath("a.png"); got != "a.png" {
		t.Errorf("SavePath = %q", got)
	}
	dir := filepath.Join(t.TempDir(), "shots")
	c.SaveDirectory = dir
	if got := c.SavePath("a.png"); got != filepath.Join(dir, "a.png") {
		t.Errorf("SavePath = %q", got)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		t.Errorf("save directory not created: %v", err)
	}
}
