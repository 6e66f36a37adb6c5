package config

// Notes:
// - Name resolution in the user config directory is exercised through
//   XDG_CONFIG_HOME, which os.UserConfigDir honours on Linux only; those
//   tests use t.Setenv and cannot run in parallel.
// - Name resolution in the current directory needs t.Chdir and is not
//   parallel either.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig_FullFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "md2doc.yaml", `
tools:
  pandoc: /opt/pandoc/bin/pandoc
  wkhtmltopdf: wkhtmltopdf
pdf:
  engine: lualatex
  mainFont: Amiri
  htmlEngine: chrome
  fontPath: /fonts/Amiri.ttf
  fontSize: 13
docx:
  font: Amiri
  fontSize: 14
xlsx:
  sheetName: Content
  columnWidth: 80
timeouts:
  document: 45s
  pdf: 2m
  html: 10s
  htmlToPdf: 90s
log:
  level: debug
  format: json
server:
  addr: ":9090"
  storeDir: /srv/md
  outputDir: /srv/out
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}

	if cfg.Tools.Pandoc != "/opt/pandoc/bin/pandoc" {
		t.Errorf("Tools.Pandoc = %q", cfg.Tools.Pandoc)
	}
	if cfg.PDF.Engine != "lualatex" || cfg.PDF.MainFont != "Amiri" || cfg.PDF.HTMLEngine != "chrome" {
		t.Errorf("PDF = %+v", cfg.PDF)
	}
	if cfg.PDF.FontSize != 13 || cfg.DOCX.FontSize != 14 {
		t.Errorf("font sizes = %v, %v", cfg.PDF.FontSize, cfg.DOCX.FontSize)
	}
	if cfg.XLSX.SheetName != "Content" || cfg.XLSX.ColumnWidth != 80 {
		t.Errorf("XLSX = %+v", cfg.XLSX)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.StoreDir != "/srv/md" || cfg.Server.OutputDir != "/srv/out" {
		t.Errorf("Server = %+v", cfg.Server)
	}

	d, err := cfg.Timeouts.Parse()
	if err != nil {
		t.Fatal(err)
	}
	want := Durations{Document: 45 * time.Second, PDF: 2 * time.Minute, HTML: 10 * time.Second, HTMLToPDF: 90 * time.Second}
	if d != want {
		t.Errorf("Timeouts.Parse() = %+v, want %+v", d, want)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"unknown field", "pdf:\n  engin: xelatex\n", ErrConfigParse},
		{"wrong type", "docx:\n  fontSize: big\n", ErrConfigParse},
		{"bad html engine", "pdf:\n  htmlEngine: prince\n", ErrInvalidValue},
		{"bad duration", "timeouts:\n  pdf: soon\n", ErrInvalidValue},
		{"negative duration", "timeouts:\n  html: -5s\n", ErrInvalidValue},
		{"column too wide", "xlsx:\n  columnWidth: 300\n", ErrInvalidValue},
		{"negative font size", "pdf:\n  fontSize: -1\n", ErrInvalidValue},
		{"bad log level", "log:\n  level: loud\n", ErrInvalidValue},
		{"bad log format", "log:\n  format: xml\n", ErrInvalidValue},
		{"sheet name too long", "xlsx:\n  sheetName: " + strings.Repeat("a", MaxSheetNameLength+1) + "\n", ErrFieldTooLong},
	}

	for i, tt := range tests {
		path := writeConfig(t, dir, filepath.Base(t.Name())+string(rune('a'+i))+".yaml", tt.content)
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "empty.yaml", "")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("empty file produced %+v", cfg)
	}
}

func TestLoadConfig_TooLarge(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), "big.yaml", "# "+strings.Repeat("x", MaxInputSize))

	_, err := LoadConfig(path)
	if !errors.Is(err, ErrConfigParse) || !errors.Is(err, ErrInputTooLarge) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse wrapping ErrInputTooLarge", err)
	}
}

func TestLoadConfig_EmptyName(t *testing.T) {
	t.Parallel()

	if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
		t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
	}
}

func TestLoadConfig_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Standard locations
// ---------------------------------------------------------------------------

func TestLoadConfig_ByName_CurrentDir(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "team.yml", "tools:\n  pandoc: local-pandoc\n")
	t.Chdir(dir)

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Tools.Pandoc != "local-pandoc" {
		t.Errorf("Tools.Pandoc = %q, want local-pandoc", cfg.Tools.Pandoc)
	}
}

func TestLoadConfig_ByName_UserDir(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME is only honoured on Linux")
	}

	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Chdir(t.TempDir())

	appDir := filepath.Join(home, appDirName)
	if err := os.MkdirAll(appDir, 0o750); err != nil {
		t.Fatal(err)
	}
	writeConfig(t, appDir, "server.yaml", "server:\n  addr: \":7000\"\n")

	cfg, err := LoadConfig("server")
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("Server.Addr = %q, want :7000", cfg.Server.Addr)
	}
	if got := UserConfigPath("server"); got != filepath.Join(appDir, "server.yaml") {
		t.Errorf("UserConfigPath() = %q", got)
	}
}

func TestLoadConfig_ByName_NotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing.yaml") || !strings.Contains(err.Error(), "missing.yml") {
		t.Errorf("error %q does not list the tried paths", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Direct validation
// ---------------------------------------------------------------------------

func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("test.field", tt.value, tt.max)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q does not name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTimeoutsConfig_Parse_Empty(t *testing.T) {
	t.Parallel()

	d, err := TimeoutsConfig{}.Parse()
	if err != nil {
		t.Fatal(err)
	}
	if d != (Durations{}) {
		t.Errorf("Parse() = %+v, want zero", d)
	}
}

func TestDecodeStrict_NilDestination(t *testing.T) {
	t.Parallel()

	if err := decodeStrict([]byte("a: 1"), nil); !errors.Is(err, ErrNilDestination) {
		t.Errorf("decodeStrict() error = %v, want ErrNilDestination", err)
	}
}
