package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	md2doc "github.com/alnah/go-md2doc"
	"github.com/alnah/go-md2doc/internal/config"
	"github.com/alnah/go-md2doc/internal/fileutil"
	"github.com/alnah/go-md2doc/internal/hints"
)

// versionTimeout bounds each "<tool> --version" probe.
const versionTimeout = 5 * time.Second

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"`
	Tools    []toolInfo `json:"tools"`
	Font     fontInfo   `json:"font"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo holds one external tool detection result.
type toolInfo struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// fontInfo reports the native PDF font.
type fontInfo struct {
	Path  string `json:"path"`
	Found bool   `json:"found"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	HTMLEngine string `json:"html_engine"`
	BrowserBin string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Missing tools are warnings because every format but pptx has a built-in
// fallback. Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, _, err := parseDoctorFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printDoctorUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	cfg, err := loadSettings(flags.common, env)
	if err == nil {
		err = validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	result := runDoctor(cfg, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitConversion
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against the effective config.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	engine := orDefault(cfg.PDF.HTMLEngine, string(md2doc.EngineWkhtmltopdf))
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			HTMLEngine: engine,
			BrowserBin: env.Getenv("ROD_BROWSER_BIN"),
		},
	}

	pandoc := checkTool(orDefault(cfg.Tools.Pandoc, md2doc.DefaultPandoc), "converter")
	result.Tools = append(result.Tools, pandoc)
	if !pandoc.Found {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not found: pptx is unavailable, docx and pdf use built-in fallbacks", pandoc.Name))
	}

	latex := checkTool(orDefault(cfg.PDF.Engine, md2doc.DefaultPDFEngine), "pdf engine")
	result.Tools = append(result.Tools, latex)
	if pandoc.Found && !latex.Found {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s not found: pdf skips the direct pandoc tier", latex.Name))
	}

	if engine == string(md2doc.EngineChrome) {
		chrome := checkChrome(result.Env.BrowserBin)
		result.Tools = append(result.Tools, chrome)
		if !chrome.Found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found: install Chrome or set ROD_BROWSER_BIN")
		}
	} else {
		wk := checkTool(orDefault(cfg.Tools.Wkhtmltopdf, md2doc.DefaultWkhtmltopdf), "html to pdf")
		result.Tools = append(result.Tools, wk)
		if !wk.Found {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s not found: pdf skips the html tier", wk.Name))
		}
	}

	result.Font.Path = orDefault(cfg.PDF.FontPath, md2doc.DefaultFontPath)
	result.Font.Found = fileutil.FileExists(result.Font.Path)
	if !result.Font.Found {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("PDF font not found at %s: native pdf is limited to Latin text", result.Font.Path))
	}

	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkTool resolves name on PATH and reads its version line.
func checkTool(name, role string) toolInfo {
	info := toolInfo{Name: name, Role: role}
	path, err := exec.LookPath(name)
	if err != nil {
		return info
	}
	info.Found = true
	info.Path = path
	info.Version = toolVersion(path)
	return info
}

// checkChrome detects Chrome/Chromium the way the chrome engine launches it.
func checkChrome(browserBin string) toolInfo {
	info := toolInfo{Name: "chrome", Role: "html to pdf"}

	path := browserBin
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			return info
		}
	}
	if _, err := os.Stat(path); err != nil {
		return info
	}

	info.Found = true
	info.Path = path
	info.Version = toolVersion(path)
	return info
}

// toolVersion returns the first line of "<path> --version", or "".
func toolVersion(path string) string {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- path comes from LookPath
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}

// checkSystem verifies the temp directory used for staging is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2doc-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2doc doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Tools")
	for _, t := range r.Tools {
		if !t.Found {
			fmt.Fprintf(w, "  [WARN] %s (%s): not found\n", t.Name, t.Role)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s (%s): %s\n", t.Name, t.Role, t.Path)
		if t.Version != "" {
			fmt.Fprintf(w, "       %s\n", t.Version)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PDF font")
	if r.Font.Found {
		fmt.Fprintf(w, "  [OK] %s\n", r.Font.Path)
	} else {
		fmt.Fprintf(w, "  [WARN] %s: not found%s\n", r.Font.Path, hints.ForFontNotFound())
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  [OK] HTML engine: %s\n", r.Env.HTMLEngine)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
