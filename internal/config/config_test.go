package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/visualeyes/storylint/internal/models"
)

// isolate points the user config at an empty temp dir and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	for _, name := range []string{
		"STORYLINT_DB_PATH", "STORYLINT_LOG_DIR", "STORYLINT_LOG_LEVEL",
		"STORYLINT_STRICT", "STORYLINT_THEME_FILE",
	} {
		t.Setenv(name, "")
	}
	return tempDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	if defaults.Quit != "q" {
		t.Errorf("Default Quit key = %s, want q", defaults.Quit)
	}
	if defaults.CycleAuthor != "a" {
		t.Errorf("Default CycleAuthor key = %s, want a", defaults.CycleAuthor)
	}
	if defaults.ToggleFindings != "tab" {
		t.Errorf("Default ToggleFindings key = %s, want tab", defaults.ToggleFindings)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	isolate(t)

	cfg, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() without config file failed: %v", err)
	}

	if cfg.KeyMappings.Quit != "q" {
		t.Errorf("Loaded config Quit key = %s, want q (default)", cfg.KeyMappings.Quit)
	}
	if len(cfg.Table.Columns) != 6 {
		t.Errorf("Expected 6 default columns, got %d", len(cfg.Table.Columns))
	}
	if cfg.Table.FirstNumber != 1 {
		t.Errorf("Expected first number 1, got %d", cfg.Table.FirstNumber)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %q", cfg.LogLevel)
	}
	if cfg.ColorScheme.Accent != "#874BFD" {
		t.Errorf("Expected default accent, got %q", cfg.ColorScheme.Accent)
	}
	if len(cfg.Sources) != 0 {
		t.Errorf("Expected no sources, got %v", cfg.Sources)
	}
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := isolate(t)

	writeFile(t, filepath.Join(tempDir, "storylint", "config.yaml"), `key_mappings:
  quit: "x"
table:
  first_number: 10
authors:
  roster: [MK, JS]
rules:
  author-format: error
log_level: DEBUG
`)

	cfg, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() with config file failed: %v", err)
	}

	if cfg.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", cfg.KeyMappings.Quit)
	}
	// Unspecified values should use defaults
	if cfg.KeyMappings.NextStory != "j" {
		t.Errorf("Loaded NextStory key = %s, want j (default)", cfg.KeyMappings.NextStory)
	}
	if cfg.Table.FirstNumber != 10 {
		t.Errorf("Expected first number 10, got %d", cfg.Table.FirstNumber)
	}
	if len(cfg.Authors.Roster) != 2 {
		t.Errorf("Expected roster of 2, got %v", cfg.Authors.Roster)
	}
	if cfg.Rules["author-format"] != "error" {
		t.Errorf("Expected author-format override, got %v", cfg.Rules)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected lowercased log level, got %q", cfg.LogLevel)
	}
	if len(cfg.Sources) != 1 {
		t.Errorf("Expected one source, got %v", cfg.Sources)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tempDir := isolate(t)
	writeFile(t, filepath.Join(tempDir, "storylint", "config.yaml"), "table: [unclosed")

	if _, err := LoadDir(""); err == nil {
		t.Fatal("Expected error for invalid YAML, got nil")
	}
}

// ============================================================================
// PROJECT OVERLAY
// ============================================================================

func TestProjectYAMLOverlay(t *testing.T) {
	tempDir := isolate(t)
	writeFile(t, filepath.Join(tempDir, "storylint", "config.yaml"), `lint:
  workers: 2
table:
  first_number: 5
`)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectYAML), `table:
  first_number: 100
lint:
  strict: true
`)

	cfg, err := LoadDir(project)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.Table.FirstNumber != 100 {
		t.Errorf("Expected project first number 100, got %d", cfg.Table.FirstNumber)
	}
	if cfg.Lint.Workers != 2 {
		t.Errorf("Expected user workers 2 to survive overlay, got %d", cfg.Lint.Workers)
	}
	if !cfg.Lint.Strict {
		t.Error("Expected strict from project overlay")
	}
	if len(cfg.Sources) != 2 {
		t.Errorf("Expected two sources, got %v", cfg.Sources)
	}
}

func TestProjectTOMLOverlay(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectTOML), `log_level = "warn"

[authors]
pattern = "^[A-Z]{2}$"
roster = ["AB"]

[rules]
narrative-body = "off"
`)

	cfg, err := LoadDir(project)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.Authors.Pattern != "^[A-Z]{2}$" {
		t.Errorf("Expected TOML pattern, got %q", cfg.Authors.Pattern)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected warn, got %q", cfg.LogLevel)
	}
	if cfg.Rules["narrative-body"] != "off" {
		t.Errorf("Expected narrative-body off, got %v", cfg.Rules)
	}
}

func TestProjectYAMLWinsOverTOML(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	writeFile(t, filepath.Join(project, ProjectYAML), "log_level: error\n")
	writeFile(t, filepath.Join(project, ProjectTOML), "log_level = \"debug\"\n")

	cfg, err := LoadDir(project)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("Expected YAML overlay to win, got %q", cfg.LogLevel)
	}
}

// ============================================================================
// ENVIRONMENT
// ============================================================================

func TestEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("STORYLINT_DB_PATH", "/tmp/catalog.db")
	t.Setenv("STORYLINT_LOG_LEVEL", "debug")
	t.Setenv("STORYLINT_STRICT", "true")

	cfg, err := LoadDir("")
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.DatabasePath != "/tmp/catalog.db" {
		t.Errorf("Expected db path override, got %q", cfg.DatabasePath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug, got %q", cfg.LogLevel)
	}
	if !cfg.Lint.Strict {
		t.Error("Expected strict from environment")
	}
}

func TestEnvironmentInvalidStrict(t *testing.T) {
	isolate(t)
	t.Setenv("STORYLINT_STRICT", "maybe")

	if _, err := LoadDir(""); err == nil {
		t.Fatal("Expected error for invalid STORYLINT_STRICT, got nil")
	}
}

func TestEnvironmentStrictFalseOverridesProject(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectYAML), "lint:\n  strict: true\n")

	cfg, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if !cfg.Lint.Strict {
		t.Fatal("Expected strict from the project file")
	}

	t.Setenv("STORYLINT_STRICT", "false")
	cfg, err = LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.Lint.Strict {
		t.Error("Expected STORYLINT_STRICT=false to win over the project file")
	}
}

func TestThemeFile(t *testing.T) {
	isolate(t)

	themePath := filepath.Join(t.TempDir(), "theme.yaml")
	writeFile(t, themePath, `theme:
  preset: monochrome
  accent: "#123456"
`)
	t.Setenv("STORYLINT_THEME_FILE", themePath)

	cfg, err := LoadDir("")
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.ColorScheme.Accent != "#123456" {
		t.Errorf("Expected theme accent, got %q", cfg.ColorScheme.Accent)
	}
	// Remaining colors come from the monochrome preset
	if cfg.ColorScheme.Title != MonochromeColorScheme().Title {
		t.Errorf("Expected monochrome title, got %q", cfg.ColorScheme.Title)
	}
}

func TestThemeFileMissingIsIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("STORYLINT_THEME_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	cfg, err := LoadDir("")
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if cfg.ColorScheme.Accent != DefaultColorScheme().Accent {
		t.Errorf("Expected default accent, got %q", cfg.ColorScheme.Accent)
	}
}

func TestSaveConfig(t *testing.T) {
	tempDir := isolate(t)

	cfg := &Config{KeyMappings: KeyMappings{Quit: "x"}}
	cfg.applyDefaults()

	path, err := cfg.Save()
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if path != filepath.Join(tempDir, "storylint", "config.yaml") {
		t.Errorf("Unexpected config path %s", path)
	}

	loaded, err := LoadDir("")
	if err != nil {
		t.Fatalf("LoadDir() failed: %v", err)
	}
	if loaded.KeyMappings.Quit != "x" {
		t.Errorf("Loaded Quit key = %s, want x", loaded.KeyMappings.Quit)
	}
}

func TestWriteProjectRoundTrip(t *testing.T) {
	for _, useTOML := range []bool{false, true} {
		name := "yaml"
		if useTOML {
			name = "toml"
		}
		t.Run(name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()

			cfg := Default()
			cfg.Authors.Roster = []string{"MK", "JS"}
			cfg.Rules = map[string]string{"author-format": "error"}
			cfg.Lint.Strict = true
			cfg.DatabasePath = "/should/not/be/written.db"

			path, err := cfg.WriteProject(dir, useTOML)
			if err != nil {
				t.Fatalf("WriteProject() failed: %v", err)
			}
			if path != ProjectPath(dir, useTOML) {
				t.Errorf("Expected path %s, got %s", ProjectPath(dir, useTOML), path)
			}

			loaded, err := LoadDir(dir)
			if err != nil {
				t.Fatalf("LoadDir() failed: %v", err)
			}
			if len(loaded.Authors.Roster) != 2 || loaded.Authors.Roster[1] != "JS" {
				t.Errorf("Expected roster [MK JS], got %v", loaded.Authors.Roster)
			}
			if loaded.Rules["author-format"] != "error" {
				t.Errorf("Expected author-format=error, got %q", loaded.Rules["author-format"])
			}
			if !loaded.Lint.Strict {
				t.Error("Expected strict to survive the round trip")
			}
			if loaded.DatabasePath == "/should/not/be/written.db" {
				t.Error("Database path leaked into the project file")
			}
		})
	}
}

// ============================================================================
// LINT OPTIONS
// ============================================================================

func TestLintOptions(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Rules = map[string]string{"narrative-body": "off", "author-format": "error"}
	cfg.Authors.Roster = []string{"MK"}
	cfg.Lint.Workers = 3

	opts, err := cfg.LintOptions()
	if err != nil {
		t.Fatalf("LintOptions() failed: %v", err)
	}
	if opts.Severities["narrative-body"] != models.SeverityOff {
		t.Errorf("Expected narrative-body off, got %v", opts.Severities["narrative-body"])
	}
	if opts.Severities["author-format"] != models.SeverityError {
		t.Errorf("Expected author-format error, got %v", opts.Severities["author-format"])
	}
	if !opts.Rules.AuthorPattern.MatchString("MK") {
		t.Error("Expected default pattern to match MK")
	}
	if opts.Workers != 3 {
		t.Errorf("Expected 3 workers, got %d", opts.Workers)
	}
	if len(opts.Rules.Roster) != 1 {
		t.Errorf("Expected roster to carry over, got %v", opts.Rules.Roster)
	}
}

func TestLintOptionsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad pattern", func(c *Config) { c.Authors.Pattern = "[" }},
		{"bad severity", func(c *Config) { c.Rules = map[string]string{"author-format": "loud"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			if _, err := cfg.LintOptions(); err == nil {
				t.Fatal("Expected error, got nil")
			}
		})
	}
}
