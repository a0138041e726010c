package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// projectFile is the part of Config a project overlay carries. Paths, logging,
// keys and theme are per user.
type projectFile struct {
	Table   TableConfig       `yaml:"table" toml:"table"`
	Authors AuthorsConfig     `yaml:"authors" toml:"authors"`
	Rules   map[string]string `yaml:"rules,omitempty" toml:"rules,omitempty"`
	Lint    LintConfig        `yaml:"lint" toml:"lint"`
}

// ProjectPath returns the overlay path in dir for the chosen format.
func ProjectPath(dir string, useTOML bool) string {
	if useTOML {
		return filepath.Join(dir, ProjectTOML)
	}
	return filepath.Join(dir, ProjectYAML)
}

// WriteProject writes c's table, author, rule and lint settings to dir as a
// project overlay and returns the file written.
func (c *Config) WriteProject(dir string, useTOML bool) (string, error) {
	pf := projectFile{Table: c.Table, Authors: c.Authors, Rules: c.Rules, Lint: c.Lint}
	path := ProjectPath(dir, useTOML)

	var data []byte
	if useTOML {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(pf); err != nil {
			return "", fmt.Errorf("encode %s: %w", path, err)
		}
		data = buf.Bytes()
	} else {
		out, err := yaml.Marshal(pf)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", path, err)
		}
		data = out
	}

	return path, atomicWriteFile(path, data)
}

// atomicWriteFile writes data next to path and renames it into place.
func atomicWriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
