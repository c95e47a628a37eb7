package main

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/semverist/bumpver/pkg/version"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir("", "bumpver-config")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, ".bumpver.yaml")
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	return path
}

func TestLoadFromPath(t *testing.T) {
	viper.Reset()
	path := writeConfigFile(t, `
current_version: 1.5.0
parse: (?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)(\-(?P<release>[a-z]+))?
serialize:
  - "{major}.{minor}.{patch}-{release}"
  - "{major}.{minor}.{patch}"
commit: true
tag: true
parts:
  release:
    values: [alpha, beta, stable]
    optional_value: stable
files:
  - file: VERSION
  - file: setup.py
    search: version="{current_version}"
    replace: version="{new_version}"
github:
  repo: acme/widgets
  branch: release
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.CurrentVersion != "1.5.0" {
		t.Errorf("Expected current_version 1.5.0, got: %s", cfg.CurrentVersion)
	}
	if len(cfg.Serialize) != 2 {
		t.Errorf("Expected 2 serialize formats, got: %d", len(cfg.Serialize))
	}
	if !cfg.Commit || !cfg.Tag {
		t.Error("Expected commit and tag to be enabled")
	}
	if len(cfg.Files) != 2 {
		t.Fatalf("Expected 2 files, got: %d", len(cfg.Files))
	}
	if cfg.Files[1].Search != `version="{current_version}"` {
		t.Errorf("Expected per-file search override, got: %s", cfg.Files[1].Search)
	}
	if cfg.Github.Repo != "acme/widgets" || cfg.Github.Branch != "release" {
		t.Errorf("Expected github settings, got: %+v", cfg.Github)
	}
	if cfg.Parts["release"].OptionalValue != "stable" {
		t.Errorf("Expected release optional_value stable, got: %s", cfg.Parts["release"].OptionalValue)
	}

	// Defaults fill the holes the file leaves.
	if cfg.Message != defaultMessage {
		t.Errorf("Expected default message, got: %s", cfg.Message)
	}
	if cfg.TagName != defaultTagName {
		t.Errorf("Expected default tag_name, got: %s", cfg.TagName)
	}
}

func TestLoadFromPathMissingExplicitFile(t *testing.T) {
	viper.Reset()
	_, err := LoadFromPath("/nonexistent/.bumpver.yaml")
	if err == nil {
		t.Error("Expected error but got none")
	}
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	dir, err := ioutil.TempDir("", "bumpver-empty")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(cwd)
		os.RemoveAll(dir)
	})
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	cfg, err := LoadFromPath("")
	if err != nil {
		t.Fatalf("Expected a missing implicit config to be fine, got: %v", err)
	}
	if cfg.Parse != defaultParse {
		t.Errorf("Expected default parse pattern, got: %s", cfg.Parse)
	}
	if len(cfg.Serialize) != 1 || cfg.Serialize[0] != defaultSerialize {
		t.Errorf("Expected default serialize format, got: %v", cfg.Serialize)
	}
}

func TestVersionConfigInvalidPart(t *testing.T) {
	cfg := &Config{
		Parse:     defaultParse,
		Serialize: []string{defaultSerialize},
		Parts: map[string]PartSettings{
			"release": {
				Values:        []string{"alpha", "beta"},
				OptionalValue: "stable",
			},
		},
	}

	_, err := cfg.VersionConfig()
	var membership *version.MembershipError
	if !errors.As(err, &membership) {
		t.Fatalf("Expected MembershipError, got: %v", err)
	}
	if !strings.Contains(err.Error(), "release") {
		t.Errorf("Expected error to name the part, got: %v", err)
	}
}

func TestVersionConfigPartStrategies(t *testing.T) {
	cfg := &Config{
		Parse:     `(?P<major>\d+)\.(?P<minor>\d+)\.(?P<release>[a-z]+)`,
		Serialize: []string{"{major}.{minor}.{release}"},
		Parts: map[string]PartSettings{
			"release": {Values: []string{"dev", "beta", "stable"}},
		},
	}

	vc, err := cfg.VersionConfig()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	v := vc.Parse("1.2.dev")
	next, err := v.Bump("release", vc.Order())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if next.Values()["release"] != "beta" {
		t.Errorf("Expected release=beta, got: %s", next.Values()["release"])
	}
}

func TestFileVersionConfigOverrides(t *testing.T) {
	cfg := &Config{
		Parse:     defaultParse,
		Serialize: []string{defaultSerialize},
		Search:    version.DefaultSearch,
		Replace:   version.DefaultReplace,
	}

	fvc, err := cfg.FileVersionConfig(FileSettings{
		File:   "README.md",
		Search: "badge/v{current_version}",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if fvc.IsDefaultSearch() {
		t.Error("Expected the per-file search override to be used")
	}

	fvc, err = cfg.FileVersionConfig(FileSettings{File: "VERSION"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !fvc.IsDefaultSearch() {
		t.Error("Expected fallback to the global search template")
	}
}

func TestSaveCurrentVersion(t *testing.T) {
	viper.Reset()
	path := writeConfigFile(t, "current_version: 1.0.0\n")

	if _, err := LoadFromPath(path); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := SaveCurrentVersion("1.0.1"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(string(data), "1.0.1") {
		t.Errorf("Expected config file to carry the new version, got:\n%s", data)
	}
}
