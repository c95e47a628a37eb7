package main

import (
	"testing"

	"github.com/semverist/bumpver/pkg/version"
)

func TestPartOptions(t *testing.T) {
	vc, err := version.NewConfig(
		`(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`,
		[]string{"{major}.{minor}.{patch}"},
		"", "", nil,
	)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	current := vc.Parse("1.2.3")
	options := partOptions(current, vc, version.NewContext())

	expected := []bumpOption{
		{Label: "major", Preview: "2.0.0"},
		{Label: "minor", Preview: "1.3.0"},
		{Label: "patch", Preview: "1.2.4"},
	}
	if len(options) != len(expected) {
		t.Fatalf("Expected %d options, got: %d", len(expected), len(options))
	}
	for i, want := range expected {
		if options[i] != want {
			t.Errorf("Expected option %+v at %d, got: %+v", want, i, options[i])
		}
	}
}

func TestPartOptionsSkipsExhaustedParts(t *testing.T) {
	release, err := version.NewValuesStrategy([]string{"dev", "stable"}, "stable", "dev", nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	vc, err := version.NewConfig(
		`(?P<major>\d+)\.(?P<release>[a-z]+)`,
		[]string{"{major}.{release}"},
		"", "",
		map[string]*version.PartConfig{"release": {Strategy: release}},
	)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// release already holds its last value and cannot be bumped further.
	current := vc.Parse("1.stable")
	options := partOptions(current, vc, version.NewContext())

	if len(options) != 1 {
		t.Fatalf("Expected 1 option, got: %+v", options)
	}
	if options[0].Label != "major" {
		t.Errorf("Expected only major to be offered, got: %s", options[0].Label)
	}
}
