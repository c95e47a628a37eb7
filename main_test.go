package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestCheckError(t *testing.T) {
	// Test that CheckError doesn't panic with nil error
	CheckError(nil)

	// We can't easily test the error case since CheckError calls os.Exit(1)
}

func TestWarn(t *testing.T) {
	// Capture stderr
	old := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w

	Warn("could not parse %q", "1.2")

	// Restore stderr and capture output
	w.Close()
	os.Stderr = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	output := buf.String()

	if !strings.Contains(output, "[WARN]:") {
		t.Error("Expected output to contain [WARN]: prefix")
	}
	if !strings.Contains(output, `could not parse "1.2"`) {
		t.Error("Expected output to contain formatted warning message")
	}
}
