package main

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		levelStr string
		expected Level
	}{
		{
			name:     "debug",
			levelStr: "debug",
			expected: DebugLevel,
		},
		{
			name:     "info uppercase",
			levelStr: "INFO",
			expected: InfoLevel,
		},
		{
			name:     "warn",
			levelStr: "warn",
			expected: WarnLevel,
		},
		{
			name:     "warning alias",
			levelStr: "warning",
			expected: WarnLevel,
		},
		{
			name:     "error",
			levelStr: "error",
			expected: ErrorLevel,
		},
		{
			name:     "unknown falls back to warn",
			levelStr: "loud",
			expected: WarnLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.levelStr); got != tt.expected {
				t.Errorf("Expected level %d, got: %d", tt.expected, got)
			}
		})
	}
}

func TestVerbosityLevel(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected Level
	}{
		{
			name:     "default",
			count:    0,
			expected: WarnLevel,
		},
		{
			name:     "single v",
			count:    1,
			expected: InfoLevel,
		},
		{
			name:     "double v",
			count:    2,
			expected: DebugLevel,
		},
		{
			name:     "many",
			count:    5,
			expected: DebugLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerbosityLevel(tt.count); got != tt.expected {
				t.Errorf("Expected level %d, got: %d", tt.expected, got)
			}
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	l := NewLoggerWithLevel(ErrorLevel)
	if l.IsDebugEnabled() {
		t.Error("Expected debug to be disabled at error level")
	}

	l = NewLoggerWithLevel(DebugLevel)
	if !l.IsDebugEnabled() {
		t.Error("Expected debug to be enabled at debug level")
	}
}
