package main

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestGetEnvFallsBackWhenUnset(t *testing.T) {
	t.Setenv("PULSELOG_TEST_KEY", "")
	if got := getEnv("PULSELOG_TEST_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}

	t.Setenv("PULSELOG_TEST_KEY", "explicit")
	if got := getEnv("PULSELOG_TEST_KEY", "fallback"); got != "explicit" {
		t.Fatalf("expected explicit value, got %q", got)
	}
}

func TestResolveLogLevel(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  zerolog.Level
	}{
		{name: "debug", input: "debug", want: zerolog.DebugLevel},
		{name: "mixed case with spaces", input: "  WARN ", want: zerolog.WarnLevel},
		{name: "unknown falls back to info", input: "loud", want: zerolog.InfoLevel},
		{name: "empty falls back to info", input: "", want: zerolog.InfoLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := resolveLogLevel(tc.input); got != tc.want {
				t.Fatalf("resolveLogLevel(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
