// config_test.go - Tests fuer Environment-Konfiguration
package envconfig

import (
	"log/slog"
	"testing"
)

func TestVarTrimsQuotesAndSpace(t *testing.T) {
	cases := map[string]string{
		"  value  ":  "value",
		"\"quoted\"": "quoted",
		"'single'":   "single",
		"plain":      "plain",
	}

	for input, want := range cases {
		t.Setenv("LORAKIT_TEST", input)
		if got := Var("LORAKIT_TEST"); got != want {
			t.Errorf("Var(%q) = %q, erwartet %q", input, got, want)
		}
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
	}

	for input, want := range cases {
		t.Setenv("LORAKIT_DEBUG", input)
		if got := LogLevel(); got != want {
			t.Errorf("LogLevel(%q) = %v, erwartet %v", input, got, want)
		}
	}
}

func TestBool(t *testing.T) {
	get := Bool("LORAKIT_TEST_BOOL")
	withDefault := BoolWithDefault("LORAKIT_TEST_BOOL")

	t.Setenv("LORAKIT_TEST_BOOL", "")
	if get() {
		t.Error("Bool = true, erwartet Default false")
	}
	if !withDefault(true) {
		t.Error("BoolWithDefault = false, erwartet Default true")
	}

	t.Setenv("LORAKIT_TEST_BOOL", "1")
	if !get() {
		t.Error("Bool = false, erwartet true")
	}

	t.Setenv("LORAKIT_TEST_BOOL", "false")
	if withDefault(true) {
		t.Error("BoolWithDefault = true, erwartet false")
	}

	// Nicht parsebare Werte gelten als gesetzt
	t.Setenv("LORAKIT_TEST_BOOL", "yes")
	if !get() {
		t.Error("Bool = false, erwartet true bei nicht parsebarem Wert")
	}
}

func TestString(t *testing.T) {
	get := String("LORAKIT_TEST_STRING")

	t.Setenv("LORAKIT_TEST_STRING", "")
	if got := get(); got != "" {
		t.Errorf("String = %q, erwartet leer", got)
	}

	t.Setenv("LORAKIT_TEST_STRING", "'adapter'")
	if got := get(); got != "adapter" {
		t.Errorf("String = %q, erwartet adapter", got)
	}
}

func TestUint(t *testing.T) {
	get := Uint("LORAKIT_TEST_UINT", 4)

	t.Setenv("LORAKIT_TEST_UINT", "")
	if got := get(); got != 4 {
		t.Errorf("Uint = %d, erwartet Default 4", got)
	}

	t.Setenv("LORAKIT_TEST_UINT", "16")
	if got := get(); got != 16 {
		t.Errorf("Uint = %d, erwartet 16", got)
	}

	t.Setenv("LORAKIT_TEST_UINT", "not-a-number")
	if got := get(); got != 4 {
		t.Errorf("Uint = %d, erwartet Default 4 bei ungueltigem Wert", got)
	}
}
