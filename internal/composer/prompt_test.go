package composer

import (
	"strings"
	"testing"
)

func TestComposeDefault(t *testing.T) {
	got := Compose("You are a director.", "", SafetyMedium, true)

	if !strings.HasPrefix(got, "You are a director.\n\n") {
		t.Errorf("instruction prefix missing: %q", got)
	}
	if !strings.Contains(got, "[SECURITY PROTOCOL: MEDIUM SAFETY]") {
		t.Errorf("safety banner missing: %q", got)
	}
	if !strings.Contains(got, "[ENCRYPTION: AES-Q2040]") {
		t.Errorf("encryption banner missing: %q", got)
	}
}

func TestComposeOverride(t *testing.T) {
	got := Compose("default text", "You are a pirate poet.", SafetyHigh, false)

	if strings.Contains(got, "default text") {
		t.Errorf("override should replace the default: %q", got)
	}
	if !strings.HasPrefix(got, "You are a pirate poet.") {
		t.Errorf("override missing: %q", got)
	}
	if !strings.Contains(got, "[SECURITY PROTOCOL: HIGH SAFETY]") {
		t.Errorf("safety banner missing: %q", got)
	}
	if !strings.Contains(got, "[ENCRYPTION: NONE]") {
		t.Errorf("encryption-off banner missing: %q", got)
	}
}

func TestSafetyLevelValid(t *testing.T) {
	for _, s := range []SafetyLevel{SafetyLow, SafetyMedium, SafetyHigh} {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if SafetyLevel("EXTREME").Valid() {
		t.Error("unknown level should be invalid")
	}
}
