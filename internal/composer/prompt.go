// Package composer assembles the final system instruction handed to the
// generation capability: the engine's default instruction (or the user's
// override) followed by the fixed security/encryption banner lines.
package composer

import "fmt"

// SafetyLevel is the coarse safety setting encoded into the banner.
type SafetyLevel string

const (
	SafetyLow    SafetyLevel = "LOW"
	SafetyMedium SafetyLevel = "MEDIUM"
	SafetyHigh   SafetyLevel = "HIGH"
)

// Valid reports whether s is one of the three known levels.
func (s SafetyLevel) Valid() bool {
	switch s {
	case SafetyLow, SafetyMedium, SafetyHigh:
		return true
	}
	return false
}

const encryptionLabel = "AES-Q2040"

// Compose returns the final instruction: override when non-empty,
// otherwise defaultInstruction, followed by the banner lines.
func Compose(defaultInstruction, override string, safety SafetyLevel, encryption bool) string {
	instruction := defaultInstruction
	if override != "" {
		instruction = override
	}

	enc := "NONE"
	if encryption {
		enc = encryptionLabel
	}

	return fmt.Sprintf("%s\n\n[SECURITY PROTOCOL: %s SAFETY]\n[ENCRYPTION: %s]", instruction, safety, enc)
}
