package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryStringMapsToABinding(t *testing.T) {
	for s, name := range GlobalKeyStringsMap {
		_, ok := GlobalkeyBindings[name]
		assert.True(t, ok, "string %q maps to key %v with no binding", s, name)
	}
}

func TestQuickActionKeysInGlobalMap(t *testing.T) {
	assert.Equal(t, KeyQuickOne, GlobalKeyStringsMap["1"])
	assert.Equal(t, KeyQuickFour, GlobalKeyStringsMap["4"])
}

func TestLogoutIsShifted(t *testing.T) {
	// Lowercase l is horizontal navigation; logout must stay on the capital.
	assert.Equal(t, KeyArrowRight, GlobalKeyStringsMap["l"])
	assert.Equal(t, KeyLogout, GlobalKeyStringsMap["L"])
}

func TestGlobalKeyBindings_StatusLineLabels(t *testing.T) {
	if got := GlobalkeyBindings[KeyEnter].Help().Desc; got != "select" {
		t.Fatalf("KeyEnter help desc = %q, want %q", got, "select")
	}
	if got := GlobalkeyBindings[KeyWorkspace].Help().Desc; got != "workspace" {
		t.Fatalf("KeyWorkspace help desc = %q, want %q", got, "workspace")
	}
}
