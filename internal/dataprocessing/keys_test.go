package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyNormalizer_Fold(t *testing.T) {
	keys := NewKeyNormalizer(true)

	assert.Equal(t, keys.Key("Kabul"), keys.Key("  kabul "))
	assert.Equal(t, keys.Key("KABUL"), keys.Key("Kabul"))
	assert.Equal(t, keys.Key("Kunar Province"), keys.Key("kunar \t province"))
	assert.Equal(t, keys.Key("H\u00e9rat"), keys.Key("He\u0301rat"))
	assert.NotEqual(t, keys.Key("Kabul"), keys.Key("Kunar"))

	assert.Equal(t, "Kabul", keys.Display("  Kabul "))
}

func TestKeyNormalizer_Exact(t *testing.T) {
	keys := NewKeyNormalizer(false)

	assert.NotEqual(t, keys.Key("Kabul"), keys.Key("kabul"))
	assert.NotEqual(t, keys.Key("Kabul"), keys.Key("Kabul "))
	assert.Equal(t, " Kabul", keys.Display(" Kabul"))
}
