package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	lang, err := Parse("en")
	require.NoError(t, err)
	assert.Equal(t, English, lang)

	lang, err = Parse("hi")
	require.NoError(t, err)
	assert.Equal(t, Hindi, lang)

	_, err = Parse("fr")
	assert.Error(t, err)
}

func TestTranslationsCoverBothLanguages(t *testing.T) {
	for key := range labels[English] {
		assert.Contains(t, labels[Hindi], key, "hindi label missing for %q", key)
	}
	for key := range labels[Hindi] {
		assert.Contains(t, labels[English], key, "english label missing for %q", key)
	}
}

func TestTFallsBack(t *testing.T) {
	assert.Equal(t, "Credit Readiness", T(English, "result.credit_readiness"))
	assert.NotEqual(t, T(English, "result.credit_readiness"), T(Hindi, "result.credit_readiness"))

	// Unknown keys stay visible instead of rendering blank
	assert.Equal(t, "no.such.key", T(English, "no.such.key"))
	assert.Equal(t, "no.such.key", T(Hindi, "no.such.key"))
}
