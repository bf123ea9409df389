package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBundles(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"en", "ar"}, c.Languages())
}

func TestErrorMessageBoundCode(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t,
		"You are not allowed to view the monthly summary.",
		c.ErrorMessage("en", "monthlySummaryForbidden"))
	assert.Equal(t,
		"غير مسموح لك بعرض الملخص الشهري.",
		c.ErrorMessage("ar", "monthlySummaryForbidden"))
}

func TestErrorMessageFallsBackToGeneral(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	general := c.Lookup("en", GeneralErrorKey)
	assert.Equal(t, general, c.ErrorMessage("en", "someUnknownCode"))
	assert.Equal(t, general, c.ErrorMessage("en", ""))
}

func TestLookupFallsBackToDefaultLanguage(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, c.Lookup("en", "general"), c.Lookup("fr", "general"))
	assert.Equal(t, "no.such.key", c.Lookup("en", "no.such.key"))
}
