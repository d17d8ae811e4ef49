package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":            "",
		"en":          "en",
		"EN":          "en",
		"zh_tw":       "zh-TW",
		"zh-TW":       "zh-TW",
		"en_US.UTF-8": "en-US",
		" es ":        "es",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "Normalize(%q)", in)
	}
}

func TestBase(t *testing.T) {
	assert.Equal(t, "zh", Base("zh-TW"))
	assert.Equal(t, "es", Base("es"))
	assert.Equal(t, "pt", Base("pt_BR"))
}

func TestResolveOrder(t *testing.T) {
	keys := map[string]bool{"en": true, "es": true, "zh-TW": true, "zh": true}
	has := func(k string) bool { return keys[k] }

	assert.Equal(t, "zh-TW", Resolve("zh-TW", has), "exact match wins")
	assert.Equal(t, "zh", Resolve("zh-HK", has), "base language second")
	assert.Equal(t, "es", Resolve("es-MX", has))
	assert.Equal(t, "en", Resolve("fr-FR", has), "default last")
	assert.Equal(t, "en", Resolve("", has))
}

func TestResolveAlwaysTerminates(t *testing.T) {
	none := func(string) bool { return false }
	for _, code := range []string{"en", "es", "zh-TW", "xx-YY", ""} {
		assert.Equal(t, Default, Resolve(code, none))
	}
}

func TestAlias(t *testing.T) {
	assert.Equal(t, "zh-TW", Alias("zh"))
	assert.Equal(t, "es", Alias("es"))
}
