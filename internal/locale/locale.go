// Package locale resolves requested locale codes against the set of bundled
// catalogs and string tables.
package locale

import "strings"

// Default is the locale every lookup ends on
const Default = "en"

// Supported lists the locales bundled with aura
var Supported = []string{"en", "es", "zh-TW"}

// aliases maps base language keys onto a bundled regional file
var aliases = map[string]string{
	"zh": "zh-TW",
}

// Normalize canonicalizes a locale code: "zh_tw" becomes "zh-TW", "EN" becomes "en"
func Normalize(code string) string {
	code = strings.TrimSpace(strings.ReplaceAll(code, "_", "-"))
	if code == "" {
		return ""
	}
	// Drop encodings such as "en_US.UTF-8"
	if i := strings.IndexAny(code, ".@"); i >= 0 {
		code = code[:i]
	}
	parts := strings.SplitN(code, "-", 2)
	base := strings.ToLower(parts[0])
	if len(parts) == 1 || parts[1] == "" {
		return base
	}
	return base + "-" + strings.ToUpper(parts[1])
}

// Base returns the language part of a locale code ("zh-TW" -> "zh")
func Base(code string) string {
	code = Normalize(code)
	if i := strings.Index(code, "-"); i >= 0 {
		return code[:i]
	}
	return code
}

// Alias returns the bundled key a base language is stored under, or the key itself
func Alias(key string) string {
	if target, ok := aliases[key]; ok {
		return target
	}
	return key
}

// Resolve picks the key to load for a requested locale: the exact key first,
// then its base language, then Default. has reports whether a key is available.
func Resolve(requested string, has func(string) bool) string {
	requested = Normalize(requested)
	if requested != "" && has(requested) {
		return requested
	}
	if base := Base(requested); base != "" && has(base) {
		return base
	}
	return Default
}
