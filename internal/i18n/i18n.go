// Package i18n holds the translated strings shown by aura.
package i18n

import (
	"embed"
	"fmt"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/aura/internal/locale"
)

//go:embed data/*.toml
var tables embed.FS

var (
	cacheMu sync.Mutex
	cache   = map[string]map[string]string{}
)

// Bundle is the string table for one locale with English as fallback
type Bundle struct {
	Locale   string
	strings  map[string]string
	fallback map[string]string
}

// Load returns the bundle for the requested locale, resolved the same way
// catalogs are: exact key, base language, then English.
func Load(requested string) *Bundle {
	key := locale.Resolve(requested, has)
	b := &Bundle{Locale: key, fallback: table(locale.Default)}
	b.strings = table(key)
	return b
}

// T returns the string for key, falling back to English and then to the key itself
func (b *Bundle) T(key string) string {
	if s, ok := b.strings[key]; ok {
		return s
	}
	if s, ok := b.fallback[key]; ok {
		return s
	}
	return key
}

// F formats the string for key with args
func (b *Bundle) F(key string, args ...any) string {
	return fmt.Sprintf(b.T(key), args...)
}

// LanguageName is the English name of the bundle's language, used in prompts
func (b *Bundle) LanguageName() string {
	return b.T("language_name")
}

// DateLayout is the time layout used to group saved cards by day
func (b *Bundle) DateLayout() string {
	return b.T("date_layout")
}

func has(key string) bool {
	_, err := tables.Open(path(key))
	return err == nil
}

func path(key string) string {
	return "data/" + locale.Alias(key) + ".toml"
}

// table parses and caches the string table for key. A missing or broken
// table yields an empty map so lookups fall through to English.
func table(key string) map[string]string {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if t, ok := cache[key]; ok {
		return t
	}
	t := map[string]string{}
	if data, err := tables.ReadFile(path(key)); err == nil {
		if _, err := toml.Decode(string(data), &t); err != nil {
			t = map[string]string{}
		}
	}
	cache[key] = t
	return t
}
