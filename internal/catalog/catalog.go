// Package catalog loads the per-locale list of cards a draw is made from.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/locale"
)

//go:embed data/*.toml
var bundled embed.FS

// ErrEmpty is returned when a catalog file holds no usable cards
var ErrEmpty = errors.New("catalog has no cards")

// Catalog is the ordered list of cards for one locale
type Catalog struct {
	Locale string
	Cards  []card.Card
}

// Len returns the number of cards in the catalog
func (c *Catalog) Len() int {
	return len(c.Cards)
}

// Card returns the card at catalog index i
func (c *Catalog) Card(i int) (card.Card, error) {
	if i < 0 || i >= len(c.Cards) {
		return card.Card{}, fmt.Errorf("card index %d out of range (0-%d)", i, len(c.Cards)-1)
	}
	return c.Cards[i], nil
}

// File is the on-disk shape of a catalog
type File struct {
	Cards []Entry `toml:"cards"`
}

// Entry is one card record. Legacy catalogs carry category instead of title.
type Entry struct {
	Title    string `toml:"title"`
	Category string `toml:"category"`
	Quote    string `toml:"quote"`
	Image    string `toml:"image"`
}

// Loader resolves locales to catalogs, preferring files in Dir over the bundled ones
type Loader struct {
	Dir    string
	logger *zap.Logger
}

// NewLoader creates a loader. dir may be empty to use only bundled catalogs.
func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{Dir: dir, logger: logger}
}

// Has reports whether a catalog exists for the exact key
func (l *Loader) Has(key string) bool {
	if key == "" {
		return false
	}
	if l.overridePath(key) != "" {
		return true
	}
	_, err := bundled.Open(bundledPath(key))
	return err == nil
}

// Resolve returns the key Load would use for the requested locale
func (l *Loader) Resolve(requested string) string {
	return locale.Resolve(requested, l.Has)
}

// Load returns the catalog for the requested locale. A catalog that fails to
// load, or has no cards, is replaced by the bundled default.
func (l *Loader) Load(requested string) (*Catalog, error) {
	key := l.Resolve(requested)

	c, err := l.load(key)
	if err == nil {
		return c, nil
	}
	l.logger.Warn("catalog load failed, using default",
		zap.String("requested", requested),
		zap.String("resolved", key),
		zap.Error(err))

	c, err = loadBundled(locale.Default)
	if err != nil {
		return nil, fmt.Errorf("error loading default catalog: %w", err)
	}
	return c, nil
}

// load reads the catalog for key from the override directory or the bundle
func (l *Loader) load(key string) (*Catalog, error) {
	if path := l.overridePath(key); path != "" {
		var f File
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", path, err)
		}
		return build(key, f, filepath.Dir(path))
	}
	return loadBundled(key)
}

// overridePath returns the catalog file for key in Dir, or "" when there is none
func (l *Loader) overridePath(key string) string {
	if l.Dir == "" {
		return ""
	}
	for _, name := range []string{key, locale.Alias(key)} {
		path := filepath.Join(l.Dir, name+".toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func bundledPath(key string) string {
	return "data/" + locale.Alias(key) + ".toml"
}

func loadBundled(key string) (*Catalog, error) {
	data, err := bundled.ReadFile(bundledPath(key))
	if err != nil {
		return nil, fmt.Errorf("no bundled catalog for %s: %w", key, err)
	}
	var f File
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("error parsing bundled catalog %s: %w", key, err)
	}
	return build(key, f, "")
}

// build converts file entries to cards, skipping entries without text.
// Relative image paths are resolved against baseDir when it is set.
func build(key string, f File, baseDir string) (*Catalog, error) {
	c := &Catalog{Locale: key}
	for _, e := range f.Cards {
		if strings.TrimSpace(e.Quote) == "" {
			continue
		}
		c.Cards = append(c.Cards, card.Card{
			Index:    len(c.Cards),
			Title:    e.Title,
			Category: e.Category,
			Quote:    e.Quote,
			Image:    resolveImage(e.Image, baseDir),
		})
	}
	if len(c.Cards) == 0 {
		return nil, fmt.Errorf("%s: %w", key, ErrEmpty)
	}
	return c, nil
}

func resolveImage(image, baseDir string) string {
	if image == "" || baseDir == "" || filepath.IsAbs(image) || isURL(image) {
		return image
	}
	return filepath.Join(baseDir, image)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
