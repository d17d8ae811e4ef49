// Package validator checks catalog files before they are dropped into the
// catalog override directory.
package validator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/aura/internal/catalog"
	"github.com/arcanaland/aura/internal/locale"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

type Validator struct {
	CatalogPath string
	Results     ValidationResults

	file catalog.File
}

func NewValidator(catalogPath string) *Validator {
	return &Validator{
		CatalogPath: catalogPath,
		Results:     ValidationResults{},
	}
}

// Validate parses the catalog and records every problem found. The error is
// only set when the file cannot be read or parsed at all.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateToml(); err != nil {
		return v.Results, err
	}

	v.validateFileName()
	v.validateCards()
	v.validateImages()
	v.validateTitles()

	return v.Results, nil
}

func (v *Validator) validateToml() error {
	if _, err := os.Stat(v.CatalogPath); os.IsNotExist(err) {
		return fmt.Errorf("catalog file not found: %s", v.CatalogPath)
	}

	meta, err := toml.DecodeFile(v.CatalogPath, &v.file)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", filepath.Base(v.CatalogPath), err)
	}

	for _, key := range meta.Undecoded() {
		v.addWarning("unknown key %q", key.String())
	}
	return nil
}

// validateFileName checks the file is named after a locale the app can select
func (v *Validator) validateFileName() {
	name := filepath.Base(v.CatalogPath)
	if filepath.Ext(name) != ".toml" {
		v.addError("catalog files must use the .toml extension: %s", name)
		return
	}

	key := locale.Normalize(strings.TrimSuffix(name, ".toml"))
	if !isSupported(key) && !isSupported(locale.Base(key)) {
		v.addWarning("%s does not match a supported locale (%s); it is only used when requested explicitly",
			name, strings.Join(locale.Supported, ", "))
	}
}

func isSupported(key string) bool {
	key = locale.Alias(key)
	for _, s := range locale.Supported {
		if s == key {
			return true
		}
	}
	return false
}

// validateCards checks that every entry has the fields a draw needs
func (v *Validator) validateCards() {
	if len(v.file.Cards) == 0 {
		v.addError("no [[cards]] entries found")
		return
	}

	usable := 0
	for i, e := range v.file.Cards {
		if strings.TrimSpace(e.Quote) == "" {
			v.addError("card %d: quote is required (the entry would be skipped)", i+1)
		} else {
			usable++
		}
		switch {
		case e.Title == "" && e.Category == "":
			v.addError("card %d: title is required", i+1)
		case e.Title != "" && e.Category != "":
			v.addWarning("card %d: both title and category are set; title is shown", i+1)
		case e.Category != "":
			v.addWarning("card %d: category is a legacy field; prefer title", i+1)
		}
	}

	if usable == 0 {
		v.addError("catalog has no usable cards and would fall back to the default")
	}
}

// validateImages checks that local images exist relative to the catalog file
func (v *Validator) validateImages() {
	baseDir := filepath.Dir(v.CatalogPath)
	for i, e := range v.file.Cards {
		if e.Image == "" || strings.HasPrefix(e.Image, "http://") || strings.HasPrefix(e.Image, "https://") {
			continue
		}

		path := e.Image
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			v.addError("card %d: image not found: %s", i+1, e.Image)
			continue
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".png", ".jpg", ".jpeg", ".gif":
		default:
			v.addWarning("card %d: %s is not a PNG, JPEG or GIF and will not be rendered", i+1, e.Image)
		}
	}
}

// validateTitles warns about duplicate titles, which make saved cards ambiguous
func (v *Validator) validateTitles() {
	seen := make(map[string]int)
	for i, e := range v.file.Cards {
		title := strings.ToLower(strings.TrimSpace(e.Title))
		if title == "" {
			continue
		}
		if first, ok := seen[title]; ok {
			v.addWarning("card %d: duplicate title %q (first used by card %d)", i+1, e.Title, first)
			continue
		}
		seen[title] = i + 1
	}
}

func (v *Validator) addError(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) addWarning(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}
