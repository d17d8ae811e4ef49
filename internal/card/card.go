package card

// Card represents one entry of a quote catalog
type Card struct {
	Index    int    // Position in the catalog the card was loaded from
	Title    string // Card title (current catalogs)
	Category string // Card category (legacy catalogs without titles)
	Quote    string // Descriptive text shown on the card face
	Image    string // Optional image path or URL
}

// Heading returns the title, or the category for legacy records
func (c Card) Heading() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Category
}

// HasImage reports whether the card has artwork to preload
func (c Card) HasImage() bool {
	return c.Image != ""
}
