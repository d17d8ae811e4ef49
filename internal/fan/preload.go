package fan

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/arcanaland/aura/internal/card"
	"github.com/arcanaland/aura/internal/render"
)

// Source opens card artwork by reference (file path or http(s) URL)
type Source interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// DefaultSource reads local files and fetches http(s) URLs
type DefaultSource struct {
	Client *http.Client
}

// Open implements Source
func (s DefaultSource) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return os.Open(ref)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetching %s: %s", ref, resp.Status)
	}
	return resp.Body, nil
}

// Preloader loads card artwork ahead of a flip. Results are memoized by
// catalog index, so a card is fetched at most once per successful load.
type Preloader struct {
	source        Source
	width, height int

	mu     sync.Mutex
	loaded map[int]string
	epoch  int
}

// NewPreloader creates a preloader rendering art at width x height cells
func NewPreloader(source Source, width, height int) *Preloader {
	if source == nil {
		source = DefaultSource{}
	}
	return &Preloader{
		source: source,
		width:  width,
		height: height,
		loaded: make(map[int]string),
	}
}

// Loaded reports whether the card at index is ready to be shown
func (p *Preloader) Loaded(index int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.loaded[index]
	return ok
}

// Art returns the rendered art for index; cards without images have empty art
func (p *Preloader) Art(index int) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	art, ok := p.loaded[index]
	return art, ok
}

// Load fetches and renders the card's image unless it is already loaded.
// Failures are not remembered so the next attempt fetches again.
func (p *Preloader) Load(ctx context.Context, c card.Card) (string, error) {
	p.mu.Lock()
	art, ok := p.loaded[c.Index]
	epoch := p.epoch
	p.mu.Unlock()
	if ok {
		return art, nil
	}

	if c.HasImage() {
		rc, err := p.source.Open(ctx, c.Image)
		if err != nil {
			return "", fmt.Errorf("loading image for card %d: %w", c.Index, err)
		}
		defer rc.Close()

		art, err = render.DecodeANSI(rc, p.width, p.height)
		if err != nil {
			return "", fmt.Errorf("loading image for card %d: %w", c.Index, err)
		}
	}

	p.mu.Lock()
	if p.epoch == epoch {
		p.loaded[c.Index] = art
	}
	p.mu.Unlock()
	return art, nil
}

// Reset forgets everything loaded. Loads still in flight are not remembered.
func (p *Preloader) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = make(map[int]string)
	p.epoch++
}
