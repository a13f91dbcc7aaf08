package geo

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/iiviie/gearheads/internal/log"
	"github.com/iiviie/gearheads/internal/models"
)

const (
	DefaultDebounce    = 400 * time.Millisecond
	DefaultMinQueryLen = 3
)

var (
	// ErrSuperseded is returned to a search that a newer search replaced
	ErrSuperseded = errors.New("geo: search superseded")
	// ErrClosed is returned once the picker has been closed
	ErrClosed = errors.New("geo: picker closed")
	// ErrNoCandidate is returned by Select for an index with no candidate
	ErrNoCandidate = errors.New("geo: no such candidate")
)

// Picker drives a type-ahead location search for one form. Each Search
// cancels the one before it, and only the newest query may publish results.
type Picker struct {
	searcher    Searcher
	debounce    time.Duration
	minQueryLen int

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	query   string
	results []Place
	closed  bool
}

// NewPicker creates a picker over searcher
func NewPicker(searcher Searcher, debounce time.Duration, minQueryLen int) *Picker {
	return &Picker{
		searcher:    searcher,
		debounce:    debounce,
		minQueryLen: minQueryLen,
	}
}

// Search replaces the current query. It waits out the debounce delay, runs the
// lookup and publishes the candidates unless a newer Search arrived first, in
// which case it returns ErrSuperseded. Queries shorter than the minimum length
// clear the candidates without a lookup. Lookup failures are logged and
// resolve to no candidates.
func (p *Picker) Search(ctx context.Context, query string) ([]Place, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.gen++
	gen := p.gen
	p.query = query

	if utf8.RuneCountInString(query) < p.minQueryLen {
		p.results = nil
		p.mu.Unlock()
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	timer := time.NewTimer(p.debounce)
	select {
	case <-ctx.Done():
		timer.Stop()
		return nil, p.abandoned(gen)
	case <-timer.C:
	}

	places, err := p.searcher.Search(ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return nil, ErrSuperseded
	}
	p.cancel = nil
	if p.closed {
		return nil, ErrClosed
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Warn.Printf("place search %q failed: %v", query, err)
		}
		p.results = nil
		return nil, nil
	}
	p.results = places
	return append([]Place(nil), places...), nil
}

// abandoned explains why a search stopped during the debounce wait
func (p *Picker) abandoned(gen uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return ErrSuperseded
	}
	if p.closed {
		return ErrClosed
	}
	// the caller's own context ended
	p.cancel = nil
	p.results = nil
	return context.Canceled
}

// Results returns the candidates of the newest completed query
func (p *Picker) Results() []Place {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Place(nil), p.results...)
}

// Query returns the newest query text
func (p *Picker) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Select picks candidate i, clears the candidate list and returns the parsed
// location
func (p *Picker) Select(i int) (models.Location, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.results) {
		return models.Location{}, ErrNoCandidate
	}
	loc, err := p.results[i].Location()
	if err != nil {
		return models.Location{}, err
	}
	p.results = nil
	p.query = loc.Name
	return loc, nil
}

// Close cancels any in-flight search. The picker cannot be used afterwards.
func (p *Picker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.results = nil
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}
