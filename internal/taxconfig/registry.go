package taxconfig

import (
	"fmt"
	"maps"
	"slices"
	"sync/atomic"
)

// Registry is a validated, read-only set of tax years.
type Registry struct {
	years map[int]Config
}

// Resolution is what a calculation needs from the table for one taxpayer.
type Resolution struct {
	Year     int
	Category string
	PTKP     int64
	Brackets []Bracket
}

// NewRegistry validates every config. A later config for the same year replaces an earlier one.
func NewRegistry(configs ...Config) (*Registry, error) {
	years := make(map[int]Config, len(configs))
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		years[c.Year] = c.clone()
	}
	return &Registry{years: years}, nil
}

// Config returns a copy of the table for year.
func (r *Registry) Config(year int) (Config, error) {
	c, ok := r.years[year]
	if !ok {
		return Config{}, fmt.Errorf("%w: %d", ErrUnknownTaxYear, year)
	}
	return c.clone(), nil
}

func (r *Registry) Resolve(year int, profile Profile) (Resolution, error) {
	c, ok := r.years[year]
	if !ok {
		return Resolution{}, fmt.Errorf("%w: %d", ErrUnknownTaxYear, year)
	}
	return c.Resolve(profile)
}

// Resolve picks the PTKP and brackets that apply to profile in this year.
func (c Config) Resolve(profile Profile) (Resolution, error) {
	if err := profile.validate(); err != nil {
		return Resolution{}, err
	}
	cat := profile.Category()
	return Resolution{
		Year:     c.Year,
		Category: cat,
		PTKP:     c.PTKP[cat],
		Brackets: slices.Clone(c.Brackets),
	}, nil
}

// Years returns the configured years in ascending order.
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.years))
	for y := range r.years {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// With returns a new registry holding r's years plus the given configs.
func (r *Registry) With(configs ...Config) (*Registry, error) {
	all := make([]Config, 0, len(r.years)+len(configs))
	for _, y := range r.Years() {
		all = append(all, r.years[y])
	}
	all = append(all, configs...)
	return NewRegistry(all...)
}

func (c Config) clone() Config {
	out := c
	out.PTKP = maps.Clone(c.PTKP)
	out.Brackets = slices.Clone(c.Brackets)
	out.BPJS = slices.Clone(c.BPJS)
	return out
}

// Store hands out the current registry snapshot. Publish swaps in a new one;
// snapshots already handed out are never modified.
type Store struct {
	current atomic.Pointer[Registry]
}

func NewStore(r *Registry) *Store {
	s := &Store{}
	s.current.Store(r)
	return s
}

func (s *Store) Current() *Registry {
	return s.current.Load()
}

// Publish validates cfg, merges it into the current snapshot and swaps it in.
func (s *Store) Publish(cfg Config) (*Registry, error) {
	for {
		old := s.current.Load()
		next, err := old.With(cfg)
		if err != nil {
			return nil, err
		}
		if s.current.CompareAndSwap(old, next) {
			return next, nil
		}
	}
}

func (s *Store) Resolve(year int, profile Profile) (Resolution, error) {
	return s.Current().Resolve(year, profile)
}

func (s *Store) Config(year int) (Config, error) {
	return s.Current().Config(year)
}
