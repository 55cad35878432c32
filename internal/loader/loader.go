// Package loader defines how leagues are brought in from outside sources and the shared
// bookkeeping every source needs.
package loader

import (
	"context"
	"fmt"
	"sort"

	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/validate"
)

// Loader produces a League from some source.
type Loader interface {
	LoadLeague(ctx context.Context) (*model.League, error)
	// OwnerNames lists the owner names seen in each year, before alias resolution.
	OwnerNames(ctx context.Context) (map[int][]string, error)
}

// Settings are the inputs common to every loader.
type Settings struct {
	LeagueID string
	Years    []int
	// OwnerAliases maps the name an owner should be known by to the other names they have
	// used, e.g. {"Alice": {"Ali", "A. Smith"}}.
	OwnerAliases map[string][]string
	// LeagueName overrides the name found in the source.
	LeagueName string
	// SkipValidation returns the league without structural checks.
	SkipValidation bool
}

// Base holds the bookkeeping shared by loaders.
type Base struct {
	LeagueID string
	Years    []int
	Owners   *OwnerRegistry

	leagueName     string
	skipValidation bool
	namesByYear    map[int]string
}

// NewBase checks the settings and sorts the requested years.
func NewBase(s Settings) (*Base, error) {
	if len(s.Years) == 0 {
		return nil, fmt.Errorf("%w: no years given to load league with id %q", model.ErrLeagueLoader, s.LeagueID)
	}
	years := append([]int(nil), s.Years...)
	sort.Ints(years)
	for i := 1; i < len(years); i++ {
		if years[i] == years[i-1] {
			return nil, fmt.Errorf("%w: year %d requested twice", model.ErrLeagueLoader, years[i])
		}
	}
	return &Base{
		LeagueID:       s.LeagueID,
		Years:          years,
		Owners:         NewOwnerRegistry(s.OwnerAliases),
		leagueName:     s.LeagueName,
		skipValidation: s.SkipValidation,
		namesByYear:    make(map[int]string),
	}, nil
}

// RecordLeagueName remembers the league's name in a given year.
func (b *Base) RecordLeagueName(year int, name string) {
	if name != "" {
		b.namesByYear[year] = name
	}
}

// LeagueName is the configured name, else the name of the most recent loaded year.
func (b *Base) LeagueName() (string, error) {
	if b.leagueName != "" {
		return b.leagueName, nil
	}
	latest, found := 0, false
	for y := range b.namesByYear {
		if !found || y > latest {
			latest, found = y, true
		}
	}
	if !found {
		return "", fmt.Errorf("%w: no league name given and none found in the source", model.ErrLeagueLoader)
	}
	return b.namesByYear[latest], nil
}

// CheckRetrieved fails unless one league was retrieved per requested year.
func (b *Base) CheckRetrieved(retrieved int) error {
	if retrieved != len(b.Years) {
		return fmt.Errorf("%w: expected to retrieve %d league/s, got %d league/s", model.ErrLeagueLoader, len(b.Years), retrieved)
	}
	return nil
}

// Build assembles the loaded years into a League, sorted by year, and validates it.
func (b *Base) Build(years []model.Year) (*model.League, error) {
	if err := b.CheckRetrieved(len(years)); err != nil {
		return nil, err
	}
	name, err := b.LeagueName()
	if err != nil {
		return nil, err
	}
	sorted := append([]model.Year(nil), years...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].YearNumber < sorted[j].YearNumber })

	league := &model.League{Name: name, Owners: b.Owners.Owners(), Years: sorted}
	if !b.skipValidation {
		if err := validate.League(league); err != nil {
			return nil, err
		}
	}
	return league, nil
}
