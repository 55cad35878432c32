// Package filter resolves caller overrides into validated filters for one year or for a
// span of years.
package filter

import (
	"fmt"

	"github.com/kenzliang/leeger/internal/model"
)

// Options are the recognised overrides. Nil bounds fall back to the scope's defaults.
type Options struct {
	YearNumberStart   *int `json:"yearNumberStart,omitempty"`
	YearNumberEnd     *int `json:"yearNumberEnd,omitempty"`
	WeekNumberStart   *int `json:"weekNumberStart,omitempty"`
	WeekNumberEnd     *int `json:"weekNumberEnd,omitempty"`
	OnlyChampionship  bool `json:"onlyChampionship,omitempty"`
	OnlyPostSeason    bool `json:"onlyPostSeason,omitempty"`
	OnlyRegularSeason bool `json:"onlyRegularSeason,omitempty"`
}

// Int is a convenience for building Options literals.
func Int(v int) *int {
	return &v
}

// Phases holds the mutually exclusive phase restrictions.
type Phases struct {
	OnlyChampionship  bool
	OnlyPostSeason    bool
	OnlyRegularSeason bool
}

// IncludeMatchupTypes lists the matchup types a filter admits.
func (p Phases) IncludeMatchupTypes() []model.MatchupType {
	switch {
	case p.OnlyChampionship:
		return []model.MatchupType{model.Championship}
	case p.OnlyPostSeason:
		return []model.MatchupType{model.Playoff, model.Championship}
	case p.OnlyRegularSeason:
		return []model.MatchupType{model.RegularSeason}
	default:
		return []model.MatchupType{model.RegularSeason, model.Playoff, model.Championship}
	}
}

func (p Phases) validate() error {
	set := 0
	for _, b := range []bool{p.OnlyChampionship, p.OnlyPostSeason, p.OnlyRegularSeason} {
		if b {
			set++
		}
	}
	if set > 1 {
		return invalid("only one of 'onlyChampionship', 'onlyPostSeason', 'onlyRegularSeason' can be true")
	}
	return nil
}

func (o Options) phases() Phases {
	return Phases{
		OnlyChampionship:  o.OnlyChampionship,
		OnlyPostSeason:    o.OnlyPostSeason,
		OnlyRegularSeason: o.OnlyRegularSeason,
	}
}

// YearFilters is the resolved filter for a single year. Both week bounds are inclusive.
type YearFilters struct {
	Phases
	WeekNumberStart int
	WeekNumberEnd   int
}

// ForYear resolves opts against one year. Year bounds in opts do not apply here.
func ForYear(year *model.Year, opts Options) (YearFilters, error) {
	p := opts.phases()
	if err := p.validate(); err != nil {
		return YearFilters{}, err
	}
	if len(year.Weeks) == 0 {
		return YearFilters{}, invalid(fmt.Sprintf("year %d has no weeks", year.YearNumber))
	}

	start := year.Weeks[0].WeekNumber
	if opts.WeekNumberStart != nil {
		start = *opts.WeekNumberStart
	}
	end := year.Weeks[len(year.Weeks)-1].WeekNumber
	if opts.WeekNumberEnd != nil {
		end = *opts.WeekNumberEnd
	}

	if start < 1 {
		return YearFilters{}, invalid("'weekNumberStart' cannot be less than 1")
	}
	if end > len(year.Weeks) {
		return YearFilters{}, invalid("'weekNumberEnd' cannot be greater than the number of weeks in the year")
	}
	if start > end {
		return YearFilters{}, invalid("'weekNumberStart' cannot be greater than 'weekNumberEnd'")
	}

	return YearFilters{Phases: p, WeekNumberStart: start, WeekNumberEnd: end}, nil
}

// Options converts a resolved year filter back into overrides that select the same
// matchups of that year.
func (f YearFilters) Options() Options {
	return Options{
		WeekNumberStart:   Int(f.WeekNumberStart),
		WeekNumberEnd:     Int(f.WeekNumberEnd),
		OnlyChampionship:  f.OnlyChampionship,
		OnlyPostSeason:    f.OnlyPostSeason,
		OnlyRegularSeason: f.OnlyRegularSeason,
	}
}

// Contains reports whether a week number falls inside the bounds.
func (f YearFilters) Contains(weekNumber int) bool {
	return weekNumber >= f.WeekNumberStart && weekNumber <= f.WeekNumberEnd
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", model.ErrInvalidFilter, msg)
}
