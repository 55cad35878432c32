package filter

import (
	"fmt"

	"github.com/kenzliang/leeger/internal/model"
)

// AllTimeFilters is the resolved filter for a span of years. The week bounds apply to the
// first and last year of the span; years in between are included whole.
type AllTimeFilters struct {
	Phases
	YearNumberStart int
	WeekNumberStart int
	YearNumberEnd   int
	WeekNumberEnd   int
}

// ForLeague resolves opts against a league.
func ForLeague(league *model.League, opts Options) (AllTimeFilters, error) {
	p := opts.phases()
	if err := p.validate(); err != nil {
		return AllTimeFilters{}, err
	}
	numbers := league.SortedYearNumbers()
	if len(numbers) == 0 {
		return AllTimeFilters{}, invalid("league has no years")
	}

	yearStart := numbers[0]
	if opts.YearNumberStart != nil {
		yearStart = *opts.YearNumberStart
	}
	yearEnd := numbers[len(numbers)-1]
	if opts.YearNumberEnd != nil {
		yearEnd = *opts.YearNumberEnd
	}
	if yearStart > yearEnd {
		return AllTimeFilters{}, invalid("'yearNumberStart' cannot be greater than 'yearNumberEnd'")
	}

	startYear, ok := league.YearByNumber(yearStart)
	if !ok {
		return AllTimeFilters{}, fmt.Errorf("%w: year %d", model.ErrDoesNotExist, yearStart)
	}
	endYear, ok := league.YearByNumber(yearEnd)
	if !ok {
		return AllTimeFilters{}, fmt.Errorf("%w: year %d", model.ErrDoesNotExist, yearEnd)
	}
	if len(startYear.Weeks) == 0 || len(endYear.Weeks) == 0 {
		return AllTimeFilters{}, invalid("boundary years must have at least one week")
	}

	weekStart := startYear.Weeks[0].WeekNumber
	if opts.WeekNumberStart != nil {
		weekStart = *opts.WeekNumberStart
	}
	weekEnd := endYear.Weeks[len(endYear.Weeks)-1].WeekNumber
	if opts.WeekNumberEnd != nil {
		weekEnd = *opts.WeekNumberEnd
	}

	if weekStart < 1 {
		return AllTimeFilters{}, invalid("'weekNumberStart' cannot be less than 1")
	}
	if weekEnd > len(endYear.Weeks) {
		return AllTimeFilters{}, invalid("'weekNumberEnd' cannot be greater than the number of weeks in the year")
	}
	if weekStart > len(startYear.Weeks) {
		return AllTimeFilters{}, invalid("'weekNumberStart' cannot be greater than the number of weeks in the starting year")
	}
	if weekStart > weekEnd && yearStart == yearEnd {
		return AllTimeFilters{}, invalid("'weekNumberStart' cannot be greater than 'weekNumberEnd' within the same year")
	}

	return AllTimeFilters{
		Phases:          p,
		YearNumberStart: yearStart,
		WeekNumberStart: weekStart,
		YearNumberEnd:   yearEnd,
		WeekNumberEnd:   weekEnd,
	}, nil
}

// IncludesYear reports whether the year number is inside the span.
func (f AllTimeFilters) IncludesYear(yearNumber int) bool {
	return yearNumber >= f.YearNumberStart && yearNumber <= f.YearNumberEnd
}

// ForYear derives the slice of the span that applies to one year.
func (f AllTimeFilters) ForYear(year *model.Year) YearFilters {
	out := YearFilters{Phases: f.Phases, WeekNumberStart: 1, WeekNumberEnd: 0}
	if len(year.Weeks) > 0 {
		out.WeekNumberStart = year.Weeks[0].WeekNumber
		out.WeekNumberEnd = year.Weeks[len(year.Weeks)-1].WeekNumber
	}
	if year.YearNumber == f.YearNumberStart {
		out.WeekNumberStart = f.WeekNumberStart
	}
	if year.YearNumber == f.YearNumberEnd {
		out.WeekNumberEnd = f.WeekNumberEnd
	}
	return out
}

// AsMap returns the resolved filter with the admitted matchup types spelled out.
func (f AllTimeFilters) AsMap() map[string]any {
	types := f.IncludeMatchupTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.String())
	}
	return map[string]any{
		"yearNumberStart":     f.YearNumberStart,
		"weekNumberStart":     f.WeekNumberStart,
		"yearNumberEnd":       f.YearNumberEnd,
		"weekNumberEnd":       f.WeekNumberEnd,
		"onlyChampionship":    f.OnlyChampionship,
		"onlyPostSeason":      f.OnlyPostSeason,
		"onlyRegularSeason":   f.OnlyRegularSeason,
		"includeMatchupTypes": names,
	}
}
