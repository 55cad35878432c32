// Package alltime aggregates calculator totals across the years of a league, keyed by owner.
package alltime

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/calculator"
	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
)

// Pool is the per-owner totals over an all-time filter range.
type Pool struct {
	Filters filter.AllTimeFilters
	Owners  []string
	Totals  map[string]*calculator.Totals
	Index   *navigator.OwnerIndex
}

// NewPool resolves the filter and sums every included year's totals under the canonical
// owner of each team. Every canonical owner is present. It fails with model.ErrNoData when
// the range holds no qualifying matchup.
func NewPool(league *model.League, opts filter.Options) (*Pool, error) {
	f, err := filter.ForLeague(league, opts)
	if err != nil {
		return nil, err
	}
	idx := navigator.NewOwnerIndex(league)
	p := &Pool{
		Filters: f,
		Owners:  idx.CanonicalIDs(),
		Totals:  make(map[string]*calculator.Totals),
		Index:   idx,
	}
	for _, id := range p.Owners {
		p.Totals[id] = &calculator.Totals{}
	}

	games := 0
	for _, year := range navigator.YearsInRange(league, f) {
		for teamID, t := range calculator.TotalsFor(year, f.ForYear(year)) {
			ownerID, err := idx.OwnerForTeam(year, teamID)
			if err != nil {
				return nil, err
			}
			p.Totals[ownerID].Add(*t)
			games += t.Games
		}
	}
	if games == 0 {
		return nil, fmt.Errorf("%w: no qualifying matchups between %d week %d and %d week %d",
			model.ErrNoData, f.YearNumberStart, f.WeekNumberStart, f.YearNumberEnd, f.WeekNumberEnd)
	}
	return p, nil
}

// Project maps every owner's pooled totals to a value.
func (p *Pool) Project(fn func(*calculator.Totals) decimal.Decimal) map[string]decimal.Decimal {
	return calculator.Project(p.Totals, fn)
}

// Share expresses a pooled figure as each owner's percentage of the whole.
func (p *Pool) Share(fn func(*calculator.Totals) decimal.Decimal) map[string]decimal.Decimal {
	return calculator.Percentages(p.Project(fn), p.Owners)
}

func project(league *model.League, opts filter.Options, fn func(*calculator.Totals) decimal.Decimal) (map[string]decimal.Decimal, error) {
	p, err := NewPool(league, opts)
	if err != nil {
		return nil, err
	}
	return p.Project(fn), nil
}

func share(league *model.League, opts filter.Options, fn func(*calculator.Totals) decimal.Decimal) (map[string]decimal.Decimal, error) {
	p, err := NewPool(league, opts)
	if err != nil {
		return nil, err
	}
	return p.Share(fn), nil
}
