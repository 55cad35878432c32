package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
)

// ScoringShare is each team's percentage of all points scored in scope.
func ScoringShare(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	f, err := filter.ForYear(year, opts)
	if err != nil {
		return nil, err
	}
	return Percentages(Project(TotalsFor(year, f), PointsOf), navigator.TeamIDs(year)), nil
}

// OpponentScoringShare is the percentage of all points in scope that were scored against
// each team.
func OpponentScoringShare(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	f, err := filter.ForYear(year, opts)
	if err != nil {
		return nil, err
	}
	return Percentages(Project(TotalsFor(year, f), OpponentPointsOf), navigator.TeamIDs(year)), nil
}

// MaxScoringShare is each team's best weekly share of that week's points.
func MaxScoringShare(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, MaxScoringShareOf)
}

// MinScoringShare is each team's worst weekly share of that week's points.
func MinScoringShare(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, MinScoringShareOf)
}

func MaxScoringShareOf(t *Totals) decimal.Decimal { return t.MaxScoringShare }
func MinScoringShareOf(t *Totals) decimal.Decimal { return t.MinScoringShare }
