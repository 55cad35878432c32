package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

// PointsScored sums each team's scores over qualifying matchups.
func PointsScored(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, PointsOf)
}

// PointsScoredPerGame is PointsScored divided by games played.
func PointsScoredPerGame(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, PointsPerGameOf)
}

// OpponentPointsScored sums the scores put up against each team.
func OpponentPointsScored(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, OpponentPointsOf)
}

// OpponentPointsScoredPerGame is OpponentPointsScored divided by games played.
func OpponentPointsScoredPerGame(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, OpponentPointsPerGameOf)
}

// MaxScore is each team's highest qualifying score.
func MaxScore(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, MaxScoreOf)
}

// MinScore is each team's lowest qualifying score.
func MinScore(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, MinScoreOf)
}

func PointsOf(t *Totals) decimal.Decimal         { return t.Points }
func OpponentPointsOf(t *Totals) decimal.Decimal { return t.OpponentPoints }
func MaxScoreOf(t *Totals) decimal.Decimal       { return t.MaxScore }
func MinScoreOf(t *Totals) decimal.Decimal       { return t.MinScore }

func PointsPerGameOf(t *Totals) decimal.Decimal {
	return Ratio(t.Points, GamesOf(t))
}

func OpponentPointsPerGameOf(t *Totals) decimal.Decimal {
	return Ratio(t.OpponentPoints, GamesOf(t))
}
