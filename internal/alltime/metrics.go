package alltime

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/calculator"
	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

func Wins(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.WinsOf)
}

func Losses(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.LossesOf)
}

func Ties(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.TiesOf)
}

// WinPercentage is recomputed from the pooled record, not averaged over years.
func WinPercentage(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.WinPercentageOf)
}

func GamesPlayed(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.GamesOf)
}

func PointsScored(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.PointsOf)
}

func PointsScoredPerGame(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.PointsPerGameOf)
}

func OpponentPointsScored(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.OpponentPointsOf)
}

func OpponentPointsScoredPerGame(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.OpponentPointsPerGameOf)
}

// MaxScore is the highest single score across every included year.
func MaxScore(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.MaxScoreOf)
}

// MinScore is the lowest single score across every included year.
func MinScore(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.MinScoreOf)
}

// ScoringShare is each owner's percentage of every point scored in range.
func ScoringShare(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return share(league, opts, calculator.PointsOf)
}

func OpponentScoringShare(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return share(league, opts, calculator.OpponentPointsOf)
}

func MaxScoringShare(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.MaxScoringShareOf)
}

func MinScoringShare(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.MinScoringShareOf)
}

func SmartWins(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.SmartWinsOf)
}

func SmartWinsPerGame(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.SmartWinsPerGameOf)
}

func OpponentSmartWins(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.OpponentSmartWinsOf)
}

func PlusMinus(league *model.League, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(league, opts, calculator.PlusMinusOf)
}
