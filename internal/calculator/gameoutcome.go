package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

// Wins counts qualifying matchups each team won.
func Wins(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, WinsOf)
}

// Losses counts qualifying matchups each team lost.
func Losses(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, LossesOf)
}

// Ties counts qualifying matchups that ended level with no tiebreaker.
func Ties(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, TiesOf)
}

// WinPercentage is (wins + ties/2) / games, zero for a team without games.
func WinPercentage(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, WinPercentageOf)
}

// GamesPlayed counts qualifying matchups per team.
func GamesPlayed(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, GamesOf)
}

func WinsOf(t *Totals) decimal.Decimal   { return decimal.NewFromInt(int64(t.Wins)) }
func LossesOf(t *Totals) decimal.Decimal { return decimal.NewFromInt(int64(t.Losses)) }
func TiesOf(t *Totals) decimal.Decimal   { return decimal.NewFromInt(int64(t.Ties)) }
func GamesOf(t *Totals) decimal.Decimal  { return decimal.NewFromInt(int64(t.Games)) }

func WinPercentageOf(t *Totals) decimal.Decimal {
	half := decimal.NewFromInt(int64(t.Ties)).Div(decimal.NewFromInt(2))
	return Ratio(WinsOf(t).Add(half), GamesOf(t))
}
