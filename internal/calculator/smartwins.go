package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

// SmartWins rates each team against the whole league rather than one opponent. Every
// qualifying week a team earns the share of the other teams playing that week that it
// strictly outscored. Equal scores earn nothing.
func SmartWins(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, SmartWinsOf)
}

// SmartWinsPerGame divides SmartWins by the weeks the team had someone to compare against.
func SmartWinsPerGame(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, SmartWinsPerGameOf)
}

// OpponentSmartWins sums the weekly smart wins of each team's opponents.
func OpponentSmartWins(year *model.Year, opts filter.Options) (map[string]decimal.Decimal, error) {
	return project(year, opts, OpponentSmartWinsOf)
}

func SmartWinsOf(t *Totals) decimal.Decimal         { return t.SmartWins }
func OpponentSmartWinsOf(t *Totals) decimal.Decimal { return t.OpponentSmartWins }

func SmartWinsPerGameOf(t *Totals) decimal.Decimal {
	return Ratio(t.SmartWins, decimal.NewFromInt(int64(t.SmartWinGames)))
}
