// Package statsheet collects every metric for a year or a league range in display order.
package statsheet

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/alltime"
	"github.com/kenzliang/leeger/internal/calculator"
	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
)

// Stat is one named column of a stat sheet. Values are keyed by team id for a year and by
// canonical owner id for all-time sheets.
type Stat struct {
	Name   string                     `json:"name"`
	Values map[string]decimal.Decimal `json:"values"`
}

type column struct {
	name  string
	of    func(*calculator.Totals) decimal.Decimal
	share bool
}

var columns = []column{
	{name: "Games Played", of: calculator.GamesOf},
	{name: "Wins", of: calculator.WinsOf},
	{name: "Losses", of: calculator.LossesOf},
	{name: "Ties", of: calculator.TiesOf},
	{name: "Win Percentage", of: calculator.WinPercentageOf},
	{name: "Smart Wins", of: calculator.SmartWinsOf},
	{name: "Smart Wins Per Game", of: calculator.SmartWinsPerGameOf},
	{name: "Opponent Smart Wins", of: calculator.OpponentSmartWinsOf},
	{name: "Points Scored", of: calculator.PointsOf},
	{name: "Points Scored Per Game", of: calculator.PointsPerGameOf},
	{name: "Opponent Points Scored", of: calculator.OpponentPointsOf},
	{name: "Opponent Points Scored Per Game", of: calculator.OpponentPointsPerGameOf},
	{name: "Scoring Share", of: calculator.PointsOf, share: true},
	{name: "Opponent Scoring Share", of: calculator.OpponentPointsOf, share: true},
	{name: "Max Scoring Share", of: calculator.MaxScoringShareOf},
	{name: "Min Scoring Share", of: calculator.MinScoringShareOf},
	{name: "Max Score", of: calculator.MaxScoreOf},
	{name: "Min Score", of: calculator.MinScoreOf},
	{name: "Plus Minus", of: calculator.PlusMinusOf},
}

// Names lists stat names in display order.
func Names() []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		out = append(out, c.name)
	}
	return out
}

// ForYear builds the stat sheet of one year, keyed by team id.
func ForYear(year *model.Year, opts filter.Options) ([]Stat, error) {
	f, err := filter.ForYear(year, opts)
	if err != nil {
		return nil, err
	}
	totals := calculator.TotalsFor(year, f)
	order := navigator.TeamIDs(year)

	out := make([]Stat, 0, len(columns))
	for _, c := range columns {
		values := calculator.Project(totals, c.of)
		if c.share {
			values = calculator.Percentages(values, order)
		}
		out = append(out, Stat{Name: c.name, Values: values})
	}
	return out, nil
}

// AllTime builds the stat sheet of a league range, keyed by canonical owner id.
func AllTime(league *model.League, opts filter.Options) ([]Stat, error) {
	p, err := alltime.NewPool(league, opts)
	if err != nil {
		return nil, err
	}
	out := make([]Stat, 0, len(columns))
	for _, c := range columns {
		values := p.Project(c.of)
		if c.share {
			values = p.Share(c.of)
		}
		out = append(out, Stat{Name: c.name, Values: values})
	}
	return out, nil
}

// Lookup returns the stat with the given name.
func Lookup(stats []Stat, name string) (Stat, bool) {
	for _, s := range stats {
		if s.Name == name {
			return s, true
		}
	}
	return Stat{}, false
}
