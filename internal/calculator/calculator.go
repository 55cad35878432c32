// Package calculator derives per-team statistics for a single year.
//
// Every exported metric takes a year and caller overrides and returns a map from team id to
// value. Every team of the year is present, with zero when it has no qualifying matchup.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
)

// Precision is the number of decimal places kept by divisions in results.
// Intermediate sums of quotients are carried at WorkingPrecision.
const (
	Precision        = 20
	WorkingPrecision = 40
)

var hundred = decimal.NewFromInt(100)

// Totals are the raw per-team figures every metric is derived from. They can be pooled
// across years by Add.
type Totals struct {
	Wins           int
	Losses         int
	Ties           int
	Games          int
	Points         decimal.Decimal
	OpponentPoints decimal.Decimal
	MaxScore       decimal.Decimal
	MinScore       decimal.Decimal

	SmartWins         decimal.Decimal
	OpponentSmartWins decimal.Decimal
	SmartWinGames     int

	MaxScoringShare decimal.Decimal
	MinScoringShare decimal.Decimal
}

// Add pools another set of totals into t. Extremes only consider sides with games.
func (t *Totals) Add(o Totals) {
	if o.Games > 0 {
		if t.Games == 0 {
			t.MaxScore, t.MinScore = o.MaxScore, o.MinScore
			t.MaxScoringShare, t.MinScoringShare = o.MaxScoringShare, o.MinScoringShare
		} else {
			t.MaxScore = decimal.Max(t.MaxScore, o.MaxScore)
			t.MinScore = decimal.Min(t.MinScore, o.MinScore)
			t.MaxScoringShare = decimal.Max(t.MaxScoringShare, o.MaxScoringShare)
			t.MinScoringShare = decimal.Min(t.MinScoringShare, o.MinScoringShare)
		}
	}
	t.Wins += o.Wins
	t.Losses += o.Losses
	t.Ties += o.Ties
	t.Games += o.Games
	t.Points = t.Points.Add(o.Points)
	t.OpponentPoints = t.OpponentPoints.Add(o.OpponentPoints)
	t.SmartWins = t.SmartWins.Add(o.SmartWins)
	t.OpponentSmartWins = t.OpponentSmartWins.Add(o.OpponentSmartWins)
	t.SmartWinGames += o.SmartWinGames
}

// TotalsFor walks the qualifying matchups of a year once and returns totals for every team.
func TotalsFor(year *model.Year, f filter.YearFilters) map[string]*Totals {
	out := make(map[string]*Totals, len(year.Teams))
	for _, id := range navigator.TeamIDs(year) {
		out[id] = &Totals{}
	}
	get := func(id string) *Totals {
		t, ok := out[id]
		if !ok {
			t = &Totals{}
			out[id] = t
		}
		return t
	}

	for wm := range navigator.Matchups(year, f) {
		m := wm.Matchup
		winner := m.WinnerID()
		for _, id := range []string{m.TeamAID, m.TeamBID} {
			t := get(id)
			score, oppScore, _ := m.ScoresFor(id)
			if t.Games == 0 {
				t.MaxScore, t.MinScore = score, score
			} else {
				t.MaxScore = decimal.Max(t.MaxScore, score)
				t.MinScore = decimal.Min(t.MinScore, score)
			}
			t.Games++
			t.Points = t.Points.Add(score)
			t.OpponentPoints = t.OpponentPoints.Add(oppScore)
			switch winner {
			case "":
				t.Ties++
			case id:
				t.Wins++
			default:
				t.Losses++
			}
		}
	}

	addWeeklyFigures(year, f, get)
	return out
}

// addWeeklyFigures fills the all-play smart wins and the weekly scoring share extremes.
// Both use each week's own scores, so a multi-week leg competes only within its week.
func addWeeklyFigures(year *model.Year, f filter.YearFilters, get func(string) *Totals) {
	order, byWeek := navigator.WeekScores(year, f)
	contribution := make(map[int]map[string]decimal.Decimal, len(order))
	seen := make(map[string]bool)

	for _, weekNumber := range order {
		scores := byWeek[weekNumber]
		contribution[weekNumber] = smartWinsForWeek(scores)

		weekTotal := decimal.Zero
		for _, s := range scores {
			weekTotal = weekTotal.Add(s)
		}
		for id, s := range scores {
			t := get(id)
			share := decimal.Zero
			if !weekTotal.IsZero() {
				share = s.Mul(hundred).DivRound(weekTotal, Precision)
			}
			if !seen[id] {
				t.MaxScoringShare, t.MinScoringShare = share, share
				seen[id] = true
			} else {
				t.MaxScoringShare = decimal.Max(t.MaxScoringShare, share)
				t.MinScoringShare = decimal.Min(t.MinScoringShare, share)
			}
			if len(scores) > 1 {
				t.SmartWins = t.SmartWins.Add(contribution[weekNumber][id])
				t.SmartWinGames++
			}
		}
	}

	for wm := range navigator.WeekLegs(year, f) {
		m := wm.Matchup
		weekly := contribution[wm.Week.WeekNumber]
		a, b := get(m.TeamAID), get(m.TeamBID)
		a.OpponentSmartWins = a.OpponentSmartWins.Add(weekly[m.TeamBID])
		b.OpponentSmartWins = b.OpponentSmartWins.Add(weekly[m.TeamAID])
	}

	for _, id := range navigator.TeamIDs(year) {
		t := get(id)
		t.SmartWins = t.SmartWins.Round(Precision)
		t.OpponentSmartWins = t.OpponentSmartWins.Round(Precision)
	}
}

// smartWinsForWeek compares every score with every other score of the same week. A team
// earns 1/(n-1) for each of the n-1 other teams it strictly outscored.
func smartWinsForWeek(scores map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(scores))
	others := len(scores) - 1
	if others < 1 {
		for id := range scores {
			out[id] = decimal.Zero
		}
		return out
	}
	divisor := decimal.NewFromInt(int64(others))
	for id, s := range scores {
		beaten := 0
		for otherID, o := range scores {
			if otherID != id && s.GreaterThan(o) {
				beaten++
			}
		}
		out[id] = decimal.NewFromInt(int64(beaten)).DivRound(divisor, WorkingPrecision)
	}
	return out
}

// project resolves the filter, tallies the year and maps each team's totals to a value.
func project(year *model.Year, opts filter.Options, fn func(*Totals) decimal.Decimal) (map[string]decimal.Decimal, error) {
	f, err := filter.ForYear(year, opts)
	if err != nil {
		return nil, err
	}
	return Project(TotalsFor(year, f), fn), nil
}

// Project maps totals to values.
func Project(totals map[string]*Totals, fn func(*Totals) decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(totals))
	for id, t := range totals {
		out[id] = fn(t)
	}
	return out
}

// Ratio divides at Precision and returns zero for a zero divisor.
func Ratio(num decimal.Decimal, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, Precision)
}

// Percentages expresses each value as a percentage of their sum. The rounding residual is
// given to the largest value, so the result always sums to exactly 100 unless the sum of
// the inputs is zero, in which case every percentage is zero. Ties for the largest value go
// to the first id in order.
func Percentages(values map[string]decimal.Decimal, order []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(values))
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	if total.IsZero() {
		for id := range values {
			out[id] = decimal.Zero
		}
		return out
	}

	sum := decimal.Zero
	largest := ""
	for _, id := range order {
		v, ok := values[id]
		if !ok {
			continue
		}
		share := v.Mul(hundred).DivRound(total, Precision)
		out[id] = share
		sum = sum.Add(share)
		if largest == "" || v.GreaterThan(values[largest]) {
			largest = id
		}
	}
	if residual := hundred.Sub(sum); !residual.IsZero() && largest != "" {
		out[largest] = out[largest].Add(residual)
	}
	return out
}
