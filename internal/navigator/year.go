// Package navigator holds read-only traversal helpers over league data.
package navigator

import (
	"fmt"
	"iter"

	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/classify"
	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

// WeekMatchup is one counted matchup together with the week it is counted in.
// Phase is the classified season phase.
type WeekMatchup struct {
	Week    *model.Week
	Matchup model.Matchup
	Phase   model.MatchupType
}

// TeamIDs returns the year's team ids in storage order.
func TeamIDs(year *model.Year) []string {
	out := make([]string, 0, len(year.Teams))
	for _, t := range year.Teams {
		out = append(out, t.ID)
	}
	return out
}

// TeamByID looks up a team in a year.
func TeamByID(year *model.Year, teamID string) (model.Team, error) {
	t, ok := year.TeamByID(teamID)
	if !ok {
		return model.Team{}, fmt.Errorf("%w: team %q in year %d", model.ErrDoesNotExist, teamID, year.YearNumber)
	}
	return t, nil
}

// WeekByNumber looks up a week in a year.
func WeekByNumber(year *model.Year, weekNumber int) (*model.Week, error) {
	for i := range year.Weeks {
		if year.Weeks[i].WeekNumber == weekNumber {
			return &year.Weeks[i], nil
		}
	}
	return nil, fmt.Errorf("%w: week %d in year %d", model.ErrDoesNotExist, weekNumber, year.YearNumber)
}

type multiWeekTotal struct {
	lastWeek int
	scores   map[string]decimal.Decimal
}

// multiWeekTotals sums every multi-week group's scores by team and records the group's
// final week.
func multiWeekTotals(year *model.Year) map[string]*multiWeekTotal {
	out := make(map[string]*multiWeekTotal)
	for _, w := range year.Weeks {
		for _, m := range w.Matchups {
			if m.MultiWeekMatchupID == "" {
				continue
			}
			g, ok := out[m.MultiWeekMatchupID]
			if !ok {
				g = &multiWeekTotal{scores: make(map[string]decimal.Decimal, 2)}
				out[m.MultiWeekMatchupID] = g
			}
			if w.WeekNumber > g.lastWeek {
				g.lastWeek = w.WeekNumber
			}
			g.scores[m.TeamAID] = g.scores[m.TeamAID].Add(m.TeamAScore)
			g.scores[m.TeamBID] = g.scores[m.TeamBID].Add(m.TeamBScore)
		}
	}
	return out
}

// Matchups yields the matchups of a year that fall inside the filter's week bounds and
// phase selection. Ignored matchups are never yielded. A multi-week matchup is yielded once,
// at its final week, carrying the summed scores of every week in its group. The sequence
// can be ranged over any number of times.
func Matchups(year *model.Year, f filter.YearFilters) iter.Seq[WeekMatchup] {
	types := f.IncludeMatchupTypes()
	return func(yield func(WeekMatchup) bool) {
		groups := multiWeekTotals(year)
		for i := range year.Weeks {
			week := &year.Weeks[i]
			if !f.Contains(week.WeekNumber) {
				continue
			}
			for _, m := range week.Matchups {
				if m.MultiWeekMatchupID != "" {
					g := groups[m.MultiWeekMatchupID]
					if week.WeekNumber != g.lastWeek {
						continue
					}
					m.TeamAScore = g.scores[m.TeamAID]
					m.TeamBScore = g.scores[m.TeamBID]
				}
				phase := classify.Phase(week, m)
				if !classify.Included(phase, types) {
					continue
				}
				if !yield(WeekMatchup{Week: week, Matchup: m, Phase: phase}) {
					return
				}
			}
		}
	}
}

// GamesPlayed counts qualifying matchups per team. Every team of the year is present.
func GamesPlayed(year *model.Year, f filter.YearFilters) map[string]int {
	out := make(map[string]int, len(year.Teams))
	for _, id := range TeamIDs(year) {
		out[id] = 0
	}
	for wm := range Matchups(year, f) {
		out[wm.Matchup.TeamAID]++
		out[wm.Matchup.TeamBID]++
	}
	return out
}

// WeekLegs yields every qualifying matchup in the week it was played, with that week's own
// scores. Multi-week legs are not folded, so each leg is yielded in its own week when the
// week is inside the bounds and the leg's phase is included.
func WeekLegs(year *model.Year, f filter.YearFilters) iter.Seq[WeekMatchup] {
	types := f.IncludeMatchupTypes()
	return func(yield func(WeekMatchup) bool) {
		for i := range year.Weeks {
			week := &year.Weeks[i]
			if !f.Contains(week.WeekNumber) {
				continue
			}
			for _, m := range week.Matchups {
				phase := classify.Phase(week, m)
				if !classify.Included(phase, types) {
					continue
				}
				if !yield(WeekMatchup{Week: week, Matchup: m, Phase: phase}) {
					return
				}
			}
		}
	}
}

// WeekScores groups the scores of every qualifying leg by week number, keyed by team id.
// Week numbers are returned in the order the weeks are stored.
func WeekScores(year *model.Year, f filter.YearFilters) ([]int, map[int]map[string]decimal.Decimal) {
	order := make([]int, 0, len(year.Weeks))
	byWeek := make(map[int]map[string]decimal.Decimal)
	for wm := range WeekLegs(year, f) {
		n := wm.Week.WeekNumber
		scores, ok := byWeek[n]
		if !ok {
			scores = make(map[string]decimal.Decimal)
			byWeek[n] = scores
			order = append(order, n)
		}
		scores[wm.Matchup.TeamAID] = wm.Matchup.TeamAScore
		scores[wm.Matchup.TeamBID] = wm.Matchup.TeamBScore
	}
	return order, byWeek
}
