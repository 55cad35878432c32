// Package validate checks the structural rules league data must satisfy before any
// statistic is computed.
package validate

import (
	"fmt"
	"strings"

	"github.com/kenzliang/leeger/internal/model"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{model.ErrInvalidFormat}, args...)...)
}

// aliasLinked reports whether an alias of one owner is a name or alias of the other.
func aliasLinked(a model.Owner, b model.Owner) bool {
	keys := func(o model.Owner) map[string]bool {
		out := map[string]bool{strings.TrimSpace(o.Name): true}
		for _, alias := range o.Aliases {
			out[strings.TrimSpace(alias)] = true
		}
		return out
	}
	ka, kb := keys(a), keys(b)
	for _, alias := range a.Aliases {
		if kb[strings.TrimSpace(alias)] {
			return true
		}
	}
	for _, alias := range b.Aliases {
		if ka[strings.TrimSpace(alias)] {
			return true
		}
	}
	return false
}

// League returns the first rule a league breaks, wrapped in model.ErrInvalidFormat.
func League(league *model.League) error {
	if league == nil {
		return invalid("league is nil")
	}
	if len(league.Years) == 0 {
		return invalid("league %q has no years", league.Name)
	}

	owners := make(map[string]bool, len(league.Owners))
	named := make(map[string]model.Owner, len(league.Owners))
	for _, o := range league.Owners {
		if o.ID == "" {
			return invalid("owner %q has no id", o.Name)
		}
		if owners[o.ID] {
			return invalid("owner id %q is not unique", o.ID)
		}
		owners[o.ID] = true

		name := strings.TrimSpace(o.Name)
		if name == "" {
			continue
		}
		if prev, ok := named[name]; ok && !aliasLinked(prev, o) {
			return invalid("owners %q and %q are both named %q; list a shared alias to merge them", prev.ID, o.ID, name)
		}
		named[name] = o
	}

	years := make(map[int]bool, len(league.Years))
	teams := make(map[string]int)
	for i := range league.Years {
		y := &league.Years[i]
		if years[y.YearNumber] {
			return invalid("year %d appears more than once", y.YearNumber)
		}
		years[y.YearNumber] = true

		for _, t := range y.Teams {
			if !owners[t.OwnerID] {
				return invalid("team %q in year %d belongs to unknown owner %q", t.Name, y.YearNumber, t.OwnerID)
			}
			if prev, ok := teams[t.ID]; ok {
				return invalid("team id %q is used in years %d and %d", t.ID, prev, y.YearNumber)
			}
			teams[t.ID] = y.YearNumber
		}
		if err := Year(y); err != nil {
			return err
		}
	}
	return nil
}

// Year checks a single year in isolation.
func Year(year *model.Year) error {
	teams := make(map[string]bool, len(year.Teams))
	for _, t := range year.Teams {
		if t.ID == "" {
			return invalid("team %q in year %d has no id", t.Name, year.YearNumber)
		}
		if teams[t.ID] {
			return invalid("team id %q appears twice in year %d", t.ID, year.YearNumber)
		}
		teams[t.ID] = true
	}

	championshipWeeks := 0
	groups := make(map[string][2]string)
	for i, w := range year.Weeks {
		if w.WeekNumber != i+1 {
			return invalid("year %d week %d is out of sequence, expected week %d", year.YearNumber, w.WeekNumber, i+1)
		}
		if w.IsChampionshipWeek {
			championshipWeeks++
			if championshipWeeks > 1 {
				return invalid("year %d has more than 1 championship week", year.YearNumber)
			}
		}

		played := make(map[string]bool, 2*len(w.Matchups))
		for _, m := range w.Matchups {
			if err := matchup(year, w.WeekNumber, m, teams); err != nil {
				return err
			}
			for _, id := range []string{m.TeamAID, m.TeamBID} {
				if played[id] {
					return invalid("team %q plays more than once in year %d week %d", id, year.YearNumber, w.WeekNumber)
				}
				played[id] = true
			}
			if m.MultiWeekMatchupID == "" {
				continue
			}
			pair := sortedPair(m.TeamAID, m.TeamBID)
			if prev, ok := groups[m.MultiWeekMatchupID]; ok && prev != pair {
				return invalid("multi-week matchup %q in year %d changes teams", m.MultiWeekMatchupID, year.YearNumber)
			}
			groups[m.MultiWeekMatchupID] = pair
		}
	}
	return nil
}

func matchup(year *model.Year, week int, m model.Matchup, teams map[string]bool) error {
	if m.TeamAID == m.TeamBID {
		return invalid("team %q plays itself in year %d week %d", m.TeamAID, year.YearNumber, week)
	}
	for _, id := range []string{m.TeamAID, m.TeamBID} {
		if !teams[id] {
			return invalid("matchup in year %d week %d references unknown team %q", year.YearNumber, week, id)
		}
	}
	if m.TeamAHasTiebreaker && m.TeamBHasTiebreaker {
		return invalid("both teams hold the tiebreaker in year %d week %d", year.YearNumber, week)
	}
	return nil
}

func sortedPair(a string, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}
