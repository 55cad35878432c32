// Package classify decides which season phase a matchup belongs to.
package classify

import "github.com/kenzliang/leeger/internal/model"

// Phase returns the matchup's explicit type, or derives one from the week flags when the
// matchup carries none.
func Phase(week *model.Week, m model.Matchup) model.MatchupType {
	if m.MatchupType != model.Unspecified {
		return m.MatchupType
	}
	switch {
	case week.IsChampionshipWeek:
		return model.Championship
	case week.IsPlayoffWeek:
		return model.Playoff
	default:
		return model.RegularSeason
	}
}

// Included reports whether a phase is one of the requested types. Ignore is never included.
func Included(phase model.MatchupType, types []model.MatchupType) bool {
	if phase == model.Ignore {
		return false
	}
	for _, t := range types {
		if t == phase {
			return true
		}
	}
	return false
}
