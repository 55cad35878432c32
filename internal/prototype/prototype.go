// Package prototype builds small leagues for tests.
package prototype

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/model"
)

// OwnersAndTeams returns n owners named "1".."n" and one team for each.
func OwnersAndTeams(n int) ([]model.Owner, []model.Team) {
	owners := make([]model.Owner, 0, n)
	for i := 1; i <= n; i++ {
		owners = append(owners, model.NewOwner(fmt.Sprint(i)))
	}
	return owners, TeamsFromOwners(owners)
}

// TeamsFromOwners returns a fresh team for every owner, as a new season would.
func TeamsFromOwners(owners []model.Owner) []model.Team {
	teams := make([]model.Team, 0, len(owners))
	for _, o := range owners {
		teams = append(teams, model.NewTeam(o.ID, o.Name))
	}
	return teams
}

// Dec parses a decimal literal and panics on bad input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Matchup builds a matchup between two teams with the given scores and type.
func Matchup(a model.Team, b model.Team, scoreA string, scoreB string, t model.MatchupType) model.Matchup {
	m := model.NewMatchup(a.ID, b.ID, Dec(scoreA), Dec(scoreB))
	m.MatchupType = t
	return m
}

// Week builds a week from matchups.
func Week(n int, matchups ...model.Matchup) model.Week {
	return model.Week{WeekNumber: n, Matchups: matchups}
}

// ThreeWeekYear is a two-team year with one regular season, one playoff and one
// championship matchup, each scored (scoreA, scoreB).
func ThreeWeekYear(yearNumber int, teams []model.Team, scoreA string, scoreB string) model.Year {
	return model.Year{
		YearNumber: yearNumber,
		Teams:      teams,
		Weeks: []model.Week{
			Week(1, Matchup(teams[0], teams[1], scoreA, scoreB, model.RegularSeason)),
			Week(2, Matchup(teams[0], teams[1], scoreA, scoreB, model.Playoff)),
			Week(3, Matchup(teams[0], teams[1], scoreA, scoreB, model.Championship)),
		},
	}
}
