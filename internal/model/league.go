package model

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// League is the root of the loaded data. Years may be stored in any order.
type League struct {
	Name   string  `json:"name"`
	Owners []Owner `json:"owners"`
	Years  []Year  `json:"years"`
}

// Owner controls one Team per Year. Aliases hold the other names the owner used across years.
type Owner struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}

// Team is a single year's participant.
type Team struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

type YearSettings struct {
	PPR bool `json:"ppr"`
}

type Year struct {
	YearNumber int           `json:"year_number"`
	Teams      []Team        `json:"teams"`
	Weeks      []Week        `json:"weeks"`
	Settings   *YearSettings `json:"settings,omitempty"`
}

type Week struct {
	WeekNumber         int       `json:"week_number"`
	Matchups           []Matchup `json:"matchups"`
	IsPlayoffWeek      bool      `json:"is_playoff_week"`
	IsChampionshipWeek bool      `json:"is_championship_week"`
}

// Matchup is one scored contest between two teams in a week.
// Matchups sharing a MultiWeekMatchupID form one logical contest counted at its final week.
type Matchup struct {
	ID                 string          `json:"id"`
	TeamAID            string          `json:"team_a_id"`
	TeamBID            string          `json:"team_b_id"`
	TeamAScore         decimal.Decimal `json:"team_a_score"`
	TeamBScore         decimal.Decimal `json:"team_b_score"`
	MatchupType        MatchupType     `json:"matchup_type"`
	TeamAHasTiebreaker bool            `json:"team_a_has_tiebreaker"`
	TeamBHasTiebreaker bool            `json:"team_b_has_tiebreaker"`
	MultiWeekMatchupID string          `json:"multi_week_matchup_id,omitempty"`
}

// NewOwner returns an Owner with a generated id.
func NewOwner(name string, aliases ...string) Owner {
	return Owner{ID: uuid.NewString(), Name: name, Aliases: aliases}
}

// NewTeam returns a Team with a generated id.
func NewTeam(ownerID string, name string) Team {
	return Team{ID: uuid.NewString(), OwnerID: ownerID, Name: name}
}

// NewMatchup returns a Matchup with a generated id and an unspecified type.
func NewMatchup(teamAID string, teamBID string, teamAScore decimal.Decimal, teamBScore decimal.Decimal) Matchup {
	return Matchup{
		ID:         uuid.NewString(),
		TeamAID:    teamAID,
		TeamBID:    teamBID,
		TeamAScore: teamAScore,
		TeamBScore: teamBScore,
	}
}

// Involves reports whether the team played in the matchup.
func (m Matchup) Involves(teamID string) bool {
	return m.TeamAID == teamID || m.TeamBID == teamID
}

// ScoresFor returns (score, opponent score, opponent id) from the team's point of view.
func (m Matchup) ScoresFor(teamID string) (decimal.Decimal, decimal.Decimal, string) {
	if m.TeamAID == teamID {
		return m.TeamAScore, m.TeamBScore, m.TeamBID
	}
	return m.TeamBScore, m.TeamAScore, m.TeamAID
}

// WinnerID returns the winning team id, or "" for an unresolved tie.
// An exact tie goes to the team flagged as tiebreaker winner.
func (m Matchup) WinnerID() string {
	switch m.TeamAScore.Cmp(m.TeamBScore) {
	case 1:
		return m.TeamAID
	case -1:
		return m.TeamBID
	}
	if m.TeamAHasTiebreaker && !m.TeamBHasTiebreaker {
		return m.TeamAID
	}
	if m.TeamBHasTiebreaker && !m.TeamAHasTiebreaker {
		return m.TeamBID
	}
	return ""
}

// TeamByID returns the team with the given id in the year, if present.
func (y *Year) TeamByID(id string) (Team, bool) {
	for _, t := range y.Teams {
		if t.ID == id {
			return t, true
		}
	}
	return Team{}, false
}

// YearByNumber returns the year with the given number, if present.
func (l *League) YearByNumber(n int) (*Year, bool) {
	for i := range l.Years {
		if l.Years[i].YearNumber == n {
			return &l.Years[i], true
		}
	}
	return nil, false
}

// SortedYearNumbers returns the league's year numbers in ascending order.
func (l *League) SortedYearNumbers() []int {
	out := make([]int, 0, len(l.Years))
	for _, y := range l.Years {
		out = append(out, y.YearNumber)
	}
	sort.Ints(out)
	return out
}
