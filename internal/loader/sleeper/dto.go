package sleeper

import (
	"github.com/shopspring/decimal"
)

type leagueDTO struct {
	LeagueID         string  `json:"league_id"`
	Name             string  `json:"name"`
	Season           string  `json:"season"`
	Status           string  `json:"status"`
	PreviousLeagueID *string `json:"previous_league_id"`
	Settings         struct {
		PlayoffWeekStart int `json:"playoff_week_start"`
		PlayoffRoundType int `json:"playoff_round_type"`
		LastScoredLeg    int `json:"last_scored_leg"`
	} `json:"settings"`
	ScoringSettings map[string]float64 `json:"scoring_settings"`
}

type userDTO struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

type rosterDTO struct {
	RosterID int     `json:"roster_id"`
	OwnerID  *string `json:"owner_id"`
}

type matchupDTO struct {
	RosterID  int             `json:"roster_id"`
	MatchupID *int            `json:"matchup_id"`
	Points    decimal.Decimal `json:"points"`
}

// bracketDTO is one game of the winners bracket. P is the place decided by the game:
// 1 for the final, 3, 5, ... for consolation games, nil for games that advance a team.
type bracketDTO struct {
	Round int  `json:"r"`
	Match int  `json:"m"`
	T1    *int `json:"t1"`
	T2    *int `json:"t2"`
	W     *int `json:"w"`
	L     *int `json:"l"`
	P     *int `json:"p"`
}

func (b bracketDTO) hasTeams(a int, c int) bool {
	if b.T1 == nil || b.T2 == nil {
		return false
	}
	return (*b.T1 == a && *b.T2 == c) || (*b.T1 == c && *b.T2 == a)
}
