package sleeper

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/loader"
	"github.com/kenzliang/leeger/internal/model"
)

// playoffGame is a winners bracket game together with the weeks it is played over.
type playoffGame struct {
	bracketDTO
	weeks []int
}

// roundWeeks maps each bracket round to its weeks.
func roundWeeks(start int, roundType int, lastRound int) map[int][]int {
	out := make(map[int][]int, lastRound)
	week := start
	for r := 1; r <= lastRound; r++ {
		n := 1
		if roundType == roundTypeTwoWeeksPerRound || (roundType == roundTypeTwoWeekFinal && r == lastRound) {
			n = 2
		}
		for i := 0; i < n; i++ {
			out[r] = append(out[r], week)
			week++
		}
	}
	return out
}

func (l *Loader) bracket(ctx context.Context, s season) ([]playoffGame, int, error) {
	if s.league.Settings.PlayoffWeekStart <= 0 {
		return nil, 0, nil
	}
	var games []bracketDTO
	body, err := l.Client.WinnersBracket(ctx, s.league.LeagueID, l.Force)
	if err := l.getJSON("winners bracket of "+s.league.LeagueID, body, err, &games); err != nil {
		return nil, 0, err
	}
	lastRound := 0
	for _, g := range games {
		if g.Round > lastRound {
			lastRound = g.Round
		}
	}
	weeks := roundWeeks(s.league.Settings.PlayoffWeekStart, s.league.Settings.PlayoffRoundType, lastRound)
	out := make([]playoffGame, 0, len(games))
	lastWeek := 0
	for _, g := range games {
		out = append(out, playoffGame{bracketDTO: g, weeks: weeks[g.Round]})
		if w := weeks[g.Round]; len(w) > 0 && w[len(w)-1] > lastWeek {
			lastWeek = w[len(w)-1]
		}
	}
	return out, lastWeek, nil
}

func findGame(games []playoffGame, week int, a int, b int) (playoffGame, bool) {
	for _, g := range games {
		for _, w := range g.weeks {
			if w == week && g.hasTeams(a, b) {
				return g, true
			}
		}
	}
	return playoffGame{}, false
}

type pairing struct {
	a, b      matchupDTO
	matchupID int
}

// pairings groups a week's entries by matchup id. Byes and unmatched rosters are dropped.
func pairings(entries []matchupDTO) []pairing {
	byID := make(map[int][]matchupDTO)
	for _, e := range entries {
		if e.MatchupID == nil {
			continue
		}
		byID[*e.MatchupID] = append(byID[*e.MatchupID], e)
	}
	ids := make([]int, 0, len(byID))
	for id, group := range byID {
		if len(group) == 2 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	out := make([]pairing, 0, len(ids))
	for _, id := range ids {
		g := byID[id]
		if g[1].RosterID < g[0].RosterID {
			g[0], g[1] = g[1], g[0]
		}
		out = append(out, pairing{a: g[0], b: g[1], matchupID: id})
	}
	return out
}

func (l *Loader) buildYear(ctx context.Context, base *loader.Base, s season) (model.Year, error) {
	year := model.Year{YearNumber: s.year}
	if rec, ok := s.league.ScoringSettings["rec"]; ok {
		year.Settings = &model.YearSettings{PPR: rec >= 1}
	}

	teams := make(map[int]model.Team, len(s.rosters))
	for _, r := range s.rosters {
		ownerName, teamName := s.ownerName(r)
		team := model.NewTeam(base.Owners.Owner(ownerName).ID, teamName)
		teams[r.RosterID] = team
		year.Teams = append(year.Teams, team)
	}

	games, lastPlayoffWeek, err := l.bracket(ctx, s)
	if err != nil {
		return model.Year{}, err
	}
	lastWeek := lastPlayoffWeek
	if lastWeek == 0 {
		lastWeek = s.league.Settings.LastScoredLeg
	}
	if lastWeek == 0 {
		lastWeek = l.MaxWeeks
	}
	playoffStart := s.league.Settings.PlayoffWeekStart

	// group totals decide which multi-week games need the tiebreaker flag
	type groupRef struct{ week, index int }
	groups := make(map[string][]groupRef)
	winners := make(map[string]int)

	for w := 1; w <= lastWeek; w++ {
		var entries []matchupDTO
		body, err := l.Client.Matchups(ctx, s.league.LeagueID, w, l.Force)
		if err := l.getJSON(fmt.Sprintf("matchups of %s week %d", s.league.LeagueID, w), body, err, &entries); err != nil {
			return model.Year{}, err
		}
		pairs := pairings(entries)
		if len(pairs) == 0 {
			// not played yet
			break
		}

		week := model.Week{WeekNumber: w}
		inPlayoffs := playoffStart > 0 && w >= playoffStart
		week.IsPlayoffWeek = inPlayoffs
		week.IsChampionshipWeek = inPlayoffs && w == lastPlayoffWeek

		for _, p := range pairs {
			ta, okA := teams[p.a.RosterID]
			tb, okB := teams[p.b.RosterID]
			if !okA || !okB {
				return model.Year{}, fmt.Errorf("%w: %d week %d references unknown roster", model.ErrLeagueLoader, s.year, w)
			}
			m := model.NewMatchup(ta.ID, tb.ID, p.a.Points, p.b.Points)
			m.MatchupType = model.RegularSeason
			if inPlayoffs {
				m.MatchupType = model.Ignore
				if g, ok := findGame(games, w, p.a.RosterID, p.b.RosterID); ok {
					switch {
					case g.P == nil:
						m.MatchupType = model.Playoff
					case *g.P == 1:
						m.MatchupType = model.Championship
					}
					if m.MatchupType != model.Ignore {
						key := fmt.Sprintf("%d-r%d-m%d", s.year, g.Round, g.Match)
						if len(g.weeks) > 1 {
							m.MultiWeekMatchupID = key
						}
						if g.W != nil {
							winners[key] = *g.W
						}
						groups[key] = append(groups[key], groupRef{week: len(year.Weeks), index: len(week.Matchups)})
					}
				}
			}
			week.Matchups = append(week.Matchups, m)
		}
		year.Weeks = append(year.Weeks, week)
	}

	// the bracket winner of a level game holds the tiebreaker
	for key, refs := range groups {
		winner, ok := winners[key]
		if !ok {
			continue
		}
		totalA, totalB := decimal.Zero, decimal.Zero
		for _, ref := range refs {
			m := year.Weeks[ref.week].Matchups[ref.index]
			totalA = totalA.Add(m.TeamAScore)
			totalB = totalB.Add(m.TeamBScore)
		}
		if !totalA.Equal(totalB) {
			continue
		}
		for _, ref := range refs {
			m := &year.Weeks[ref.week].Matchups[ref.index]
			m.TeamAHasTiebreaker = m.TeamAID == teams[winner].ID
			m.TeamBHasTiebreaker = m.TeamBID == teams[winner].ID
		}
	}
	return year, nil
}
