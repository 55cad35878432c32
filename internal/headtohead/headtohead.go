// Package headtohead builds the record between two owners across the years of a league.
package headtohead

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
)

// Match describes a single counted matchup between the two owners, from owner A's side.
type Match struct {
	Year    int             `json:"year"`
	Week    int             `json:"week"`
	Phase   string          `json:"phase"`
	ScoreA  decimal.Decimal `json:"score_a"`
	ScoreB  decimal.Decimal `json:"score_b"`
	ResultA string          `json:"result_a"`
}

// OwnerRecord holds one owner's record in the head-to-head.
type OwnerRecord struct {
	OwnerID string          `json:"owner_id"`
	Name    string          `json:"name"`
	Wins    int             `json:"wins"`
	Ties    int             `json:"ties"`
	Losses  int             `json:"losses"`
	Points  decimal.Decimal `json:"points"`
}

// Output is the full head-to-head between two owners.
type Output struct {
	OwnerA  OwnerRecord    `json:"owner_a"`
	OwnerB  OwnerRecord    `json:"owner_b"`
	Filters map[string]any `json:"filters"`
	Matches []Match        `json:"matches"`
}

// Build resolves both owners by name or alias and walks every qualifying matchup in the
// filter range, oldest first. Owners who never met get an empty match list.
func Build(league *model.League, nameA string, nameB string, opts filter.Options) (Output, error) {
	if strings.TrimSpace(nameA) == "" || strings.TrimSpace(nameB) == "" {
		return Output{}, fmt.Errorf("%w: both owner names are required", model.ErrInvalidArgument)
	}
	f, err := filter.ForLeague(league, opts)
	if err != nil {
		return Output{}, err
	}
	idx := navigator.NewOwnerIndex(league)
	a, err := idx.OwnerByName(nameA)
	if err != nil {
		return Output{}, fmt.Errorf("owner_a: %w", err)
	}
	b, err := idx.OwnerByName(nameB)
	if err != nil {
		return Output{}, fmt.Errorf("owner_b: %w", err)
	}
	if a.ID == b.ID {
		return Output{}, fmt.Errorf("%w: %q and %q are the same owner", model.ErrInvalidArgument, nameA, nameB)
	}

	out := Output{
		OwnerA:  OwnerRecord{OwnerID: a.ID, Name: a.Name},
		OwnerB:  OwnerRecord{OwnerID: b.ID, Name: b.Name},
		Filters: f.AsMap(),
		Matches: make([]Match, 0),
	}
	for _, year := range navigator.YearsInRange(league, f) {
		for wm := range navigator.Matchups(year, f.ForYear(year)) {
			m := wm.Matchup
			ownerA, err := idx.OwnerForTeam(year, m.TeamAID)
			if err != nil {
				return Output{}, err
			}
			ownerB, err := idx.OwnerForTeam(year, m.TeamBID)
			if err != nil {
				return Output{}, err
			}

			var teamA string
			switch {
			case ownerA == a.ID && ownerB == b.ID:
				teamA = m.TeamAID
			case ownerA == b.ID && ownerB == a.ID:
				teamA = m.TeamBID
			default:
				continue
			}

			scoreA, scoreB, teamB := m.ScoresFor(teamA)
			match := Match{
				Year:   year.YearNumber,
				Week:   wm.Week.WeekNumber,
				Phase:  wm.Phase.String(),
				ScoreA: scoreA,
				ScoreB: scoreB,
			}
			switch m.WinnerID() {
			case teamA:
				match.ResultA = "W"
				out.OwnerA.Wins++
				out.OwnerB.Losses++
			case teamB:
				match.ResultA = "L"
				out.OwnerA.Losses++
				out.OwnerB.Wins++
			default:
				match.ResultA = "T"
				out.OwnerA.Ties++
				out.OwnerB.Ties++
			}
			out.OwnerA.Points = out.OwnerA.Points.Add(scoreA)
			out.OwnerB.Points = out.OwnerB.Points.Add(scoreB)
			out.Matches = append(out.Matches, match)
		}
	}
	return out, nil
}
