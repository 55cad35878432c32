package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/prototype"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, prototype.Dec(want).Equal(got), append([]any{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func sum(values map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// fourTeamYear:
//
//	week 1: A 100 - B 50, C 80 - D 80
//	week 2: A 60 - C 70, B 90 - D 30
func fourTeamYear() (model.Year, []model.Team) {
	_, teams := prototype.OwnersAndTeams(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]
	year := model.Year{
		YearNumber: 2020,
		Teams:      teams,
		Weeks: []model.Week{
			prototype.Week(1,
				prototype.Matchup(a, b, "100", "50", model.RegularSeason),
				prototype.Matchup(c, d, "80", "80", model.RegularSeason),
			),
			prototype.Week(2,
				prototype.Matchup(a, c, "60", "70", model.RegularSeason),
				prototype.Matchup(b, d, "90", "30", model.RegularSeason),
			),
		},
	}
	return year, teams
}

// ---------------------------------------------------------------------------
// Game outcome
// ---------------------------------------------------------------------------

func TestWins_ThreeWeekScenario(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")

	got, err := Wins(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "0", got[teams[0].ID])
	assertDec(t, "3", got[teams[1].ID])

	got, err = Wins(&year, filter.Options{OnlyChampionship: true})
	require.NoError(t, err)
	assertDec(t, "0", got[teams[0].ID])
	assertDec(t, "1", got[teams[1].ID])

	got, err = Wins(&year, filter.Options{OnlyRegularSeason: true, WeekNumberStart: filter.Int(1), WeekNumberEnd: filter.Int(1)})
	require.NoError(t, err)
	assertDec(t, "1", got[teams[1].ID])
}

func TestGameOutcome_FourTeams(t *testing.T) {
	year, teams := fourTeamYear()
	a, b, c, d := teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID

	wins, err := Wins(&year, filter.Options{})
	require.NoError(t, err)
	losses, err := Losses(&year, filter.Options{})
	require.NoError(t, err)
	ties, err := Ties(&year, filter.Options{})
	require.NoError(t, err)
	pct, err := WinPercentage(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "1", wins[a])
	assertDec(t, "1", wins[b])
	assertDec(t, "1", wins[c])
	assertDec(t, "0", wins[d])
	assertDec(t, "1", losses[a])
	assertDec(t, "0", losses[c])
	assertDec(t, "1", ties[c])
	assertDec(t, "1", ties[d])
	assertDec(t, "0.5", pct[a])
	assertDec(t, "0.75", pct[c])
	assertDec(t, "0.25", pct[d])
}

func TestGameOutcome_DecisionsNeverExceedGames(t *testing.T) {
	year, _ := fourTeamYear()
	f, err := filter.ForYear(&year, filter.Options{})
	require.NoError(t, err)

	for id, tot := range TotalsFor(&year, f) {
		assert.Equal(t, tot.Games, tot.Wins+tot.Losses+tot.Ties, id)
	}
}

func TestGameOutcome_TiebreakerDecidesEqualScores(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	m := prototype.Matchup(teams[0], teams[1], "10", "10", model.RegularSeason)
	m.TeamAHasTiebreaker = true
	year := model.Year{YearNumber: 2000, Teams: teams, Weeks: []model.Week{prototype.Week(1, m)}}

	wins, err := Wins(&year, filter.Options{})
	require.NoError(t, err)
	ties, err := Ties(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "1", wins[teams[0].ID])
	assertDec(t, "0", wins[teams[1].ID])
	assertDec(t, "0", ties[teams[0].ID])
}

func TestGameOutcome_MultiWeekTieGoesToTiebreaker(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	m1 := prototype.Matchup(teams[0], teams[1], "10", "20", model.Playoff)
	m1.MultiWeekMatchupID = "semi"
	m2 := prototype.Matchup(teams[0], teams[1], "15", "5", model.Playoff)
	m2.MultiWeekMatchupID = "semi"
	m2.TeamBHasTiebreaker = true
	year := model.Year{YearNumber: 2000, Teams: teams, Weeks: []model.Week{prototype.Week(1, m1), prototype.Week(2, m2)}}

	wins, err := Wins(&year, filter.Options{})
	require.NoError(t, err)
	games, err := GamesPlayed(&year, filter.Options{})
	require.NoError(t, err)
	points, err := PointsScored(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "0", wins[teams[0].ID])
	assertDec(t, "1", wins[teams[1].ID])
	assertDec(t, "1", games[teams[0].ID])
	assertDec(t, "25", points[teams[0].ID])
	assertDec(t, "25", points[teams[1].ID])
}

// A and B play a two-week group at 60-50 each week while C and D play 100-90 each week.
// Weekly figures must compare each leg's own score, never the group total.
func TestWeeklyFigures_MultiWeekLegsCompeteWithinTheirWeek(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(4)
	a, b, c, d := teams[0], teams[1], teams[2], teams[3]
	leg1 := prototype.Matchup(a, b, "60", "50", model.Playoff)
	leg1.MultiWeekMatchupID = "semi"
	leg2 := prototype.Matchup(a, b, "60", "50", model.Playoff)
	leg2.MultiWeekMatchupID = "semi"
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks: []model.Week{
			prototype.Week(1, leg1, prototype.Matchup(c, d, "100", "90", model.Playoff)),
			prototype.Week(2, leg2, prototype.Matchup(c, d, "100", "90", model.Playoff)),
		},
	}

	smart, err := SmartWins(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "0.66666666666666666667", smart[a.ID])
	assertDec(t, "0", smart[b.ID])
	assertDec(t, "2", smart[c.ID])
	assertDec(t, "1.33333333333333333333", smart[d.ID])

	perGame, err := SmartWinsPerGame(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "1", perGame[c.ID])

	opponent, err := OpponentSmartWins(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "0", opponent[a.ID])
	assertDec(t, "2", opponent[d.ID])

	maxShare, err := MaxScoringShare(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "20", maxShare[a.ID])
	minShare, err := MinScoringShare(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "30", minShare[d.ID])

	points, err := PointsScored(&year, filter.Options{})
	require.NoError(t, err)
	assertDec(t, "120", points[a.ID])
}

func TestCalculators_EveryTeamPresent(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(3)
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks:      []model.Week{prototype.Week(1, prototype.Matchup(teams[0], teams[1], "1", "2", model.RegularSeason))},
	}

	fns := map[string]func(*model.Year, filter.Options) (map[string]decimal.Decimal, error){
		"wins": Wins, "winPercentage": WinPercentage, "maxScore": MaxScore,
		"scoringShare": ScoringShare, "smartWinsPerGame": SmartWinsPerGame, "plusMinus": PlusMinus,
	}
	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			got, err := fn(&year, filter.Options{})
			require.NoError(t, err)
			require.Len(t, got, 3)
			assertDec(t, "0", got[teams[2].ID])
		})
	}
}

func TestCalculators_InvalidFilter(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")

	_, err := Wins(&year, filter.Options{WeekNumberStart: filter.Int(2), WeekNumberEnd: filter.Int(1)})
	assert.ErrorIs(t, err, model.ErrInvalidFilter)

	_, err = ScoringShare(&year, filter.Options{WeekNumberStart: filter.Int(2), WeekNumberEnd: filter.Int(1)})
	assert.ErrorIs(t, err, model.ErrInvalidFilter)
}

func TestCalculators_Idempotent(t *testing.T) {
	year, teams := fourTeamYear()

	first, err := SmartWins(&year, filter.Options{})
	require.NoError(t, err)
	second, err := SmartWins(&year, filter.Options{})
	require.NoError(t, err)

	for _, team := range teams {
		assert.True(t, first[team.ID].Equal(second[team.ID]))
	}
	assertDec(t, "100", year.Weeks[0].Matchups[0].TeamAScore)
}

// ---------------------------------------------------------------------------
// Points
// ---------------------------------------------------------------------------

func TestPoints_FourTeams(t *testing.T) {
	year, teams := fourTeamYear()
	a, d := teams[0].ID, teams[3].ID

	points, err := PointsScored(&year, filter.Options{})
	require.NoError(t, err)
	perGame, err := PointsScoredPerGame(&year, filter.Options{})
	require.NoError(t, err)
	opp, err := OpponentPointsScored(&year, filter.Options{})
	require.NoError(t, err)
	oppPerGame, err := OpponentPointsScoredPerGame(&year, filter.Options{})
	require.NoError(t, err)
	maxScore, err := MaxScore(&year, filter.Options{})
	require.NoError(t, err)
	minScore, err := MinScore(&year, filter.Options{})
	require.NoError(t, err)
	pm, err := PlusMinus(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "160", points[a])
	assertDec(t, "80", perGame[a])
	assertDec(t, "120", opp[a])
	assertDec(t, "85", oppPerGame[d])
	assertDec(t, "100", maxScore[a])
	assertDec(t, "60", minScore[a])
	assertDec(t, "40", pm[a])
	assertDec(t, "-60", pm[d])
	assertDec(t, "0", sum(pm))
}

// ---------------------------------------------------------------------------
// Scoring share
// ---------------------------------------------------------------------------

func TestScoringShare_SumsToExactlyHundred(t *testing.T) {
	year, teams := fourTeamYear()

	share, err := ScoringShare(&year, filter.Options{})
	require.NoError(t, err)
	oppShare, err := OpponentScoringShare(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "100", sum(share))
	assertDec(t, "100", sum(oppShare))
	assert.True(t, share[teams[0].ID].GreaterThan(share[teams[1].ID]))
}

func TestScoringShare_ThirdsStillSumToHundred(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(3)
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks: []model.Week{
			prototype.Week(1, prototype.Matchup(teams[0], teams[1], "1", "1", model.RegularSeason)),
			prototype.Week(2, prototype.Matchup(teams[1], teams[2], "0", "1", model.RegularSeason)),
		},
	}

	share, err := ScoringShare(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "100", sum(share))
	assertDec(t, "33.33333333333333333334", share[teams[0].ID])
	assertDec(t, "33.33333333333333333333", share[teams[1].ID])
}

func TestScoringShare_NoPointsIsZero(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "0", "0")

	share, err := ScoringShare(&year, filter.Options{})
	require.NoError(t, err)

	assertDec(t, "0", share[teams[0].ID])
	assertDec(t, "0", share[teams[1].ID])
}

func TestMaxMinScoringShare(t *testing.T) {
	year, teams := fourTeamYear()
	a := teams[0].ID

	maxShare, err := MaxScoringShare(&year, filter.Options{})
	require.NoError(t, err)
	minShare, err := MinScoringShare(&year, filter.Options{})
	require.NoError(t, err)

	// week 1: 100 / 310, week 2: 60 / 250
	assertDec(t, "32.25806451612903225806", maxShare[a])
	assertDec(t, "24", minShare[a])
}

func TestPercentages(t *testing.T) {
	got := Percentages(map[string]decimal.Decimal{"x": decimal.NewFromInt(1), "y": decimal.NewFromInt(2)}, []string{"x", "y"})

	assertDec(t, "100", sum(got))
	assertDec(t, "66.66666666666666666667", got["y"])
}

// ---------------------------------------------------------------------------
// Smart wins
// ---------------------------------------------------------------------------

func TestSmartWins_TwoTeamsEqualWins(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "3", "7")

	wins, err := Wins(&year, filter.Options{})
	require.NoError(t, err)
	smart, err := SmartWins(&year, filter.Options{})
	require.NoError(t, err)

	for _, team := range teams {
		assert.True(t, wins[team.ID].Equal(smart[team.ID]), team.Name)
	}
}

func TestSmartWins_FourTeams(t *testing.T) {
	year, teams := fourTeamYear()
	a, b, c, d := teams[0].ID, teams[1].ID, teams[2].ID, teams[3].ID

	smart, err := SmartWins(&year, filter.Options{})
	require.NoError(t, err)
	perGame, err := SmartWinsPerGame(&year, filter.Options{})
	require.NoError(t, err)
	opp, err := OpponentSmartWins(&year, filter.Options{})
	require.NoError(t, err)

	// week 1: A beats 3, B none, C and D only B. week 2: B beats 3, C beats A and D, A beats D.
	assertDec(t, "1.33333333333333333333", smart[a])
	assertDec(t, "1", smart[b])
	assertDec(t, "1", smart[c])
	assertDec(t, "0.33333333333333333333", smart[d])
	assertDec(t, "0.5", perGame[c])
	assertDec(t, "0.66666666666666666667", opp[a])
	assertDec(t, "1", opp[b])
}

func TestSmartWins_OnlyQualifyingWeeks(t *testing.T) {
	year, teams := fourTeamYear()

	smart, err := SmartWins(&year, filter.Options{WeekNumberStart: filter.Int(2)})
	require.NoError(t, err)

	assertDec(t, "0.33333333333333333333", smart[teams[0].ID])
	assertDec(t, "0", smart[teams[3].ID])
}
