package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/prototype"
)

func allWeeks(year *model.Year) filter.YearFilters {
	f, err := filter.ForYear(year, filter.Options{})
	if err != nil {
		panic(err)
	}
	return f
}

func collect(year *model.Year, f filter.YearFilters) []WeekMatchup {
	var out []WeekMatchup
	for wm := range Matchups(year, f) {
		out = append(out, wm)
	}
	return out
}

// ---------------------------------------------------------------------------
// Matchups
// ---------------------------------------------------------------------------

func TestMatchups_PhaseFiltering(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")

	assert.Len(t, collect(&year, allWeeks(&year)), 3)

	post, err := filter.ForYear(&year, filter.Options{OnlyPostSeason: true})
	require.NoError(t, err)
	got := collect(&year, post)
	require.Len(t, got, 2)
	assert.Equal(t, model.Playoff, got[0].Phase)
	assert.Equal(t, model.Championship, got[1].Phase)

	champ, err := filter.ForYear(&year, filter.Options{OnlyChampionship: true})
	require.NoError(t, err)
	got = collect(&year, champ)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Week.WeekNumber)
}

func TestMatchups_WeekBounds(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")

	f, err := filter.ForYear(&year, filter.Options{WeekNumberStart: filter.Int(2), WeekNumberEnd: filter.Int(2)})
	require.NoError(t, err)

	got := collect(&year, f)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Week.WeekNumber)
}

func TestMatchups_IgnoreNeverYielded(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks: []model.Week{
			prototype.Week(1, prototype.Matchup(teams[0], teams[1], "1", "2", model.Ignore)),
		},
	}

	assert.Empty(t, collect(&year, allWeeks(&year)))
}

func TestMatchups_WeekFlagsClassifyUntaggedMatchups(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	w2 := prototype.Week(2, prototype.Matchup(teams[0], teams[1], "1", "2", model.Unspecified))
	w2.IsPlayoffWeek = true
	w2.IsChampionshipWeek = true
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks: []model.Week{
			prototype.Week(1, prototype.Matchup(teams[0], teams[1], "1", "2", model.Unspecified)),
			w2,
		},
	}

	f, err := filter.ForYear(&year, filter.Options{OnlyChampionship: true})
	require.NoError(t, err)
	got := collect(&year, f)
	require.Len(t, got, 1)
	assert.Equal(t, model.Championship, got[0].Phase)
}

func TestMatchups_MultiWeekCountedOnceAtFinalWeek(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	m1 := prototype.Matchup(teams[0], teams[1], "10", "20", model.Playoff)
	m1.MultiWeekMatchupID = "final"
	m2 := prototype.Matchup(teams[0], teams[1], "15", "5", model.Playoff)
	m2.MultiWeekMatchupID = "final"
	m2.TeamBHasTiebreaker = true
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks:      []model.Week{prototype.Week(1, m1), prototype.Week(2, m2)},
	}

	got := collect(&year, allWeeks(&year))

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].Week.WeekNumber)
	assert.True(t, prototype.Dec("25").Equal(got[0].Matchup.TeamAScore))
	assert.True(t, prototype.Dec("25").Equal(got[0].Matchup.TeamBScore))
	assert.Equal(t, teams[1].ID, got[0].Matchup.WinnerID())

	// the stored matchups are untouched
	assert.True(t, prototype.Dec("15").Equal(year.Weeks[1].Matchups[0].TeamAScore))
}

func TestMatchups_MultiWeekFinalWeekOutsideWindow(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	m1 := prototype.Matchup(teams[0], teams[1], "10", "20", model.Playoff)
	m1.MultiWeekMatchupID = "final"
	m2 := prototype.Matchup(teams[0], teams[1], "15", "5", model.Playoff)
	m2.MultiWeekMatchupID = "final"
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks:      []model.Week{prototype.Week(1, m1), prototype.Week(2, m2)},
	}

	f, err := filter.ForYear(&year, filter.Options{WeekNumberEnd: filter.Int(1)})
	require.NoError(t, err)

	assert.Empty(t, collect(&year, f))
}

func TestWeekScores_MultiWeekLegsKeepTheirOwnScores(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	m1 := prototype.Matchup(teams[0], teams[1], "10", "20", model.Playoff)
	m1.MultiWeekMatchupID = "final"
	m2 := prototype.Matchup(teams[0], teams[1], "15", "5", model.Playoff)
	m2.MultiWeekMatchupID = "final"
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks:      []model.Week{prototype.Week(1, m1), prototype.Week(2, m2)},
	}

	order, byWeek := WeekScores(&year, allWeeks(&year))

	assert.Equal(t, []int{1, 2}, order)
	assert.True(t, prototype.Dec("10").Equal(byWeek[1][teams[0].ID]))
	assert.True(t, prototype.Dec("5").Equal(byWeek[2][teams[1].ID]))
}

func TestMatchups_Restartable(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")
	seq := Matchups(&year, allWeeks(&year))

	first, second := 0, 0
	for range seq {
		first++
	}
	for range seq {
		second++
	}
	assert.Equal(t, 3, first)
	assert.Equal(t, first, second)
}

func TestGamesPlayed_IncludesTeamsWithoutGames(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(3)
	year := model.Year{
		YearNumber: 2000,
		Teams:      teams,
		Weeks: []model.Week{
			prototype.Week(1, prototype.Matchup(teams[0], teams[1], "1", "2", model.RegularSeason)),
		},
	}

	got := GamesPlayed(&year, allWeeks(&year))

	assert.Equal(t, map[string]int{teams[0].ID: 1, teams[1].ID: 1, teams[2].ID: 0}, got)
}

// ---------------------------------------------------------------------------
// Lookups
// ---------------------------------------------------------------------------

func TestYearByNumber(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	league := &model.League{Years: []model.Year{prototype.ThreeWeekYear(2000, teams, "1", "2")}}

	y, err := YearByNumber(league, 2000)
	require.NoError(t, err)
	assert.Equal(t, 2000, y.YearNumber)

	_, err = YearByNumber(league, 2001)
	assert.ErrorIs(t, err, model.ErrDoesNotExist)
}

func TestTeamAndWeekLookups(t *testing.T) {
	_, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")

	_, err := TeamByID(&year, "nope")
	assert.ErrorIs(t, err, model.ErrDoesNotExist)

	w, err := WeekByNumber(&year, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, w.WeekNumber)

	_, err = WeekByNumber(&year, 9)
	assert.ErrorIs(t, err, model.ErrDoesNotExist)
}

func TestSortedYears(t *testing.T) {
	league := &model.League{Years: []model.Year{{YearNumber: 2002}, {YearNumber: 2000}, {YearNumber: 2001}}}

	got := SortedYears(league)

	require.Len(t, got, 3)
	assert.Equal(t, []int{2000, 2001, 2002}, []int{got[0].YearNumber, got[1].YearNumber, got[2].YearNumber})
}

// ---------------------------------------------------------------------------
// OwnerIndex
// ---------------------------------------------------------------------------

func TestOwnerIndex_MergesAliases(t *testing.T) {
	a := model.Owner{ID: "a", Name: "Alice", Aliases: []string{"Ali"}}
	b := model.Owner{ID: "b", Name: "Bob"}
	ali := model.Owner{ID: "a2", Name: "Ali"}
	league := &model.League{Owners: []model.Owner{a, b, ali}}

	idx := NewOwnerIndex(league)

	assert.Equal(t, "a", idx.Canonical("a2"))
	assert.Equal(t, "b", idx.Canonical("b"))
	assert.Equal(t, []string{"a", "b"}, idx.CanonicalIDs())
	assert.Equal(t, []string{"Alice", "Ali"}, idx.Names("a2"))

	o, err := idx.OwnerByName("Ali")
	require.NoError(t, err)
	assert.Equal(t, "a", o.ID)

	_, err = idx.OwnerByName("Carol")
	assert.ErrorIs(t, err, model.ErrDoesNotExist)
}

func TestOwnerIndex_SharedNameWithoutAliasStaysDistinct(t *testing.T) {
	first := model.Owner{ID: "o1", Name: "Alex"}
	second := model.Owner{ID: "o2", Name: "Alex"}
	sam := model.Owner{ID: "o3", Name: "Sam"}

	idx := NewOwnerIndex(&model.League{Owners: []model.Owner{first, second, sam}})

	assert.Equal(t, "o2", idx.Canonical("o2"))
	assert.Equal(t, []string{"o1", "o2", "o3"}, idx.CanonicalIDs())
	o, err := idx.OwnerByName("Alex")
	require.NoError(t, err)
	assert.Equal(t, "o1", o.ID)
}

func TestOwnerIndex_OwnerForTeam(t *testing.T) {
	owners, teams := prototype.OwnersAndTeams(2)
	year := prototype.ThreeWeekYear(2000, teams, "1", "2")
	idx := NewOwnerIndex(&model.League{Owners: owners, Years: []model.Year{year}})

	got, err := idx.OwnerForTeam(&year, teams[1].ID)
	require.NoError(t, err)
	assert.Equal(t, owners[1].ID, got)

	_, err = idx.OwnerForTeam(&year, "nope")
	assert.ErrorIs(t, err, model.ErrDoesNotExist)
}
