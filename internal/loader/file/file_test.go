package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenzliang/leeger/internal/calculator"
	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/loader"
	"github.com/kenzliang/leeger/internal/model"
)

const leagueYAML = `
name: Dynasty
owners:
  - id: o1
    name: Alice
  - id: o2
    name: Bob
years:
  - yearNumber: 2021
    name: Old Dynasty
    teams:
      - {id: a, name: Aces, ownerId: o1}
      - {id: b, name: Bees, ownerId: o2}
    weeks:
      - weekNumber: 1
        matchups:
          - {teamA: a, teamB: b, teamAScore: 100.25, teamBScore: "99.75", matchupType: REGULAR_SEASON}
      - weekNumber: 2
        isPlayoffWeek: true
        isChampionshipWeek: true
        matchups:
          - {teamA: a, teamB: b, teamAScore: 80, teamBScore: 80, teamBHasTiebreaker: true}
  - yearNumber: 2022
    ppr: true
    teams:
      - {id: a, name: Aces Again, owner: Ali}
      - {id: b, name: Bees, ownerId: o2}
    weeks:
      - weekNumber: 1
        matchups:
          - {teamA: a, teamB: b, teamAScore: 1, teamBScore: 2}
`

func writeFile(t *testing.T, name string, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLeague_YAML(t *testing.T) {
	path := writeFile(t, "league.yaml", leagueYAML)
	l := New(path, loader.Settings{OwnerAliases: map[string][]string{"Alice": {"Ali"}}})

	league, err := l.LoadLeague(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Dynasty", league.Name)
	require.Len(t, league.Years, 2)
	assert.Len(t, league.Owners, 2)

	y2021 := &league.Years[0]
	assert.Equal(t, 2021, y2021.YearNumber)
	assert.True(t, y2021.Weeks[1].IsChampionshipWeek)
	assert.Equal(t, "100.25", y2021.Weeks[0].Matchups[0].TeamAScore.String())
	assert.Equal(t, model.RegularSeason, y2021.Weeks[0].Matchups[0].MatchupType)
	assert.NotEqual(t, "a", y2021.Teams[0].ID)

	y2022 := &league.Years[1]
	require.NotNil(t, y2022.Settings)
	assert.True(t, y2022.Settings.PPR)
	assert.Equal(t, y2021.Teams[0].OwnerID, y2022.Teams[0].OwnerID)

	wins, err := calculator.Wins(y2021, filter.Options{OnlyChampionship: true})
	require.NoError(t, err)
	assert.Equal(t, "1", wins[y2021.Teams[1].ID].String())
}

func TestLoadLeague_YearSubset(t *testing.T) {
	path := writeFile(t, "league.yaml", leagueYAML)

	league, err := New(path, loader.Settings{Years: []int{2021}}).LoadLeague(context.Background())
	require.NoError(t, err)
	require.Len(t, league.Years, 1)
	assert.Equal(t, "Old Dynasty", league.Name)

	_, err = New(path, loader.Settings{Years: []int{2021, 2030}}).LoadLeague(context.Background())
	assert.ErrorIs(t, err, model.ErrLeagueLoader)
}

func TestLoadLeague_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"not yaml", "years: [", model.ErrInvalidFormat},
		{"bad score", `
name: L
years:
  - yearNumber: 2000
    teams: [{id: a, name: A, owner: X}, {id: b, name: B, owner: Y}]
    weeks: [{weekNumber: 1, matchups: [{teamA: a, teamB: b, teamAScore: lots, teamBScore: 1}]}]
`, model.ErrInvalidFormat},
		{"unknown team", `
name: L
years:
  - yearNumber: 2000
    teams: [{id: a, name: A, owner: X}]
    weeks: [{weekNumber: 1, matchups: [{teamA: a, teamB: z, teamAScore: 1, teamBScore: 1}]}]
`, model.ErrInvalidFormat},
		{"team without owner", `
name: L
years:
  - yearNumber: 2000
    teams: [{id: a, name: A}]
`, model.ErrInvalidFormat},
		{"no years", "name: L\n", model.ErrLeagueLoader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(writeFile(t, "league.yaml", tt.body), loader.Settings{}).LoadLeague(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadLeague_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "none.yaml"), loader.Settings{}).LoadLeague(context.Background())
	assert.ErrorIs(t, err, model.ErrLeagueLoader)
}

func TestSave_RoundTrip(t *testing.T) {
	for _, ext := range []string{".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			src := writeFile(t, "league.yaml", leagueYAML)
			league, err := New(src, loader.Settings{}).LoadLeague(context.Background())
			require.NoError(t, err)

			out := filepath.Join(t.TempDir(), "copy"+ext)
			require.NoError(t, Save(out, league))
			again, err := New(out, loader.Settings{}).LoadLeague(context.Background())
			require.NoError(t, err)

			assert.Equal(t, league.Name, again.Name)
			require.Len(t, again.Years, len(league.Years))
			m, m2 := league.Years[0].Weeks[1].Matchups[0], again.Years[0].Weeks[1].Matchups[0]
			assert.True(t, m.TeamAScore.Equal(m2.TeamAScore))
			assert.Equal(t, m.TeamBHasTiebreaker, m2.TeamBHasTiebreaker)
			assert.True(t, league.Years[0].Weeks[0].Matchups[0].TeamBScore.Equal(again.Years[0].Weeks[0].Matchups[0].TeamBScore))
			assert.Equal(t, model.RegularSeason, again.Years[0].Weeks[0].Matchups[0].MatchupType)
		})
	}
}

func TestOwnerNames(t *testing.T) {
	names, err := New(writeFile(t, "league.yaml", leagueYAML), loader.Settings{}).OwnerNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[int][]string{2021: {"Alice", "Bob"}, 2022: {"Ali", "Bob"}}, names)
}
