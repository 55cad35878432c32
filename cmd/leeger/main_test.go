package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kenzliang/leeger/internal/config"
	"github.com/kenzliang/leeger/internal/model"
)

const leagueYAML = `
name: CLI League
owners:
  - {id: o1, name: Alice}
  - {id: o2, name: Bob}
years:
  - yearNumber: 2020
    teams:
      - {id: a, name: Aces, ownerId: o1}
      - {id: b, name: Bees, ownerId: o2}
    weeks:
      - weekNumber: 1
        matchups:
          - {teamA: a, teamB: b, teamAScore: 10, teamBScore: 20}
      - weekNumber: 2
        isPlayoffWeek: true
        isChampionshipWeek: true
        matchups:
          - {teamA: a, teamB: b, teamAScore: 30, teamBScore: 20}
  - yearNumber: 2021
    teams:
      - {id: a, name: Aces, ownerId: o1}
      - {id: b, name: Bees, ownerId: o2}
    weeks:
      - weekNumber: 1
        matchups:
          - {teamA: a, teamB: b, teamAScore: 15, teamBScore: 5}
`

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "league.yaml")
	require.NoError(t, os.WriteFile(path, []byte(leagueYAML), 0o644))
	return &config.Config{
		Source:      config.SourceFile,
		LeaguePath:  path,
		ArchivePath: filepath.Join(dir, "leeger.db"),
		ArchiveKey:  "default",
	}
}

func TestRun_Validate(t *testing.T) {
	require.NoError(t, run(context.Background(), "validate", testConfig(t), options{}, &bytes.Buffer{}))
}

func TestRun_YearStats(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "stats", testConfig(t), options{year: 2020}, &out))

	var got sheetOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "CLI League", got.League)
	assert.Equal(t, 2020, got.Year)
	require.NotEmpty(t, got.Stats)
	assert.Equal(t, "Games Played", got.Stats[0].Name)
	assert.ElementsMatch(t, []string{"Aces", "Bees"}, mapValues(got.Names))
}

func TestRun_AllTimeStatsWithFilters(t *testing.T) {
	cfg := testConfig(t)
	cfg.Filters = map[string]any{"onlyPostSeason": true, "bogus": 1}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "stats", cfg, options{}, &out))

	var got sheetOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, true, got.Filters["onlyPostSeason"])
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, mapValues(got.Names))

	wins := got.Stats[1]
	require.Equal(t, "Wins", wins.Name)
	for id, name := range got.Names {
		want := "0"
		if name == "Alice" {
			want = "1"
		}
		assert.Equal(t, want, wins.Values[id].String(), name)
	}
}

func TestRun_HeadToHead(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "h2h", testConfig(t), options{ownerA: "Alice", ownerB: "Bob"}, &out))

	var got struct {
		OwnerA struct {
			Wins   int `json:"wins"`
			Losses int `json:"losses"`
		} `json:"owner_a"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 2, got.OwnerA.Wins)
	assert.Equal(t, 1, got.OwnerA.Losses)
}

func TestRun_ExportAndSave(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()

	xlsx := filepath.Join(dir, "out.xlsx")
	require.NoError(t, run(context.Background(), "export", cfg, options{out: xlsx}, &bytes.Buffer{}))
	f, err := excelize.OpenFile(xlsx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2020", "2021", "All Time"}, f.GetSheetList())
	require.NoError(t, f.Close())

	saved := filepath.Join(dir, "copy.json")
	require.NoError(t, run(context.Background(), "save", cfg, options{out: saved}, &bytes.Buffer{}))
	cfg.LeaguePath = saved
	require.NoError(t, run(context.Background(), "validate", cfg, options{}, &bytes.Buffer{}))
}

func TestRun_ArchiveThenLoad(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, run(context.Background(), "archive", cfg, options{key: "cli"}, &bytes.Buffer{}))

	cfg.Source = config.SourceSQLite
	cfg.ArchiveKey = "cli"
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "stats", cfg, options{year: 2021}, &out))
	assert.Contains(t, out.String(), "CLI League")
}

func TestRun_Errors(t *testing.T) {
	cfg := testConfig(t)

	err := run(context.Background(), "stats", cfg, options{year: 1999}, &bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrDoesNotExist)

	assert.Error(t, run(context.Background(), "frobnicate", cfg, options{}, &bytes.Buffer{}))

	cfg.Filters = map[string]any{"onlyChampionship": "yes"}
	err = run(context.Background(), "stats", cfg, options{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrInvalidFilter)
}

func TestRun_Owners(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "owners", testConfig(t), options{}, &out))

	var got map[int][]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, []string{"Alice", "Bob"}, got[2020])
}

func mapValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func TestRun_Reconcile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, run(context.Background(), "archive", cfg, options{}, &bytes.Buffer{}))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), "reconcile", cfg, options{}, &out))

	var report struct {
		Matchups   int   `json:"matchups"`
		Mismatches []any `json:"mismatches"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 3, report.Matchups)
	assert.Empty(t, report.Mismatches)

	err := run(context.Background(), "reconcile", cfg, options{key: "missing"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrDoesNotExist)
}
