package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/headtohead"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
	"github.com/kenzliang/leeger/internal/statsheet"
)

// ServerConfig is what every tool reads from. The league is loaded once at startup and never
// mutated, so handlers may share it.
type ServerConfig struct {
	League *model.League
	// Filters are the configured defaults. Tool arguments override them key by key.
	Filters map[string]any
}

type LeagueArgs struct{}

type FilterArgs struct {
	Filters map[string]any `json:"filters,omitempty" jsonschema:"Filter overrides: yearNumberStart, weekNumberStart, yearNumberEnd, weekNumberEnd, onlyChampionship, onlyPostSeason, onlyRegularSeason"`
}

type YearStatsArgs struct {
	Year    int            `json:"year" jsonschema:"Year number (required)"`
	Filters map[string]any `json:"filters,omitempty" jsonschema:"Filter overrides: weekNumberStart, weekNumberEnd, onlyChampionship, onlyPostSeason, onlyRegularSeason"`
}

type OwnerLookupArgs struct {
	Name string `json:"name" jsonschema:"Owner name or alias (required)"`
}

type HeadToHeadArgs struct {
	OwnerA  string         `json:"owner_a" jsonschema:"First owner name or alias (required)"`
	OwnerB  string         `json:"owner_b" jsonschema:"Second owner name or alias (required)"`
	Filters map[string]any `json:"filters,omitempty" jsonschema:"Filter overrides, as for all_time_stats"`
}

// NamedRow is one team or owner with every stat value, in display order.
type NamedRow struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Values map[string]string `json:"values"`
}

// resolveOptions merges tool filters over the configured ones and converts them.
func resolveOptions(cfg ServerConfig, overrides map[string]any) (filter.Options, []string, error) {
	merged := make(map[string]any, len(cfg.Filters)+len(overrides))
	for k, v := range cfg.Filters {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return filter.OptionsFromMap(merged)
}

func rows(stats []statsheet.Stat, ids []string, names map[string]string) []NamedRow {
	out := make([]NamedRow, 0, len(ids))
	for _, id := range ids {
		values := make(map[string]string, len(stats))
		for _, s := range stats {
			values[s.Name] = s.Values[id].String()
		}
		out = append(out, NamedRow{ID: id, Name: names[id], Values: values})
	}
	return out
}

func buildLeagueYears(cfg ServerConfig) ([]byte, error) {
	type yearInfo struct {
		Year  int      `json:"year"`
		Weeks int      `json:"weeks"`
		Teams []string `json:"teams"`
	}
	years := make([]yearInfo, 0, len(cfg.League.Years))
	for _, y := range navigator.SortedYears(cfg.League) {
		teams := make([]string, 0, len(y.Teams))
		for _, t := range y.Teams {
			teams = append(teams, t.Name)
		}
		years = append(years, yearInfo{Year: y.YearNumber, Weeks: len(y.Weeks), Teams: teams})
	}
	out := map[string]any{
		"league": cfg.League.Name,
		"years":  years,
		"stats":  statsheet.Names(),
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildYearStats(cfg ServerConfig, args YearStatsArgs) ([]byte, error) {
	if args.Year == 0 {
		return nil, fmt.Errorf("year is required")
	}
	year, err := navigator.YearByNumber(cfg.League, args.Year)
	if err != nil {
		return nil, err
	}
	opts, warnings, err := resolveOptions(cfg, args.Filters)
	if err != nil {
		return nil, err
	}
	// league-wide bounds do not apply to a single year
	opts.YearNumberStart, opts.YearNumberEnd = nil, nil
	f, err := filter.ForYear(year, opts)
	if err != nil {
		return nil, err
	}
	stats, err := statsheet.ForYear(year, opts)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(year.Teams))
	for _, t := range year.Teams {
		names[t.ID] = t.Name
	}
	out := map[string]any{
		"league":   cfg.League.Name,
		"year":     year.YearNumber,
		"filters":  f.Options(),
		"teams":    rows(stats, navigator.TeamIDs(year), names),
		"warnings": warnings,
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildAllTimeStats(cfg ServerConfig, args FilterArgs) ([]byte, error) {
	opts, warnings, err := resolveOptions(cfg, args.Filters)
	if err != nil {
		return nil, err
	}
	f, err := filter.ForLeague(cfg.League, opts)
	if err != nil {
		return nil, err
	}
	stats, err := statsheet.AllTime(cfg.League, opts)
	if err != nil {
		return nil, err
	}

	idx := navigator.NewOwnerIndex(cfg.League)
	ids := idx.CanonicalIDs()
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		o, err := idx.Owner(id)
		if err != nil {
			return nil, err
		}
		names[id] = o.Name
	}
	out := map[string]any{
		"league":   cfg.League.Name,
		"filters":  f.AsMap(),
		"owners":   rows(stats, ids, names),
		"warnings": warnings,
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildOwnerLookup(cfg ServerConfig, args OwnerLookupArgs) ([]byte, error) {
	if strings.TrimSpace(args.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	idx := navigator.NewOwnerIndex(cfg.League)
	owner, err := idx.OwnerByName(args.Name)
	if err != nil {
		return nil, err
	}

	type season struct {
		Year int    `json:"year"`
		Team string `json:"team"`
	}
	seasons := make([]season, 0)
	for _, y := range navigator.SortedYears(cfg.League) {
		for _, t := range y.Teams {
			if idx.Canonical(t.OwnerID) == owner.ID {
				seasons = append(seasons, season{Year: y.YearNumber, Team: t.Name})
			}
		}
	}
	names := idx.Names(owner.ID)
	sort.Strings(names)
	out := map[string]any{
		"owner_id": owner.ID,
		"name":     owner.Name,
		"names":    names,
		"seasons":  seasons,
	}
	return json.MarshalIndent(out, "", "  ")
}

func buildHeadToHead(cfg ServerConfig, args HeadToHeadArgs) (headtohead.Output, error) {
	if strings.TrimSpace(args.OwnerA) == "" || strings.TrimSpace(args.OwnerB) == "" {
		return headtohead.Output{}, fmt.Errorf("owner_a and owner_b are required")
	}
	opts, _, err := resolveOptions(cfg, args.Filters)
	if err != nil {
		return headtohead.Output{}, err
	}
	return headtohead.Build(cfg.League, args.OwnerA, args.OwnerB, opts)
}
