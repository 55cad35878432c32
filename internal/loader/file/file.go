// Package file loads leagues from YAML or JSON documents on disk and writes them back.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/kenzliang/leeger/internal/loader"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/store"
)

// Loader reads a league document. With no years in Settings every year in the document is
// loaded.
type Loader struct {
	Path     string
	Settings loader.Settings

	store *store.JSONStore
	name  string
}

var _ loader.Loader = (*Loader)(nil)

func New(path string, settings loader.Settings) *Loader {
	return &Loader{
		Path:     path,
		Settings: settings,
		store:    store.NewJSONStore(filepath.Dir(path)),
		name:     filepath.Base(path),
	}
}

func (l *Loader) read() (*Document, error) {
	b, err := l.store.ReadRaw(l.name)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", model.ErrLeagueLoader, l.Path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", model.ErrInvalidFormat, l.Path, err)
	}
	return &doc, nil
}

// LoadLeague parses the document and builds a validated League.
func (l *Loader) LoadLeague(ctx context.Context) (*model.League, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := l.read()
	if err != nil {
		return nil, err
	}

	settings := l.Settings
	if len(settings.Years) == 0 {
		for _, y := range doc.Years {
			settings.Years = append(settings.Years, y.YearNumber)
		}
	}
	settings.OwnerAliases = mergeAliases(settings.OwnerAliases, doc.Owners)
	if settings.LeagueID == "" {
		settings.LeagueID = l.Path
	}
	base, err := loader.NewBase(settings)
	if err != nil {
		return nil, err
	}

	ownersByDocID := make(map[string]model.Owner, len(doc.Owners))
	for _, od := range doc.Owners {
		o := base.Owners.Owner(od.Name)
		if od.ID != "" {
			ownersByDocID[od.ID] = o
		}
	}

	byYear := make(map[int]yearDocument, len(doc.Years))
	for _, yd := range doc.Years {
		byYear[yd.YearNumber] = yd
	}

	years := make([]model.Year, 0, len(base.Years))
	for _, y := range base.Years {
		yd, ok := byYear[y]
		if !ok {
			logger.WithSource("file").WithField("year", y).Warn("Requested year not in league document")
			continue
		}
		year, err := buildYear(yd, base, ownersByDocID)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
		name := yd.Name
		if name == "" {
			name = doc.Name
		}
		base.RecordLeagueName(y, name)
	}

	league, err := base.Build(years)
	if err != nil {
		return nil, err
	}
	logger.WithSource("file").WithFields(logrus.Fields{
		"league": league.Name,
		"path":   l.Path,
		"years":  len(league.Years),
	}).Info("Loaded league")
	return league, nil
}

func mergeAliases(configured map[string][]string, owners []ownerDocument) map[string][]string {
	out := make(map[string][]string, len(configured)+len(owners))
	for name, aliases := range configured {
		out[name] = append(out[name], aliases...)
	}
	for _, o := range owners {
		if len(o.Aliases) > 0 {
			out[o.Name] = append(out[o.Name], o.Aliases...)
		}
	}
	return out
}

func buildYear(yd yearDocument, base *loader.Base, ownersByDocID map[string]model.Owner) (model.Year, error) {
	year := model.Year{YearNumber: yd.YearNumber}
	if yd.PPR != nil {
		year.Settings = &model.YearSettings{PPR: *yd.PPR}
	}

	teamIDs := make(map[string]string, len(yd.Teams))
	for _, td := range yd.Teams {
		var owner model.Owner
		switch {
		case td.OwnerID != "":
			o, ok := ownersByDocID[td.OwnerID]
			if !ok {
				return model.Year{}, fmt.Errorf("%w: year %d team %q references unknown owner id %q", model.ErrInvalidFormat, yd.YearNumber, td.Name, td.OwnerID)
			}
			owner = o
		case td.Owner != "":
			owner = base.Owners.Owner(td.Owner)
		default:
			return model.Year{}, fmt.Errorf("%w: year %d team %q has no owner", model.ErrInvalidFormat, yd.YearNumber, td.Name)
		}
		if td.ID == "" {
			return model.Year{}, fmt.Errorf("%w: year %d team %q has no id", model.ErrInvalidFormat, yd.YearNumber, td.Name)
		}
		if _, dup := teamIDs[td.ID]; dup {
			return model.Year{}, fmt.Errorf("%w: year %d team id %q appears twice", model.ErrInvalidFormat, yd.YearNumber, td.ID)
		}
		team := model.NewTeam(owner.ID, td.Name)
		teamIDs[td.ID] = team.ID
		year.Teams = append(year.Teams, team)
	}

	for _, wd := range yd.Weeks {
		week := model.Week{
			WeekNumber:         wd.WeekNumber,
			IsPlayoffWeek:      wd.IsPlayoffWeek,
			IsChampionshipWeek: wd.IsChampionshipWeek,
		}
		for _, md := range wd.Matchups {
			a, okA := teamIDs[md.TeamA]
			b, okB := teamIDs[md.TeamB]
			if !okA || !okB {
				return model.Year{}, fmt.Errorf("%w: year %d week %d matchup %s vs %s references an unknown team",
					model.ErrInvalidFormat, yd.YearNumber, wd.WeekNumber, md.TeamA, md.TeamB)
			}
			m := model.NewMatchup(a, b, md.TeamAScore.Decimal, md.TeamBScore.Decimal)
			m.MatchupType = md.MatchupType
			m.TeamAHasTiebreaker = md.TeamAHasTiebreaker
			m.TeamBHasTiebreaker = md.TeamBHasTiebreaker
			m.MultiWeekMatchupID = md.MultiWeekMatchupID
			week.Matchups = append(week.Matchups, m)
		}
		year.Weeks = append(year.Weeks, week)
	}
	return year, nil
}

// OwnerNames lists the owner names of each year's teams as written in the document.
func (l *Loader) OwnerNames(ctx context.Context) (map[int][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc, err := l.read()
	if err != nil {
		return nil, err
	}
	namesByID := make(map[string]string, len(doc.Owners))
	for _, o := range doc.Owners {
		namesByID[o.ID] = o.Name
	}
	out := make(map[int][]string, len(doc.Years))
	for _, yd := range doc.Years {
		names := make([]string, 0, len(yd.Teams))
		for _, td := range yd.Teams {
			name := td.Owner
			if name == "" {
				name = namesByID[td.OwnerID]
			}
			names = append(names, name)
		}
		out[yd.YearNumber] = names
	}
	return out, nil
}

// Encode converts a league to its document form, keeping the league's ids.
func Encode(league *model.League) Document {
	doc := Document{Name: league.Name}
	for _, o := range league.Owners {
		doc.Owners = append(doc.Owners, ownerDocument{ID: o.ID, Name: o.Name, Aliases: o.Aliases})
	}
	for _, y := range league.Years {
		yd := yearDocument{YearNumber: y.YearNumber}
		if y.Settings != nil {
			ppr := y.Settings.PPR
			yd.PPR = &ppr
		}
		for _, t := range y.Teams {
			yd.Teams = append(yd.Teams, teamDocument{ID: t.ID, Name: t.Name, OwnerID: t.OwnerID})
		}
		for _, w := range y.Weeks {
			wd := weekDocument{WeekNumber: w.WeekNumber, IsPlayoffWeek: w.IsPlayoffWeek, IsChampionshipWeek: w.IsChampionshipWeek}
			for _, m := range w.Matchups {
				wd.Matchups = append(wd.Matchups, matchupDocument{
					TeamA:              m.TeamAID,
					TeamB:              m.TeamBID,
					TeamAScore:         score{m.TeamAScore},
					TeamBScore:         score{m.TeamBScore},
					MatchupType:        m.MatchupType,
					TeamAHasTiebreaker: m.TeamAHasTiebreaker,
					TeamBHasTiebreaker: m.TeamBHasTiebreaker,
					MultiWeekMatchupID: m.MultiWeekMatchupID,
				})
			}
			yd.Weeks = append(yd.Weeks, wd)
		}
		doc.Years = append(doc.Years, yd)
	}
	return doc
}

// Save writes a league document. A .json extension writes JSON, anything else YAML.
func Save(path string, league *model.League) error {
	doc := Encode(league)
	var (
		body []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		body, err = json.MarshalIndent(doc, "", "  ")
	} else {
		body, err = yaml.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("encode league %q: %w", league.Name, err)
	}
	return store.NewJSONStore(filepath.Dir(path)).WriteRaw(filepath.Base(path), body, false)
}
