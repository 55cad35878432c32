// Package sleeper loads leagues from the Sleeper fantasy football API.
package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/kenzliang/leeger/internal/fetch"
	"github.com/kenzliang/leeger/internal/loader"
	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
)

// DefaultMaxWeeks bounds the weeks probed for a season without playoff settings.
const DefaultMaxWeeks = 18

// Playoff round types as Sleeper reports them.
const (
	roundTypeOneWeek          = 0
	roundTypeTwoWeekFinal     = 1
	roundTypeTwoWeeksPerRound = 2
)

// Loader walks a Sleeper league back through its previous seasons. Settings.LeagueID is
// the id of the most recent season to load.
type Loader struct {
	Client   *fetch.Client
	Settings loader.Settings
	MaxWeeks int
	// Force skips the response cache.
	Force bool
}

var _ loader.Loader = (*Loader)(nil)

func New(client *fetch.Client, settings loader.Settings) *Loader {
	return &Loader{Client: client, Settings: settings, MaxWeeks: DefaultMaxWeeks}
}

type season struct {
	year    int
	league  leagueDTO
	users   map[string]userDTO
	rosters []rosterDTO
}

func (l *Loader) log() *logrus.Entry {
	return logger.WithSource("sleeper").WithField("league_id", l.Settings.LeagueID)
}

func loadErr(what string, err error) error {
	return fmt.Errorf("%w: %s: %v", model.ErrLeagueLoader, what, err)
}

func (l *Loader) getJSON(what string, body []byte, err error, v any) error {
	if err != nil {
		return loadErr(what, err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return loadErr("decode "+what, err)
	}
	return nil
}

// seasons follows previous_league_id from the configured league and keeps the requested
// years, oldest first.
func (l *Loader) seasons(ctx context.Context, years []int) ([]season, error) {
	want := make(map[int]bool, len(years))
	oldest := years[0]
	for _, y := range years {
		want[y] = true
		if y < oldest {
			oldest = y
		}
	}

	var out []season
	seen := make(map[string]bool)
	id := l.Settings.LeagueID
	for id != "" && id != "0" && !seen[id] && len(out) < len(years) {
		seen[id] = true
		var lg leagueDTO
		body, err := l.Client.League(ctx, id, l.Force)
		if err := l.getJSON("league "+id, body, err, &lg); err != nil {
			return nil, err
		}
		year, err := strconv.Atoi(lg.Season)
		if err != nil {
			return nil, loadErr("league "+id+" season", err)
		}
		if year < oldest {
			break
		}
		if want[year] {
			s, err := l.season(ctx, year, lg)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		id = ""
		if lg.PreviousLeagueID != nil {
			id = *lg.PreviousLeagueID
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].year < out[j].year })
	return out, nil
}

func (l *Loader) season(ctx context.Context, year int, lg leagueDTO) (season, error) {
	s := season{year: year, league: lg, users: make(map[string]userDTO)}

	var users []userDTO
	body, err := l.Client.Users(ctx, lg.LeagueID, l.Force)
	if err := l.getJSON("users of "+lg.LeagueID, body, err, &users); err != nil {
		return season{}, err
	}
	for _, u := range users {
		s.users[u.UserID] = u
	}

	body, err = l.Client.Rosters(ctx, lg.LeagueID, l.Force)
	if err := l.getJSON("rosters of "+lg.LeagueID, body, err, &s.rosters); err != nil {
		return season{}, err
	}
	sort.Slice(s.rosters, func(i, j int) bool { return s.rosters[i].RosterID < s.rosters[j].RosterID })
	return s, nil
}

// ownerName is the display name of a roster's user, or a placeholder for an orphaned roster.
func (s season) ownerName(r rosterDTO) (string, string) {
	if r.OwnerID != nil {
		if u, ok := s.users[*r.OwnerID]; ok {
			team := u.Metadata.TeamName
			if team == "" {
				team = u.DisplayName
			}
			return u.DisplayName, team
		}
	}
	name := fmt.Sprintf("Roster %d", r.RosterID)
	return name, name
}

// LoadLeague fetches every requested season and builds a validated League.
func (l *Loader) LoadLeague(ctx context.Context) (*model.League, error) {
	base, err := loader.NewBase(l.Settings)
	if err != nil {
		return nil, err
	}
	seasons, err := l.seasons(ctx, base.Years)
	if err != nil {
		return nil, err
	}

	years := make([]model.Year, 0, len(seasons))
	for _, s := range seasons {
		year, err := l.buildYear(ctx, base, s)
		if err != nil {
			return nil, err
		}
		base.RecordLeagueName(s.year, s.league.Name)
		years = append(years, year)
		l.log().WithFields(logrus.Fields{"year": s.year, "weeks": len(year.Weeks)}).Debug("Loaded season")
	}

	league, err := base.Build(years)
	if err != nil {
		return nil, err
	}
	l.log().WithFields(logrus.Fields{"league": league.Name, "years": len(league.Years)}).Info("Loaded league")
	return league, nil
}

// OwnerNames lists each season's owner display names in roster order.
func (l *Loader) OwnerNames(ctx context.Context) (map[int][]string, error) {
	base, err := loader.NewBase(l.Settings)
	if err != nil {
		return nil, err
	}
	seasons, err := l.seasons(ctx, base.Years)
	if err != nil {
		return nil, err
	}
	out := make(map[int][]string, len(seasons))
	for _, s := range seasons {
		names := make([]string, 0, len(s.rosters))
		for _, r := range s.rosters {
			name, _ := s.ownerName(r)
			names = append(names, name)
		}
		out[s.year] = names
	}
	return out, nil
}
