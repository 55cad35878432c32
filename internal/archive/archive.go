// Package archive persists leagues in a SQLite database.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kenzliang/leeger/internal/logger"
	"github.com/kenzliang/leeger/internal/model"
)

type Archive struct {
	db *gorm.DB
}

// Open opens (creating if needed) the archive at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Archive, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases alive and avoids SQLITE_BUSY on writes
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(allRows...); err != nil {
		return nil, fmt.Errorf("migrate archive %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

func (a *Archive) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Save stores a league under key, replacing anything saved under the same key.
func (a *Archive) Save(ctx context.Context, key string, league *model.League) error {
	if key == "" {
		return fmt.Errorf("%w: empty archive key", model.ErrInvalidFormat)
	}
	err := a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteKey(tx, key); err != nil {
			return err
		}
		if err := tx.Create(&leagueRow{LeagueKey: key, Name: league.Name, SavedAt: time.Now().UTC()}).Error; err != nil {
			return err
		}

		owners := make([]ownerRow, 0, len(league.Owners))
		for i, o := range league.Owners {
			owners = append(owners, ownerRow{LeagueKey: key, ID: o.ID, Position: i, Name: o.Name, Aliases: o.Aliases})
		}
		var (
			years    []yearRow
			teams    []teamRow
			weeks    []weekRow
			matchups []matchupRow
		)
		for _, y := range league.Years {
			yr := yearRow{LeagueKey: key, YearNumber: y.YearNumber}
			if y.Settings != nil {
				ppr := y.Settings.PPR
				yr.PPR = &ppr
			}
			years = append(years, yr)
			for i, t := range y.Teams {
				teams = append(teams, teamRow{LeagueKey: key, ID: t.ID, YearNumber: y.YearNumber, Position: i, OwnerID: t.OwnerID, Name: t.Name})
			}
			for _, w := range y.Weeks {
				weeks = append(weeks, weekRow{
					LeagueKey: key, YearNumber: y.YearNumber, WeekNumber: w.WeekNumber,
					IsPlayoffWeek: w.IsPlayoffWeek, IsChampionshipWeek: w.IsChampionshipWeek,
				})
				for i, m := range w.Matchups {
					matchups = append(matchups, matchupRow{
						LeagueKey: key, ID: m.ID, YearNumber: y.YearNumber, WeekNumber: w.WeekNumber, Position: i,
						TeamAID: m.TeamAID, TeamBID: m.TeamBID,
						TeamAScore: m.TeamAScore, TeamBScore: m.TeamBScore,
						MatchupType:        m.MatchupType.String(),
						TeamAHasTiebreaker: m.TeamAHasTiebreaker,
						TeamBHasTiebreaker: m.TeamBHasTiebreaker,
						MultiWeekMatchupID: m.MultiWeekMatchupID,
					})
				}
			}
		}
		if err := createAll(tx, owners); err != nil {
			return err
		}
		if err := createAll(tx, years); err != nil {
			return err
		}
		if err := createAll(tx, teams); err != nil {
			return err
		}
		if err := createAll(tx, weeks); err != nil {
			return err
		}
		return createAll(tx, matchups)
	})
	if err != nil {
		return fmt.Errorf("save league %q: %w", key, err)
	}
	logger.WithLeague(league.Name).WithField("key", key).Info("Archived league")
	return nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, 200).Error
}

func deleteKey(tx *gorm.DB, key string) error {
	for _, row := range allRows {
		if err := tx.Where("league_key = ?", key).Delete(row).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a saved league.
func (a *Archive) Delete(ctx context.Context, key string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteKey(tx, key)
	})
}

// Keys lists saved leagues.
func (a *Archive) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	if err := a.db.WithContext(ctx).Model(&leagueRow{}).Order("league_key").Pluck("league_key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// Load reads the league saved under key.
func (a *Archive) Load(ctx context.Context, key string) (*model.League, error) {
	db := a.db.WithContext(ctx)

	var lr leagueRow
	if err := db.First(&lr, "league_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: archived league %q", model.ErrDoesNotExist, key)
		}
		return nil, err
	}

	var (
		owners   []ownerRow
		years    []yearRow
		teams    []teamRow
		weeks    []weekRow
		matchups []matchupRow
	)
	queries := []struct {
		dest  any
		order string
	}{
		{&owners, "position"},
		{&years, "year_number"},
		{&teams, "year_number, position"},
		{&weeks, "year_number, week_number"},
		{&matchups, "year_number, week_number, position"},
	}
	for _, q := range queries {
		if err := db.Where("league_key = ?", key).Order(q.order).Find(q.dest).Error; err != nil {
			return nil, fmt.Errorf("load league %q: %w", key, err)
		}
	}

	league := &model.League{Name: lr.Name}
	for _, o := range owners {
		league.Owners = append(league.Owners, model.Owner{ID: o.ID, Name: o.Name, Aliases: o.Aliases})
	}
	index := make(map[int]int, len(years))
	for _, y := range years {
		year := model.Year{YearNumber: y.YearNumber}
		if y.PPR != nil {
			year.Settings = &model.YearSettings{PPR: *y.PPR}
		}
		index[y.YearNumber] = len(league.Years)
		league.Years = append(league.Years, year)
	}
	for _, t := range teams {
		y := &league.Years[index[t.YearNumber]]
		y.Teams = append(y.Teams, model.Team{ID: t.ID, OwnerID: t.OwnerID, Name: t.Name})
	}
	weekIndex := make(map[[2]int]int, len(weeks))
	for _, w := range weeks {
		y := &league.Years[index[w.YearNumber]]
		weekIndex[[2]int{w.YearNumber, w.WeekNumber}] = len(y.Weeks)
		y.Weeks = append(y.Weeks, model.Week{
			WeekNumber:         w.WeekNumber,
			IsPlayoffWeek:      w.IsPlayoffWeek,
			IsChampionshipWeek: w.IsChampionshipWeek,
		})
	}
	for _, m := range matchups {
		t, err := model.ParseMatchupType(m.MatchupType)
		if err != nil {
			return nil, fmt.Errorf("load league %q: %w", key, err)
		}
		y := &league.Years[index[m.YearNumber]]
		w := &y.Weeks[weekIndex[[2]int{m.YearNumber, m.WeekNumber}]]
		w.Matchups = append(w.Matchups, model.Matchup{
			ID:                 m.ID,
			TeamAID:            m.TeamAID,
			TeamBID:            m.TeamBID,
			TeamAScore:         m.TeamAScore,
			TeamBScore:         m.TeamBScore,
			MatchupType:        t,
			TeamAHasTiebreaker: m.TeamAHasTiebreaker,
			TeamBHasTiebreaker: m.TeamBHasTiebreaker,
			MultiWeekMatchupID: m.MultiWeekMatchupID,
		})
	}
	return league, nil
}
