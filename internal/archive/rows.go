package archive

import (
	"time"

	"github.com/shopspring/decimal"
)

// Every row carries the archive key of its league so one database can hold many leagues.

type leagueRow struct {
	LeagueKey string `gorm:"primaryKey"`
	Name      string
	SavedAt   time.Time
}

func (leagueRow) TableName() string { return "leagues" }

type ownerRow struct {
	LeagueKey string   `gorm:"primaryKey"`
	ID        string   `gorm:"primaryKey"`
	Position  int      `gorm:"not null"`
	Name      string   `gorm:"not null"`
	Aliases   []string `gorm:"serializer:json;type:text"`
}

func (ownerRow) TableName() string { return "owners" }

type yearRow struct {
	LeagueKey  string `gorm:"primaryKey"`
	YearNumber int    `gorm:"primaryKey;autoIncrement:false"`
	PPR        *bool
}

func (yearRow) TableName() string { return "years" }

type teamRow struct {
	LeagueKey  string `gorm:"primaryKey"`
	ID         string `gorm:"primaryKey"`
	YearNumber int    `gorm:"index"`
	Position   int
	OwnerID    string
	Name       string
}

func (teamRow) TableName() string { return "teams" }

type weekRow struct {
	LeagueKey          string `gorm:"primaryKey"`
	YearNumber         int    `gorm:"primaryKey;autoIncrement:false"`
	WeekNumber         int    `gorm:"primaryKey;autoIncrement:false"`
	IsPlayoffWeek      bool
	IsChampionshipWeek bool
}

func (weekRow) TableName() string { return "weeks" }

type matchupRow struct {
	LeagueKey          string `gorm:"primaryKey"`
	ID                 string `gorm:"primaryKey"`
	YearNumber         int    `gorm:"index"`
	WeekNumber         int
	Position           int
	TeamAID            string
	TeamBID            string
	TeamAScore         decimal.Decimal `gorm:"type:text"`
	TeamBScore         decimal.Decimal `gorm:"type:text"`
	MatchupType        string
	TeamAHasTiebreaker bool
	TeamBHasTiebreaker bool
	MultiWeekMatchupID string
}

func (matchupRow) TableName() string { return "matchups" }

var allRows = []any{&leagueRow{}, &ownerRow{}, &yearRow{}, &teamRow{}, &weekRow{}, &matchupRow{}}
