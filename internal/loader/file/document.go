package file

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kenzliang/leeger/internal/model"
)

// Document is the on-disk league layout. JSON documents parse as YAML.
type Document struct {
	Name   string          `yaml:"name" json:"name"`
	Owners []ownerDocument `yaml:"owners" json:"owners"`
	Years  []yearDocument  `yaml:"years" json:"years"`
}

type ownerDocument struct {
	ID      string   `yaml:"id,omitempty" json:"id,omitempty"`
	Name    string   `yaml:"name" json:"name"`
	Aliases []string `yaml:"aliases,omitempty" json:"aliases,omitempty"`
}

type yearDocument struct {
	YearNumber int            `yaml:"yearNumber" json:"yearNumber"`
	Name       string         `yaml:"name,omitempty" json:"name,omitempty"`
	PPR        *bool          `yaml:"ppr,omitempty" json:"ppr,omitempty"`
	Teams      []teamDocument `yaml:"teams" json:"teams"`
	Weeks      []weekDocument `yaml:"weeks" json:"weeks"`
}

// teamDocument names its owner by id or by name.
type teamDocument struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	OwnerID string `yaml:"ownerId,omitempty" json:"ownerId,omitempty"`
	Owner   string `yaml:"owner,omitempty" json:"owner,omitempty"`
}

type weekDocument struct {
	WeekNumber         int               `yaml:"weekNumber" json:"weekNumber"`
	IsPlayoffWeek      bool              `yaml:"isPlayoffWeek,omitempty" json:"isPlayoffWeek,omitempty"`
	IsChampionshipWeek bool              `yaml:"isChampionshipWeek,omitempty" json:"isChampionshipWeek,omitempty"`
	Matchups           []matchupDocument `yaml:"matchups" json:"matchups"`
}

type matchupDocument struct {
	TeamA              string            `yaml:"teamA" json:"teamA"`
	TeamB              string            `yaml:"teamB" json:"teamB"`
	TeamAScore         score             `yaml:"teamAScore" json:"teamAScore"`
	TeamBScore         score             `yaml:"teamBScore" json:"teamBScore"`
	MatchupType        model.MatchupType `yaml:"matchupType,omitempty" json:"matchupType,omitempty"`
	TeamAHasTiebreaker bool              `yaml:"teamAHasTiebreaker,omitempty" json:"teamAHasTiebreaker,omitempty"`
	TeamBHasTiebreaker bool              `yaml:"teamBHasTiebreaker,omitempty" json:"teamBHasTiebreaker,omitempty"`
	MultiWeekMatchupID string            `yaml:"multiWeekMatchupId,omitempty" json:"multiWeekMatchupId,omitempty"`
}

// score keeps the literal text of a number so no precision is lost through float parsing.
type score struct {
	decimal.Decimal
}

func (s *score) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: score must be a number", model.ErrInvalidFormat, n.Line)
	}
	d, err := decimal.NewFromString(n.Value)
	if err != nil {
		return fmt.Errorf("%w: line %d: score %q: %v", model.ErrInvalidFormat, n.Line, n.Value, err)
	}
	s.Decimal = d
	return nil
}

func (s score) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s.String()}, nil
}
