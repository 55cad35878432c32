package model

import (
	"fmt"
	"strings"
)

// MatchupType tags the season phase of a matchup.
// Unspecified means the phase is derived from the containing week's flags.
type MatchupType int

const (
	Unspecified MatchupType = iota
	RegularSeason
	Playoff
	Championship
	Ignore
)

var matchupTypeNames = map[MatchupType]string{
	Unspecified:   "",
	RegularSeason: "REGULAR_SEASON",
	Playoff:       "PLAYOFF",
	Championship:  "CHAMPIONSHIP",
	Ignore:        "IGNORE",
}

func (t MatchupType) String() string {
	if name, ok := matchupTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MatchupType(%d)", int(t))
}

// ParseMatchupType accepts the upper-case names case-insensitively; "" is Unspecified.
func ParseMatchupType(s string) (MatchupType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for t, name := range matchupTypeNames {
		if name == s {
			return t, nil
		}
	}
	return Unspecified, fmt.Errorf("%w: unknown matchup type %q", ErrInvalidFormat, s)
}

func (t MatchupType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *MatchupType) UnmarshalText(b []byte) error {
	parsed, err := ParseMatchupType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
