// Package reconcile compares two copies of a league, typically a fresh load from the
// platform against the archived one, and reports every matchup that differs.
package reconcile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kenzliang/leeger/internal/model"
	"github.com/kenzliang/leeger/internal/navigator"
)

// Kinds of mismatch.
const (
	MissingInArchive = "missing_in_archive"
	MissingInSource  = "missing_in_source"
	ScoreChanged     = "score_changed"
	TypeChanged      = "type_changed"
)

// Mismatch is one matchup that is not the same in both leagues. Owners are named by their
// lower-cased canonical name so the two copies can use different ids. A mismatch without a
// week covers a whole year.
type Mismatch struct {
	Year          int               `json:"year"`
	Week          int               `json:"week,omitempty"`
	Kind          string            `json:"kind"`
	OwnerA        string            `json:"owner_a,omitempty"`
	OwnerB        string            `json:"owner_b,omitempty"`
	SourceScores  []decimal.Decimal `json:"source_scores,omitempty"`
	ArchiveScores []decimal.Decimal `json:"archive_scores,omitempty"`
	SourceType    string            `json:"source_type,omitempty"`
	ArchiveType   string            `json:"archive_type,omitempty"`
}

type Report struct {
	League         string     `json:"league"`
	GeneratedAtUTC string     `json:"generated_at_utc"`
	Matchups       int        `json:"matchups"`
	Mismatches     []Mismatch `json:"mismatches"`
}

// Clean reports whether both leagues agree.
func (r *Report) Clean() bool {
	return len(r.Mismatches) == 0
}

type key struct {
	year, week int
	a, b       string
}

type entry struct {
	scores []decimal.Decimal
	kind   model.MatchupType
}

// index flattens a league to matchups keyed by year, week and canonical owner names. The
// pair is ordered by name and scores follow the same order.
func index(league *model.League) (map[key]entry, map[int]bool, error) {
	idx := navigator.NewOwnerIndex(league)
	out := make(map[key]entry)
	years := make(map[int]bool, len(league.Years))
	for _, year := range navigator.SortedYears(league) {
		years[year.YearNumber] = true
		for _, w := range year.Weeks {
			for _, m := range w.Matchups {
				a, err := ownerName(idx, year, m.TeamAID)
				if err != nil {
					return nil, nil, err
				}
				b, err := ownerName(idx, year, m.TeamBID)
				if err != nil {
					return nil, nil, err
				}
				scores := []decimal.Decimal{m.TeamAScore, m.TeamBScore}
				if b < a {
					a, b = b, a
					scores[0], scores[1] = scores[1], scores[0]
				}
				out[key{year: year.YearNumber, week: w.WeekNumber, a: a, b: b}] = entry{scores: scores, kind: m.MatchupType}
			}
		}
	}
	return out, years, nil
}

func ownerName(idx *navigator.OwnerIndex, year *model.Year, teamID string) (string, error) {
	id, err := idx.OwnerForTeam(year, teamID)
	if err != nil {
		return "", err
	}
	o, err := idx.Owner(id)
	if err != nil {
		return "", err
	}
	return strings.ToLower(o.Name), nil
}

// BuildReport lists the differences between source and archive. Years present in only one
// of them are reported once rather than matchup by matchup.
func BuildReport(source *model.League, archive *model.League) (*Report, error) {
	src, srcYears, err := index(source)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	arc, arcYears, err := index(archive)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}

	mismatches := make([]Mismatch, 0)
	for y := range srcYears {
		if !arcYears[y] {
			mismatches = append(mismatches, Mismatch{Year: y, Kind: MissingInArchive})
		}
	}
	for y := range arcYears {
		if !srcYears[y] {
			mismatches = append(mismatches, Mismatch{Year: y, Kind: MissingInSource})
		}
	}

	for k, s := range src {
		if !arcYears[k.year] {
			continue
		}
		a, ok := arc[k]
		if !ok {
			mismatches = append(mismatches, mismatch(k, MissingInArchive, &s, nil))
			continue
		}
		if !s.scores[0].Equal(a.scores[0]) || !s.scores[1].Equal(a.scores[1]) {
			mismatches = append(mismatches, mismatch(k, ScoreChanged, &s, &a))
		} else if s.kind != a.kind {
			mismatches = append(mismatches, mismatch(k, TypeChanged, &s, &a))
		}
	}
	for k, a := range arc {
		if !srcYears[k.year] {
			continue
		}
		if _, ok := src[k]; !ok {
			mismatches = append(mismatches, mismatch(k, MissingInSource, nil, &a))
		}
	}

	sort.Slice(mismatches, func(i, j int) bool {
		x, y := mismatches[i], mismatches[j]
		if x.Year != y.Year {
			return x.Year < y.Year
		}
		if x.Week != y.Week {
			return x.Week < y.Week
		}
		if x.OwnerA != y.OwnerA {
			return x.OwnerA < y.OwnerA
		}
		return x.Kind < y.Kind
	})

	return &Report{
		League:         source.Name,
		GeneratedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Matchups:       len(src),
		Mismatches:     mismatches,
	}, nil
}

func mismatch(k key, kind string, s *entry, a *entry) Mismatch {
	m := Mismatch{Year: k.year, Week: k.week, Kind: kind, OwnerA: k.a, OwnerB: k.b}
	if s != nil {
		m.SourceScores = s.scores
		m.SourceType = s.kind.String()
	}
	if a != nil {
		m.ArchiveScores = a.scores
		m.ArchiveType = a.kind.String()
	}
	return m
}
