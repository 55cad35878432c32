package navigator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kenzliang/leeger/internal/filter"
	"github.com/kenzliang/leeger/internal/model"
)

// YearByNumber looks up a year in a league.
func YearByNumber(league *model.League, yearNumber int) (*model.Year, error) {
	y, ok := league.YearByNumber(yearNumber)
	if !ok {
		return nil, fmt.Errorf("%w: year %d", model.ErrDoesNotExist, yearNumber)
	}
	return y, nil
}

// SortedYears returns pointers to the league's years ordered by year number.
func SortedYears(league *model.League) []*model.Year {
	out := make([]*model.Year, 0, len(league.Years))
	for i := range league.Years {
		out = append(out, &league.Years[i])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].YearNumber < out[j].YearNumber
	})
	return out
}

// YearsInRange returns the sorted years covered by an all-time filter.
func YearsInRange(league *model.League, f filter.AllTimeFilters) []*model.Year {
	out := make([]*model.Year, 0, len(league.Years))
	for _, y := range SortedYears(league) {
		if f.IncludesYear(y.YearNumber) {
			out = append(out, y)
		}
	}
	return out
}

// OwnerByID looks up an owner in a league.
func OwnerByID(league *model.League, ownerID string) (model.Owner, error) {
	for _, o := range league.Owners {
		if o.ID == ownerID {
			return o, nil
		}
	}
	return model.Owner{}, fmt.Errorf("%w: owner %q", model.ErrDoesNotExist, ownerID)
}

// OwnerIndex resolves owner identity across years. Owners are merged into the first owner
// in league order when an alias links them: one owner's name or alias is listed as an
// alias of the other. Two owners that merely share a name stay distinct, and the name
// resolves to the first of them.
type OwnerIndex struct {
	owners    map[string]model.Owner
	canonical map[string]string
	byName    map[string]string
	aliases   map[string]bool
	names     map[string][]string
	order     []string
}

// NewOwnerIndex builds the lookup tables for a league once.
func NewOwnerIndex(league *model.League) *OwnerIndex {
	idx := &OwnerIndex{
		owners:    make(map[string]model.Owner, len(league.Owners)),
		canonical: make(map[string]string, len(league.Owners)),
		byName:    make(map[string]string),
		aliases:   make(map[string]bool),
		names:     make(map[string][]string),
	}
	for _, o := range league.Owners {
		idx.owners[o.ID] = o
		keys := ownerKeys(o)
		name := strings.TrimSpace(o.Name)

		canon := o.ID
		for _, k := range keys {
			existing, ok := idx.byName[k]
			if !ok {
				continue
			}
			if k == name && !idx.aliases[k] {
				continue
			}
			canon = existing
			break
		}
		idx.canonical[o.ID] = canon
		if canon == o.ID {
			idx.order = append(idx.order, canon)
		}
		for _, k := range keys {
			if _, ok := idx.byName[k]; ok {
				continue
			}
			idx.byName[k] = canon
			idx.aliases[k] = k != name
			idx.names[canon] = append(idx.names[canon], k)
		}
	}
	return idx
}

func ownerKeys(o model.Owner) []string {
	keys := make([]string, 0, 1+len(o.Aliases))
	if name := strings.TrimSpace(o.Name); name != "" {
		keys = append(keys, name)
	}
	for _, a := range o.Aliases {
		if a = strings.TrimSpace(a); a != "" {
			keys = append(keys, a)
		}
	}
	return keys
}

// Canonical returns the canonical owner id for any owner id. Unknown ids map to themselves.
func (idx *OwnerIndex) Canonical(ownerID string) string {
	if c, ok := idx.canonical[ownerID]; ok {
		return c
	}
	return ownerID
}

// CanonicalIDs lists canonical owner ids in league order.
func (idx *OwnerIndex) CanonicalIDs() []string {
	return append([]string(nil), idx.order...)
}

// Owner returns the canonical owner record.
func (idx *OwnerIndex) Owner(ownerID string) (model.Owner, error) {
	o, ok := idx.owners[idx.Canonical(ownerID)]
	if !ok {
		return model.Owner{}, fmt.Errorf("%w: owner %q", model.ErrDoesNotExist, ownerID)
	}
	return o, nil
}

// OwnerByName resolves a name or alias to its canonical owner.
func (idx *OwnerIndex) OwnerByName(name string) (model.Owner, error) {
	id, ok := idx.byName[strings.TrimSpace(name)]
	if !ok {
		return model.Owner{}, fmt.Errorf("%w: owner name %q", model.ErrDoesNotExist, name)
	}
	return idx.owners[id], nil
}

// Names returns every name and alias known for a canonical owner.
func (idx *OwnerIndex) Names(ownerID string) []string {
	return append([]string(nil), idx.names[idx.Canonical(ownerID)]...)
}

// OwnerForTeam returns the canonical owner id of a team in a year.
func (idx *OwnerIndex) OwnerForTeam(year *model.Year, teamID string) (string, error) {
	t, err := TeamByID(year, teamID)
	if err != nil {
		return "", err
	}
	if _, ok := idx.owners[t.OwnerID]; !ok {
		return "", fmt.Errorf("%w: owner %q of team %q", model.ErrDoesNotExist, t.OwnerID, teamID)
	}
	return idx.Canonical(t.OwnerID), nil
}
