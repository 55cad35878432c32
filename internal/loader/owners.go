package loader

import (
	"fmt"
	"strings"

	"github.com/kenzliang/leeger/internal/model"
)

// OwnerRegistry hands out one Owner per person while a league is loaded. Names listed as
// aliases resolve to the name they are an alias of.
type OwnerRegistry struct {
	general map[string]string
	aliases map[string][]string
	byName  map[string]int
	owners  []model.Owner
}

func NewOwnerRegistry(aliases map[string][]string) *OwnerRegistry {
	r := &OwnerRegistry{
		general: make(map[string]string),
		aliases: make(map[string][]string, len(aliases)),
		byName:  make(map[string]int),
	}
	for name, list := range aliases {
		name = strings.TrimSpace(name)
		for _, a := range list {
			a = strings.TrimSpace(a)
			if a == "" || a == name {
				continue
			}
			r.general[a] = name
			r.aliases[name] = append(r.aliases[name], a)
		}
	}
	return r
}

// GeneralName returns the name a given name is an alias of, or the name itself.
func (r *OwnerRegistry) GeneralName(name string) string {
	name = strings.TrimSpace(name)
	if g, ok := r.general[name]; ok {
		return g
	}
	return name
}

// Owner returns the owner known by name or any of its aliases, creating it on first use.
func (r *OwnerRegistry) Owner(name string) model.Owner {
	general := r.GeneralName(name)
	if i, ok := r.byName[general]; ok {
		return r.owners[i]
	}
	o := model.NewOwner(general, r.aliases[general]...)
	r.byName[general] = len(r.owners)
	r.owners = append(r.owners, o)
	return o
}

// ByName looks up an owner that has already been created.
func (r *OwnerRegistry) ByName(name string) (model.Owner, error) {
	if i, ok := r.byName[r.GeneralName(name)]; ok {
		return r.owners[i], nil
	}
	return model.Owner{}, fmt.Errorf(
		"%w: owner name %q does not match any previously loaded owner names; to give one owner several names, configure owner aliases",
		model.ErrDoesNotExist, name)
}

// Owners lists created owners in creation order.
func (r *OwnerRegistry) Owners() []model.Owner {
	return append([]model.Owner(nil), r.owners...)
}
