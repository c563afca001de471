package adversary

import (
	"slices"
	"sort"
	"strings"
)

// Catalog is a read-only set of adversaries that can be queried.
type Catalog struct {
	adversaries []Adversary
	byName      map[string]int
}

// NewCatalog builds a catalog. Later duplicates of a name shadow earlier ones in Find.
func NewCatalog(adversaries []Adversary) *Catalog {
	c := &Catalog{
		adversaries: slices.Clone(adversaries),
		byName:      make(map[string]int, len(adversaries)),
	}
	for i, a := range c.adversaries {
		c.byName[strings.ToLower(a.Name)] = i
	}
	return c
}

// FilterOptions narrows a catalog query. Empty fields match everything.
type FilterOptions struct {
	Query           string
	ChallengeRating *ChallengeRating
	Habitat         string
	Type            string
	Group           string
	Limit           int
}

// Lookups holds the distinct values present in a catalog, sorted.
type Lookups struct {
	ChallengeRatings []ChallengeRating `json:"challenge_ratings"`
	Habitats         []string          `json:"habitats"`
	Types            []string          `json:"types"`
	Groups           []string          `json:"groups"`
}

// Len returns the number of adversaries in the catalog.
func (c *Catalog) Len() int {
	return len(c.adversaries)
}

// All returns every adversary in catalog order.
func (c *Catalog) All() []Adversary {
	return slices.Clone(c.adversaries)
}

// Find looks up an adversary by name, ignoring case.
func (c *Catalog) Find(name string) (Adversary, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Adversary{}, false
	}
	return c.adversaries[i], true
}

// Filter returns adversaries matching every set option, in catalog order.
func (c *Catalog) Filter(opts FilterOptions) []Adversary {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	out := make([]Adversary, 0)
	for _, a := range c.adversaries {
		if query != "" && !strings.Contains(strings.ToLower(a.Name), query) {
			continue
		}
		if opts.ChallengeRating != nil && a.ChallengeRating != *opts.ChallengeRating {
			continue
		}
		if opts.Habitat != "" && !slices.Contains(a.Habitat, opts.Habitat) {
			continue
		}
		if opts.Type != "" && a.Type != opts.Type {
			continue
		}
		if opts.Group != "" && !slices.Contains(a.Group, opts.Group) {
			continue
		}
		out = append(out, a)
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out
}

// Lookups collects the distinct CRs (numeric order), habitats, types and groups.
func (c *Catalog) Lookups() Lookups {
	crs := map[ChallengeRating]struct{}{}
	habitats := map[string]struct{}{}
	types := map[string]struct{}{}
	groups := map[string]struct{}{}

	for _, a := range c.adversaries {
		crs[a.ChallengeRating] = struct{}{}
		for _, h := range a.Habitat {
			habitats[h] = struct{}{}
		}
		if a.Type != "" {
			types[a.Type] = struct{}{}
		}
		for _, g := range a.Group {
			groups[g] = struct{}{}
		}
	}

	out := Lookups{
		ChallengeRatings: make([]ChallengeRating, 0, len(crs)),
		Habitats:         sortedKeys(habitats),
		Types:            sortedKeys(types),
		Groups:           sortedKeys(groups),
	}
	for cr := range crs {
		out.ChallengeRatings = append(out.ChallengeRatings, cr)
	}
	slices.Sort(out.ChallengeRatings)
	return out
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
