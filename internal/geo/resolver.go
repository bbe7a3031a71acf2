// Package geo maps free-text city names onto a fixed administrative
// hierarchy of departments, communes, and capital-district subdivisions.
package geo

import (
	"strings"

	"github.com/sells-group/prospector-cli/internal/normalize"
)

// Kind classifies a hierarchy unit.
type Kind string

const (
	KindDepartment Kind = "department"
	KindCommune    Kind = "commune"
	KindDistrict   Kind = "district" // Paris arrondissement
)

// CityDef is one member city of a region with its known spellings.
type CityDef struct {
	Name    string   `yaml:"name"`
	Short   string   `yaml:"short,omitempty"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// RegionDefinition is one fixed geographic unit in the reference hierarchy.
type RegionDefinition struct {
	Code   string    `yaml:"code"`
	Name   string    `yaml:"name"`
	Kind   Kind      `yaml:"kind"`
	Cities []CityDef `yaml:"cities"`
}

// Pass identifies which matching pass produced a result, so false-positive
// substring matches are discoverable during testing and debugging.
type Pass string

const (
	PassExact      Pass = "exact"
	PassNormalized Pass = "normalized"
	PassSubstring  Pass = "substring"
)

// Match is a successful resolution of a city string to a hierarchy unit.
type Match struct {
	Code string
	Name string
	Pass Pass
}

// memberName is a precomputed normalized member-city name used by the
// substring fallback, kept in hierarchy iteration order.
type memberName struct {
	regionIdx  int
	normalized string
}

// Resolver resolves free-text city strings against one hierarchy. It is
// immutable after construction and safe for concurrent use.
type Resolver struct {
	hierarchy  []RegionDefinition
	exact      map[string]int // lower(trim(alias)) -> hierarchy index
	normalized map[string]int // normalize.RegionToken(alias) -> hierarchy index
	members    []memberName
}

// NewResolver precomputes the alias lookup tables for a hierarchy.
func NewResolver(hierarchy []RegionDefinition) *Resolver {
	r := &Resolver{
		hierarchy:  hierarchy,
		exact:      make(map[string]int),
		normalized: make(map[string]int),
	}
	for i, region := range hierarchy {
		for _, city := range region.Cities {
			for _, alias := range cityAliases(city) {
				exactKey := strings.ToLower(strings.TrimSpace(alias))
				if exactKey == "" {
					continue
				}
				if _, taken := r.exact[exactKey]; !taken {
					r.exact[exactKey] = i
				}
				normKey := normalize.RegionToken(alias)
				if normKey != "" {
					if _, taken := r.normalized[normKey]; !taken {
						r.normalized[normKey] = i
					}
				}
			}
			if n := normalize.RegionToken(city.Name); n != "" {
				r.members = append(r.members, memberName{regionIdx: i, normalized: n})
			}
		}
	}
	return r
}

// Resolve matches a city string in three escalating passes, returning on the
// first hit: exact alias match, normalized match, then substring containment
// either way. The substring pass is a last-resort heuristic: it is
// order-dependent and can mis-bucket short ambiguous names, which is why the
// Match reports the pass used. A false return means the city is
// geographically unresolved.
func (r *Resolver) Resolve(city string) (Match, bool) {
	exactKey := strings.ToLower(strings.TrimSpace(city))
	if exactKey == "" {
		return Match{}, false
	}
	if i, ok := r.exact[exactKey]; ok {
		return r.match(i, PassExact), true
	}

	normKey := normalize.RegionToken(city)
	if normKey != "" {
		if i, ok := r.normalized[normKey]; ok {
			return r.match(i, PassNormalized), true
		}

		for _, m := range r.members {
			if strings.Contains(normKey, m.normalized) || strings.Contains(m.normalized, normKey) {
				return r.match(m.regionIdx, PassSubstring), true
			}
		}
	}

	return Match{}, false
}

func (r *Resolver) match(i int, pass Pass) Match {
	return Match{Code: r.hierarchy[i].Code, Name: r.hierarchy[i].Name, Pass: pass}
}

func cityAliases(c CityDef) []string {
	aliases := make([]string, 0, 2+len(c.Aliases))
	aliases = append(aliases, c.Name)
	if c.Short != "" {
		aliases = append(aliases, c.Short)
	}
	aliases = append(aliases, c.Aliases...)
	return aliases
}
