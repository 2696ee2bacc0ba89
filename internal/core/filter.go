package core

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules are the manufacturer and platform exclusion rules. Matching is
// case-insensitive, exact or substring.
type Rules struct {
	Manufacturers []string `yaml:"manufacturers"`
	Platforms     []string `yaml:"platforms"`
}

// DefaultRules returns the built-in exclusions.
func DefaultRules() Rules {
	return Rules{
		Manufacturers: []string{"Arista", "Juniper"},
		Platforms:     []string{"juniper junos", "eos", "nxos"},
	}
}

// LoadRules reads a rules file. Empty sections fall back to the defaults,
// so a file may override only one of the two lists.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("rules file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	defaults := DefaultRules()
	if len(rules.Manufacturers) == 0 {
		rules.Manufacturers = defaults.Manufacturers
	}
	if len(rules.Platforms) == 0 {
		rules.Platforms = defaults.Platforms
	}
	return rules, nil
}

// MatchManufacturer reports whether a manufacturer name is excluded.
func (r Rules) MatchManufacturer(name string) bool {
	return matchAny(r.Manufacturers, name)
}

// MatchPlatform reports whether a platform name or slug is excluded.
func (r Rules) MatchPlatform(nameOrSlug string) bool {
	return matchAny(r.Platforms, nameOrSlug)
}

func matchAny(patterns []string, value string) bool {
	if value == "" {
		return false
	}
	v := strings.ToLower(value)
	for _, p := range patterns {
		p = strings.ToLower(p)
		if p == "" {
			continue
		}
		if v == p || strings.Contains(v, p) {
			return true
		}
	}
	return false
}

// ApplyFilter marks excluded records and propagates the exclusion through
// parent references until a fixed point is reached, so a filtered device's
// interfaces and those interfaces' IP addresses all end up filtered before
// any API call is made. Returns the number of filtered records.
func ApplyFilter(ds *Dataset, rules Rules) int {
	// Direct matches first: manufacturers by their own name, platforms
	// by name or slug.
	for _, def := range All() {
		for _, row := range ds.Rows(def.Key) {
			switch {
			case def.IsManufacturer:
				if rules.MatchManufacturer(row.Rec.Str("name")) {
					markFiltered(row, "excluded manufacturer")
				}
			case def.IsPlatform:
				if rules.MatchPlatform(row.Rec.Str("name")) || rules.MatchPlatform(row.Rec.Str("slug")) {
					markFiltered(row, "excluded platform")
				}
			}
		}
	}

	// Transitive propagation to fixed point. Tier order makes a single
	// pass cover most chains, but same-tier and polymorphic references
	// need the loop.
	for {
		changed := false
		for _, def := range All() {
			for _, row := range ds.Rows(def.Key) {
				if row.Outcome == OutcomeFiltered {
					continue
				}
				if reason := filteredParent(ds, def, row.Rec); reason != "" {
					markFiltered(row, reason)
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	n := 0
	for _, def := range All() {
		for _, row := range ds.Rows(def.Key) {
			if row.Outcome == OutcomeFiltered {
				n++
			}
		}
	}
	return n
}

// filteredParent returns a reason when any reference of rec points at a
// filtered record, or "" when none does.
func filteredParent(ds *Dataset, def *ObjectType, rec Record) string {
	check := func(refType string, id int64) string {
		if target := ds.RowByID(refType, id); target != nil && target.Outcome == OutcomeFiltered {
			return "filtered " + refType
		}
		return ""
	}

	if def.ManufacturerRef != "" {
		if id, ok := rec.Int(def.ManufacturerRef); ok {
			if reason := check("dcim_manufacturer", id); reason != "" {
				return reason
			}
		}
	}
	for _, ref := range def.AllRefs() {
		id, ok := rec.Int(ref.Field)
		if !ok {
			continue
		}
		if reason := check(ref.Type, id); reason != "" {
			return reason
		}
	}
	for _, poly := range def.Poly {
		refType, ok := poly.Types[rec.Str(poly.TypeField)]
		if !ok {
			continue
		}
		id, ok := rec.Int(poly.IDField)
		if !ok {
			continue
		}
		if reason := check(refType, id); reason != "" {
			return reason
		}
	}
	return ""
}

func markFiltered(row *Row, reason string) {
	row.Outcome = OutcomeFiltered
	row.Detail = reason
}
