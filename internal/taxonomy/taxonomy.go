// Package taxonomy loads and merges skill synonym sources into lookup maps
// scoped by organization and industry. Three layers feed the merge: the
// embedded static baseline, industry-specific rows, and organization custom
// rows. Custom rows override the lower layers per canonical key; static and
// industry combine additively.
package taxonomy

import (
	"sort"

	"github.com/spigell/hh-matcher/internal/skills"
)

// Layer is a raw synonym source: canonical skill name to its variant
// spellings. Values are not required to be normalized.
type Layer map[string][]string

// Map is a merged, normalized synonym lookup for one (org, industry) scope.
type Map struct {
	OrgID    string
	Industry string

	sets  map[string]map[string]bool // canonical -> variants, all normalized
	index map[string]string          // variant -> canonical
}

// Merge combines the three layers into a Map. Static and industry variants
// union per canonical key. A canonical key present in the custom layer
// replaces whatever the lower layers defined for it. The canonical name is
// always a member of its own variant set.
func Merge(static, industry, custom Layer) *Map {
	sets := make(map[string]map[string]bool)

	for canonical, variants := range static {
		addVariants(sets, canonical, variants)
	}
	for canonical, variants := range industry {
		addVariants(sets, canonical, variants)
	}
	for canonical, variants := range custom {
		key := skills.Normalize(canonical)
		if key == "" {
			continue
		}
		delete(sets, key)
		addVariants(sets, canonical, variants)
	}

	return &Map{sets: sets, index: buildIndex(sets)}
}

// buildIndex inverts the variant sets. Canonicals are visited in sorted
// order so a variant claimed by several canonical entries always resolves
// to the same one.
func buildIndex(sets map[string]map[string]bool) map[string]string {
	canonicals := make([]string, 0, len(sets))
	for canonical := range sets {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	index := make(map[string]string)
	for _, canonical := range canonicals {
		for variant := range sets[canonical] {
			if _, taken := index[variant]; !taken {
				index[variant] = canonical
			}
		}
	}
	return index
}

func addVariants(sets map[string]map[string]bool, canonical string, variants []string) {
	key := skills.Normalize(canonical)
	if key == "" {
		return
	}

	set := sets[key]
	if set == nil {
		set = make(map[string]bool)
		sets[key] = set
	}
	set[key] = true
	for _, v := range variants {
		if normalized := skills.Normalize(v); normalized != "" {
			set[normalized] = true
		}
	}
}

// Len returns the number of canonical entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sets)
}

// Canonical resolves a term to its canonical skill name. The term may be
// the canonical name itself or any of its variants.
func (m *Map) Canonical(term string) (string, bool) {
	if m == nil {
		return "", false
	}

	normalized := skills.Normalize(term)
	if _, ok := m.sets[normalized]; ok {
		return normalized, true
	}
	canonical, ok := m.index[normalized]
	return canonical, ok
}

// FindVariantSet returns the normalized variant set covering the term. The
// lookup is bidirectional: a term matching a canonical name or any of its
// variants yields the full set for that canonical. The term itself is
// always a member of the result, so the set is usable even when the
// taxonomy knows nothing about the term.
func (m *Map) FindVariantSet(term string) map[string]bool {
	normalized := skills.Normalize(term)
	out := map[string]bool{}
	if normalized != "" {
		out[normalized] = true
	}

	canonical, ok := m.Canonical(term)
	if !ok {
		return out
	}
	for variant := range m.sets[canonical] {
		out[variant] = true
	}
	return out
}

// Canonicals returns the sorted canonical skill names. Used by reporting.
func (m *Map) Canonicals() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, len(m.sets))
	for canonical := range m.sets {
		out = append(out, canonical)
	}
	sort.Strings(out)
	return out
}
