package product

import (
	"sort"
	"strings"
)

// VariationID derives the deterministic id for an attribute-value
// combination: the pairs sorted by attribute name and slugified, e.g.
// {"Size":"L","Color":"Navy Blue"} -> "color-navy-blue-size-l". Stability of
// this id across regenerations is what lets manually edited prices survive
// attribute-set edits.
func VariationID(attrs map[string]string) string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)*2)
	for _, name := range names {
		parts = append(parts, slugify(name), slugify(attrs[name]))
	}
	return strings.Join(parts, "-")
}

// RegenerateVariations rebuilds def.Variations from the cartesian product of
// the current attribute options. A combination whose id already existed keeps
// its price and sale price; a new combination defaults to the product's
// current base price with no sale price. Combinations that no longer exist
// are dropped.
func RegenerateVariations(def *Definition) {
	existing := make(map[string]Variation, len(def.Variations))
	for _, v := range def.Variations {
		existing[v.ID] = v
	}

	var next []Variation
	for _, combo := range attributeCombinations(def.Attributes) {
		id := VariationID(combo)
		if prev, ok := existing[id]; ok {
			prev.Attributes = combo
			next = append(next, prev)
			continue
		}
		next = append(next, Variation{
			ID:         id,
			Attributes: combo,
			Price:      def.BasePrice,
		})
	}
	def.Variations = next
}

// attributeCombinations enumerates every combination of the given attribute
// options, in attribute order with the first attribute varying slowest.
func attributeCombinations(attrs []AttributeDefinition) []map[string]string {
	combos := []map[string]string{{}}
	for _, attr := range attrs {
		if len(attr.Options) == 0 {
			continue
		}
		var expanded []map[string]string
		for _, combo := range combos {
			for _, opt := range attr.Options {
				c := make(map[string]string, len(combo)+1)
				for k, v := range combo {
					c[k] = v
				}
				c[attr.Name] = opt.Name
				expanded = append(expanded, c)
			}
		}
		combos = expanded
	}
	if len(combos) == 1 && len(combos[0]) == 0 {
		return nil
	}
	return combos
}

// slugify lowercases s and collapses anything that is not a letter or digit
// into single hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
