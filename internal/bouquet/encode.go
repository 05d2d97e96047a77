package bouquet

import (
	"sort"
	"strconv"
	"strings"
)

// Encode renders a bouquet as its design name followed by count and species
// pairs in ascending species order, e.g. "AL10a15b".
func Encode(b Bouquet) string {
	species := make([]string, 0, len(b.Composition))
	for s, n := range b.Composition {
		if n > 0 {
			species = append(species, s)
		}
	}
	sort.Strings(species)

	var sb strings.Builder
	sb.WriteString(b.Design)
	for _, s := range species {
		sb.WriteString(strconv.Itoa(b.Composition[s]))
		sb.WriteString(s)
	}
	return sb.String()
}

// EncodeAll encodes bouquets in order.
func EncodeAll(bouquets []Bouquet) []string {
	out := make([]string, 0, len(bouquets))
	for _, b := range bouquets {
		out = append(out, Encode(b))
	}
	return out
}
