package util

import (
	"fmt"
	"sort"
)

// OrderedKeys returns the keys of m sorted by their string representation.
// Several algorithms in this module need "an arbitrary but fixed iteration
// order" over a map of states or compositions; sorting by string form gives
// deterministic, reproducible output without requiring E to satisfy any
// ordering constraint itself.
func OrderedKeys[K comparable, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}
