package columns

import (
	"sort"
	"strings"
)

// Sets defines named column groups that expand into lists of columns.
// - "default": the full crypto table
// - "price": current price and the 24h range
// - "change": the 1h, 24h and 7d percentage windows
var Sets = map[string][]string{
	"default": Default,
	"price":   {"price", "low_24h", "high_24h"},
	"change":  {"chg_1h", "chg_24h", "chg_7d"},
	"compact": {"rank", "symbol", "price", "chg_24h"},
}

// ExpandSets returns the union of columns for the given set names.
// It preserves the order of the sets and the order of columns within each set,
// and de-duplicates columns while keeping the first occurrence.
func ExpandSets(setNames []string) ([]string, error) {
	out := make([]string, 0, 16)
	seen := map[string]struct{}{}
	for _, name := range setNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name, Available: availableSets()}
		}
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// UnknownSetError reports an unknown column set name.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown column set: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

func availableSets() []string {
	keys := make([]string, 0, len(Sets))
	for k := range Sets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
