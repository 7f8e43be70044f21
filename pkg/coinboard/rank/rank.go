package rank

import (
	"sort"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// Limit caps the length of a ranked list.
const Limit = 10

// Gainers returns up to Limit records with a positive 24h change, biggest first.
func Gainers(records []types.Record) []types.Record {
	return top(records,
		func(r types.Record) bool { return r.Change24h.Sign() > 0 },
		func(a, b types.Record) bool { return a.Change24h.GreaterThan(b.Change24h) },
	)
}

// Losers returns up to Limit records with a negative 24h change, most negative first.
func Losers(records []types.Record) []types.Record {
	return top(records,
		func(r types.Record) bool { return r.Change24h.Sign() < 0 },
		func(a, b types.Record) bool { return a.Change24h.LessThan(b.Change24h) },
	)
}

// top filters into a fresh slice, so the caller's order is never touched.
// Equal keys keep their input order.
func top(records []types.Record, keep func(types.Record) bool, less func(a, b types.Record) bool) []types.Record {
	out := make([]types.Record, 0, Limit)
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	if len(out) > Limit {
		out = out[:Limit]
	}
	return out
}
