package columns

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/komsit37/coinboard/pkg/coinboard/format"
	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// Resolver converts a record into the display string of one column.
type Resolver func(r types.Record) string

// Kind groups columns that render alike.
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindPrice
	KindChange
)

// Def describes a column.
type Def struct {
	Key     string
	Title   string
	Kind    Kind
	Resolve Resolver
}

// Default is the column order of the crypto prices table.
var Default = []string{"image", "name", "symbol", "price", "low_24h", "high_24h", "chg_1h", "chg_24h", "chg_7d"}

// Registry maps canonical column keys to definitions.
var Registry = map[string]Def{}

var aliases = map[string]string{
	"sym":  "symbol",
	"low":  "low_24h",
	"high": "high_24h",
	"chg%": "chg_24h",
	"1h":   "chg_1h",
	"24h":  "chg_24h",
	"7d":   "chg_7d",
	"img":  "image",
	"logo": "image",
}

func init() {
	register := func(d Def) { Registry[d.Key] = d }

	// image: the URL; renderers that cannot show images skip it
	register(Def{Key: "image", Title: "", Kind: KindImage, Resolve: func(r types.Record) string { return r.Image }})
	register(Def{Key: "rank", Title: "#", Resolve: func(r types.Record) string {
		if r.MarketCapRank == nil {
			return ""
		}
		return strconv.Itoa(*r.MarketCapRank)
	}})
	register(Def{Key: "name", Title: "Name", Resolve: func(r types.Record) string { return r.Name }})
	register(Def{Key: "symbol", Title: "Symbol", Resolve: func(r types.Record) string { return format.Symbol(r.Symbol) }})
	// price columns share one formatter so every row is consistent
	register(Def{Key: "price", Title: "Price", Kind: KindPrice, Resolve: func(r types.Record) string { return format.USD(r.CurrentPrice) }})
	register(Def{Key: "low_24h", Title: "24h Low", Kind: KindPrice, Resolve: func(r types.Record) string { return format.USD(r.Low24h) }})
	register(Def{Key: "high_24h", Title: "24h High", Kind: KindPrice, Resolve: func(r types.Record) string { return format.USD(r.High24h) }})
	register(Def{Key: "chg_1h", Title: "1h %", Kind: KindChange, Resolve: func(r types.Record) string { return format.PriceChange(r.Change1h) }})
	register(Def{Key: "chg_24h", Title: "24h %", Kind: KindChange, Resolve: func(r types.Record) string {
		return format.PriceChange(decimal.NewNullDecimal(r.Change24h))
	}})
	register(Def{Key: "chg_7d", Title: "7d %", Kind: KindChange, Resolve: func(r types.Record) string { return format.PriceChange(r.Change7d) }})
}

// Canonical resolves aliases and case to a registry key.
func Canonical(col string) (string, bool) {
	k := strings.ToLower(strings.TrimSpace(col))
	if a, ok := aliases[k]; ok {
		k = a
	}
	_, ok := Registry[k]
	return k, ok
}

// GetDef returns the definition for a column key or alias.
func GetDef(col string) (Def, bool) {
	k, ok := Canonical(col)
	if !ok {
		return Def{}, false
	}
	return Registry[k], true
}

// Compute determines the final column order. Explicit columns are honored in
// order, canonicalized and de-duplicated; with none, Default is used.
func Compute(explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return append([]string(nil), Default...), nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	for _, c := range explicit {
		if strings.TrimSpace(c) == "" {
			continue
		}
		k, ok := Canonical(c)
		if !ok {
			return nil, &UnknownColumnError{Name: c}
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if len(out) == 0 {
		return append([]string(nil), Default...), nil
	}
	return out, nil
}

// RenderValue resolves one cell. Unknown columns render empty.
func RenderValue(col string, r types.Record) string {
	if d, ok := GetDef(col); ok {
		return d.Resolve(r)
	}
	return ""
}

// ChangeSign returns the sign of the rounded change behind a change column,
// for colouring. ok is false for other columns and absent windows.
func ChangeSign(col string, r types.Record) (sign int, ok bool) {
	k, _ := Canonical(col)
	var v decimal.NullDecimal
	switch k {
	case "chg_1h":
		v = r.Change1h
	case "chg_24h":
		v = decimal.NewNullDecimal(r.Change24h)
	case "chg_7d":
		v = r.Change7d
	default:
		return 0, false
	}
	if !v.Valid {
		return 0, false
	}
	return v.Decimal.Round(2).Sign(), true
}

// UnknownColumnError reports a column key that is not in the registry.
type UnknownColumnError struct {
	Name string
}

func (e *UnknownColumnError) Error() string {
	return "unknown column: " + e.Name + "; available: " + strings.Join(available(), ", ")
}

func available() []string {
	// keep the default order first, then anything else
	keys := append(make([]string, 0, len(Registry)), Default...)
	for k := range Registry {
		if !contains(Default, k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func contains(s []string, v string) bool {
	for _, e := range s {
		if e == v {
			return true
		}
	}
	return false
}
