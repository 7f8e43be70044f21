package filter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/komsit37/coinboard/pkg/coinboard/types"
)

// Filter matches a coin name or symbol.
type Filter interface {
	Match(s string) bool
}

// Search builds the default search filter: a trimmed, case-insensitive
// substring. An empty term matches everything.
func Search(term string) Filter {
	return SubstrCI{needle: strings.ToLower(strings.TrimSpace(term))}
}

// Parse builds a filter from a pattern expression. All forms ignore case:
// - Regex: "/^bit/"
// - Comma-separated exact names or symbols: "btc,eth"
// - Glob: "*coin"
// - Anything else: substring, same as Search.
func Parse(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Always(true), nil
	}
	if strings.HasPrefix(expr, "/") && strings.HasSuffix(expr, "/") && len(expr) > 2 {
		re, err := regexp.Compile("(?i)" + expr[1:len(expr)-1])
		if err != nil {
			return nil, fmt.Errorf("parse search pattern %q: %w", expr, err)
		}
		return Regex{re: re}, nil
	}
	if strings.Contains(expr, ",") {
		set := map[string]struct{}{}
		for _, p := range strings.Split(expr, ",") {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			set[p] = struct{}{}
		}
		return ExactSet{set: set}, nil
	}
	if strings.ContainsAny(expr, "*?") {
		return Glob{pattern: strings.ToLower(expr)}, nil
	}
	return Search(expr), nil
}

// Record reports whether f matches r's name or symbol.
func Record(f Filter, r types.Record) bool {
	return f.Match(r.Name) || f.Match(r.Symbol)
}

// Records returns the records f matches, in input order.
func Records(records []types.Record, f Filter) []types.Record {
	if f == nil {
		f = Always(true)
	}
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if Record(f, r) {
			out = append(out, r)
		}
	}
	return out
}

// Implementations

type Always bool

func (a Always) Match(string) bool { return bool(a) }

type ExactSet struct{ set map[string]struct{} }

func (e ExactSet) Match(s string) bool {
	_, ok := e.set[strings.ToLower(s)]
	return ok
}

type Glob struct{ pattern string }

func (g Glob) Match(s string) bool {
	ok, _ := filepath.Match(g.pattern, strings.ToLower(s))
	return ok
}

type Regex struct{ re *regexp.Regexp }

func (r Regex) Match(s string) bool { return r.re.MatchString(s) }

// String provides a human-readable representation useful for logs.
func (g Glob) String() string  { return fmt.Sprintf("glob:%s", g.pattern) }
func (r Regex) String() string { return fmt.Sprintf("regex:%s", r.re) }

// SubstrCI matches if s contains needle, case-insensitively.
// needle is stored lower-cased.
type SubstrCI struct{ needle string }

func (s SubstrCI) Match(v string) bool {
	if s.needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(v), s.needle)
}

func (s SubstrCI) String() string { return fmt.Sprintf("substr-ci:%s", s.needle) }
