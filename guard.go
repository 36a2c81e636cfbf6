package xssurl

import (
	"fmt"
	"maps"
	"regexp"
	"slices"

	"golang.org/x/net/html"
)

// MaxFilterPasses bounds the number of filter passes FilteredFixedPoint
// runs. A replacement token that itself matches a pattern would
// otherwise never settle.
const MaxFilterPasses = 8

// MaxFilterGrowth bounds the output of FilteredFixedPoint to this many
// times the length of the source. A pattern matching the empty string
// combined with a non-empty replacement grows the output on every pass.
const MaxFilterGrowth = 16

// Guard scans a URL for blacklisted character sequences and produces
// filtered copies of it.
//
// A Guard holds the last submitted URL, a working list of patterns and
// the cached detection result. Include and Exclude edit the working list
// only; the cached result is recomputed on the next SetSource.
//
// Patterns match case-insensitively using Unicode simple case folding,
// so a pattern may also match non-ASCII letters that fold to its ASCII
// letters: "&apos" matches "&apo\u017f" (LATIN SMALL LETTER LONG S).
//
// The zero value is a Guard with an empty working list. A Guard must not
// be used from multiple goroutines without external locking.
type Guard struct {
	source   string
	patterns []string
	compiled map[string]*regexp.Regexp
	flagged  bool
	matched  []string
}

// New returns a Guard whose working list holds DefaultPatterns.
func New() *Guard {
	return new(Guard).Reset()
}

// Reset restores the default working list. The source and the cached
// detection result are left untouched.
func (g *Guard) Reset() *Guard {
	g.patterns = DefaultPatterns()
	g.compiled = maps.Clone(defaultCompiled)
	return g
}

// SetSource replaces the scanned URL and runs detection against the
// current working list.
func (g *Guard) SetSource(url string) *Guard {
	g.source = url
	g.detect()
	return g
}

// Include appends patterns to the working list. Every pattern is
// compiled first; if any fails, nothing is appended and the returned
// error wraps ErrInvalidPattern.
func (g *Guard) Include(patterns ...string) error {
	compiled := make(map[string]*regexp.Regexp, len(patterns))
	for _, p := range patterns {
		if _, ok := g.compiled[p]; ok {
			continue
		}
		re, err := regexp.Compile(caseInsensitive(p))
		if err != nil {
			return fmt.Errorf("%w %q: %v", ErrInvalidPattern, p, err)
		}
		compiled[p] = re
	}

	if g.compiled == nil {
		g.compiled = make(map[string]*regexp.Regexp, len(compiled))
	}
	maps.Copy(g.compiled, compiled)
	g.patterns = append(g.patterns, patterns...)
	return nil
}

// MustInclude is like Include but panics if a pattern does not compile.
func (g *Guard) MustInclude(patterns ...string) *Guard {
	if err := g.Include(patterns...); err != nil {
		panic(err)
	}
	return g
}

// Exclude removes every working-list entry equal to one of patterns.
// Matching is by exact text: excluding "<" leaves "&lt" in place.
func (g *Guard) Exclude(patterns ...string) *Guard {
	if len(patterns) == 0 {
		return g
	}
	drop := make(map[string]struct{}, len(patterns))
	for _, p := range patterns {
		drop[p] = struct{}{}
	}

	g.patterns = slices.DeleteFunc(g.patterns, func(p string) bool {
		_, ok := drop[p]
		return ok
	})
	for p := range drop {
		delete(g.compiled, p)
	}
	return g
}

// IsFlagged reports whether any pattern matched the URL given to the
// last SetSource call.
func (g *Guard) IsFlagged() bool {
	return g.flagged
}

// Matched returns the patterns that matched during the last SetSource
// call, in working-list order.
func (g *Guard) Matched() []string {
	return slices.Clone(g.matched)
}

// Source returns the URL exactly as it was last submitted.
func (g *Guard) Source() string {
	return g.source
}

// Patterns returns a copy of the working list.
func (g *Guard) Patterns() []string {
	return slices.Clone(g.patterns)
}

// Filtered returns the source with every pattern occurrence replaced by
// replacement, which is inserted literally.
//
// Patterns are applied one after another in working-list order, each to
// the output of the previous one. Removing one match can therefore
// expose another: "%%3C3C" filters to "%3C". See FilteredFixedPoint.
func (g *Guard) Filtered(replacement string) string {
	if g.source == "" {
		return ""
	}
	return g.filter(g.source, replacement)
}

// FilteredFixedPoint repeats the Filtered substitution chain until the
// output stops changing or MaxFilterPasses passes have run. A pass whose
// output would exceed MaxFilterGrowth times the source length is
// discarded and the previous output is returned.
func (g *Guard) FilteredFixedPoint(replacement string) string {
	out := g.source
	limit := MaxFilterGrowth * len(g.source)
	for i := 0; i < MaxFilterPasses && out != ""; i++ {
		next := g.filter(out, replacement)
		if next == out || len(next) > limit {
			break
		}
		out = next
	}
	return out
}

// Escaped returns the source with HTML special characters escaped, for
// displaying a rejected URL back to a user.
func (g *Guard) Escaped() string {
	return html.EscapeString(g.source)
}

func (g *Guard) detect() {
	g.flagged = false
	g.matched = nil
	if g.source == "" {
		return
	}
	for _, p := range g.patterns {
		if g.compiled[p].MatchString(g.source) {
			g.flagged = true
			g.matched = append(g.matched, p)
		}
	}
}

func (g *Guard) filter(s, replacement string) string {
	for _, p := range g.patterns {
		s = g.compiled[p].ReplaceAllLiteralString(s, replacement)
	}
	return s
}
