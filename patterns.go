package xssurl

import "regexp"

// Group is one logical dangerous character together with the known
// encodings of it that are searched for.
type Group struct {
	// Name identifies the group, e.g. "LESS_THAN".
	Name string

	// Covers is the raw character the group stands for.
	Covers string

	// Patterns are regular expression fragments matched
	// case-insensitively. Regex metacharacters that must match
	// literally are escaped, and "0*" allows any number of leading
	// zeros in numeric encodings (%3C, %03C, %003C, ...).
	Patterns []string
}

var defaultGroups = []Group{
	{
		Name:   "LESS_THAN",
		Covers: "<",
		Patterns: []string{
			"<",
			"&lt",
			"%0*3C",
			"%0*25",
			"%0*253C",
			"&#0*60",
			"&#x0*3c",
		},
	},
	{
		Name:   "GREATER_THAN",
		Covers: ">",
		Patterns: []string{
			">",
			"&gt",
			"%0*3E",
			"%0*25",
			"%0*253E",
			"&#0*62",
			"&#x0*3e",
		},
	},
	{
		Name:   "QUOTE",
		Covers: "'",
		Patterns: []string{
			"'",
			"&apos",
			"%0*27",
			"&#0*39",
			"&#x0*27",
		},
	},
	{
		Name:   "DBLQUOTE",
		Covers: `"`,
		Patterns: []string{
			`"`,
			"&quot",
			"%0*22",
			"&#0*34",
			"&#x0*22",
		},
	},
	{
		Name:   "LEFT_BRACKET",
		Covers: "(",
		Patterns: []string{
			`\(`,
			"%0*28",
			"&#0*40",
			"&#x0*28",
		},
	},
	{
		Name:   "RIGHT_BRACKET",
		Covers: ")",
		Patterns: []string{
			`\)`,
			"%0*29",
			"&#0*41",
			"&#x0*29",
		},
	},
	{
		Name:   "SEMICOLON",
		Covers: ";",
		Patterns: []string{
			`\;`,
			"&#0*59",
			"&#x0*3b",
		},
	},
}

// defaultCompiled holds the compiled form of every default pattern.
// Guards share these; a *regexp.Regexp is safe for concurrent use.
var defaultCompiled = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp)
	for _, g := range defaultGroups {
		for _, p := range g.Patterns {
			if _, ok := m[p]; !ok {
				m[p] = regexp.MustCompile(caseInsensitive(p))
			}
		}
	}
	return m
}()

// DefaultGroups returns a copy of the built-in pattern groups in the
// order they are applied.
func DefaultGroups() []Group {
	out := make([]Group, len(defaultGroups))
	for i, g := range defaultGroups {
		out[i] = g
		out[i].Patterns = append([]string(nil), g.Patterns...)
	}
	return out
}

// DefaultPatterns returns the concatenation of every default group's
// patterns. Duplicates between groups are kept.
func DefaultPatterns() []string {
	var out []string
	for _, g := range defaultGroups {
		out = append(out, g.Patterns...)
	}
	return out
}

func caseInsensitive(pattern string) string {
	return "(?i)" + pattern
}
