// Package xssurl detects and strips markup and script-injection
// sequences embedded in URL strings.
//
// # Overview
//
// A [Guard] keeps a working list of patterns, each a case-insensitive
// regular expression fragment describing one encoding of a dangerous
// character. The default list, seeded by [New], covers <, >, ', ", (, )
// and ; in raw form, as HTML entities, as percent-encodings (with any
// number of zero-padding digits, and double-encoded for angle
// brackets) and as decimal and hexadecimal character references. See
// [DefaultGroups] for the exact table.
//
// xssurl does not parse HTML or URLs and has no notion of context. It
// reports whether a pattern occurs anywhere in the raw string, and can
// remove every occurrence.
//
// # Detection
//
// [Guard.SetSource] stores a URL and scans it; [Guard.IsFlagged] and
// [Guard.Matched] report the result. [Guard.Include] and
// [Guard.Exclude] edit the working list but do not rescan the stored
// URL; call SetSource again to apply them.
//
// # Filtering
//
// [Guard.Filtered] applies each pattern in list order to the output of
// the previous one. A single pass is not idempotent on layered
// encodings: removing one match can bring two halves of another
// together. [Guard.FilteredFixedPoint] repeats the chain until the
// output settles.
//
// # Thread Safety
//
// A Guard is not safe for concurrent use. Use one Guard per goroutine
// or guard it with a mutex.
//
// # Example
//
//	g := xssurl.New().SetSource(r.URL.String())
//	if g.IsFlagged() {
//		http.Error(w, "bad request", http.StatusBadRequest)
//		return
//	}
package xssurl
