package cors

import "strings"

// wildcard is an origin pattern with a single "*" placeholder, like "https://*.coral.lk".
type wildcard struct {
	prefix string
	suffix string
}

func newWildcard(pattern string) (wildcard, bool) {
	prefix, suffix, found := strings.Cut(pattern, "*")
	if !found {
		return wildcard{}, false
	}
	return wildcard{prefix: prefix, suffix: suffix}, true
}

func (w wildcard) match(origin string) bool {
	return len(origin) >= len(w.prefix)+len(w.suffix) &&
		strings.HasPrefix(origin, w.prefix) &&
		strings.HasSuffix(origin, w.suffix)
}
