package cachemanager

import (
	"fmt"
	"strings"
)

// Key joins parts into a cache key. Parts are formatted with %v and
// separated by '|', so callers must not rely on '|' inside a part being
// distinguishable.
func Key(parts ...any) string {
	var b strings.Builder
	for i, p := range parts {
		if i > 0 {
			b.WriteByte('|')
		}
		fmt.Fprintf(&b, "%v", p)
	}
	return b.String()
}
