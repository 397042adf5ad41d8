package rankedit

import (
	"fmt"
	"strings"

	pluralize "github.com/gertd/go-pluralize"
)

var plural = pluralize.NewClient()

// countOf renders "1 station", "2 stations", "3 station assignments".
// Only the last word of a compound noun is inflected.
func countOf(n int, noun string) string {
	head, last := "", noun
	if i := strings.LastIndexByte(noun, ' '); i >= 0 {
		head, last = noun[:i+1], noun[i+1:]
	}
	return fmt.Sprintf("%d %s%s", n, head, plural.Pluralize(last, n, false))
}
