package lights

import (
	"strconv"

	"github.com/iancoleman/strcase"
)

// Slugs returns a stable kebab-case identifier per control in r, in
// control order. Controls sharing a name get a numeric suffix starting
// from the second occurrence.
func Slugs(r Report) []string {
	slugs := make([]string, len(r.Controls))
	seen := make(map[string]int, len(r.Controls))
	for i, c := range r.Controls {
		slug := strcase.ToKebab(c.Name)
		seen[slug]++
		if n := seen[slug]; n > 1 {
			slug += "-" + strconv.Itoa(n)
		}
		slugs[i] = slug
	}
	return slugs
}
