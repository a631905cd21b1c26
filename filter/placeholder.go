package filter

import (
	"fmt"
	"regexp"
	"strconv"
)

// placeholder builds the opaque marker TransformRawCode embeds for index i
// under name, and UntransformFormattedCode later finds and replaces.
// Mirrors http/filters/utils.py's encode_number/decode_number wrapped in a
// "__KEEP<NAME>__<n>__" marker.
func placeholder(name string, i int) string {
	return fmt.Sprintf("__KEEP%s__%d__", name, i)
}

func placeholderRegexp(name string) *regexp.Regexp {
	return regexp.MustCompile(`__KEEP` + regexp.QuoteMeta(name) + `__(\d+)__`)
}

// replacePlaceholders finds every placeholder(name, i) occurrence in html
// and replaces it with resolve(i).
func replacePlaceholders(html, name string, resolve func(i int) string) string {
	re := placeholderRegexp(name)
	return re.ReplaceAllStringFunc(html, func(m string) string {
		sub := re.FindStringSubmatch(m)
		i, err := strconv.Atoi(sub[1])
		if err != nil {
			return m
		}
		return resolve(i)
	})
}
