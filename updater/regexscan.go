package updater

import (
	"regexp"
	"strings"
	"sync"

	"github.com/bootlin/elixir/compat"
)

var regexCache sync.Map // string -> *regexp.Regexp

func compileCached(pattern string) *regexp.Regexp {
	if v, ok := regexCache.Load(pattern); ok {
		return v.(*regexp.Regexp)
	}
	re := regexp.MustCompile(pattern)
	regexCache.Store(pattern, re)
	return re
}

// extractFromRegex finds every match of pattern in content and reports its
// first capture group alongside the 1-based line it starts on.
func extractFromRegex(content, pattern string) []compat.Occurrence {
	re := compileCached(pattern)
	var out []compat.Occurrence
	for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
		if len(loc) < 4 || loc[2] < 0 {
			continue
		}
		value := content[loc[2]:loc[3]]
		line := 1 + strings.Count(content[:loc[0]], "\n")
		out = append(out, compat.Occurrence{Value: value, Line: line})
	}
	return out
}
