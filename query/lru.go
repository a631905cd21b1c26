package query

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bootlin/elixir/record"
)

// manifestCacheSize bounds how many tags' decoded PathList manifests are
// kept resident — every Ident and DTSComp query decodes a tag's manifest
// at least once, so a small LRU saves a Get+decode pass across
// queries hitting the same handful of recently-browsed tags. Spec's §4.5
// "Optimizations, non-normative" names this exact cache.
const manifestCacheSize = 64

// manifestCache wraps a generic LRU keyed by tag, the Go analogue of the
// teacher's image-manifest caches built on github.com/hashicorp/golang-lru.
type manifestCache struct {
	cache *lru.Cache[string, *record.PathList]
}

func newManifestCache() *manifestCache {
	c, err := lru.New[string, *record.PathList](manifestCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which
		// manifestCacheSize never is.
		panic(err)
	}
	return &manifestCache{cache: c}
}

func (m *manifestCache) get(tag string) (*record.PathList, bool) {
	return m.cache.Get(tag)
}

func (m *manifestCache) put(tag string, pl *record.PathList) {
	m.cache.Add(tag, pl)
}
