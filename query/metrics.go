package query

import (
	"github.com/docker/go-metrics"

	prometheus "github.com/bootlin/elixir/metrics"
)

var (
	queriesServed = prometheus.QueryNamespace.NewLabeledCounter("queries_served", "Number of query.Engine lookups served", "query")

	manifestCacheHits   = prometheus.QueryNamespace.NewCounter("manifest_cache_hits", "Number of decoded-manifest cache hits")
	manifestCacheMisses = prometheus.QueryNamespace.NewCounter("manifest_cache_misses", "Number of decoded-manifest cache misses")
)

func init() {
	metrics.Register(prometheus.QueryNamespace)
	for _, q := range []string{"latest", "versions", "type", "dir", "file", "family", "dts-comp", "keys", "ident"} {
		queriesServed.WithValues(q).Inc(0)
	}
}
