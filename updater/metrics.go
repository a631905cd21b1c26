package updater

import (
	"github.com/docker/go-metrics"

	prometheus "github.com/bootlin/elixir/metrics"
)

// Mirrors registry/proxy/proxymetrics.go's package-level counters plus an
// init() that registers the namespace and seeds every label combination to
// zero, so a freshly started updater reports a complete metric set rather
// than omitting series it hasn't hit yet.
var (
	tagsIndexed = prometheus.UpdaterNamespace.NewCounter("tags_indexed", "Number of tags fully indexed")

	blobsExtracted = prometheus.UpdaterNamespace.NewLabeledCounter("blobs_extracted", "Number of blobs processed by an extraction stage", "stage")

	updateDuration = prometheus.UpdaterNamespace.NewLabeledTimer("update_duration_seconds", "Time to incrementally index one tag", "tag")
)

func init() {
	metrics.Register(prometheus.UpdaterNamespace)
	for _, stage := range []string{"defs", "docs", "comps", "refs"} {
		blobsExtracted.WithValues(stage).Inc(0)
	}
}
