package metrics

import "github.com/docker/go-metrics"

const (
	// NamespacePrefix is the namespace of prometheus metrics
	NamespacePrefix = "elixir"
)

var (
	// UpdaterNamespace is the prometheus namespace of incremental-update
	// related operations (per-tag duration, blobs processed, stage
	// counters).
	UpdaterNamespace = metrics.NewNamespace(NamespacePrefix, "updater", nil)

	// QueryNamespace is the prometheus namespace of query-engine related
	// operations (lookups served, manifest cache hit rate).
	QueryNamespace = metrics.NewNamespace(NamespacePrefix, "query", nil)
)
