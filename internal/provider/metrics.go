package provider

import (
	"errors"

	"github.com/dastanaron/browser-bookmarks/internal/parser"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookmarks",
		Name:      "reloads_total",
		Help:      "Bookmark store parses by browser and result.",
	}, []string{"browser", "result"})

	treeNodes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bookmarks",
		Name:      "tree_nodes",
		Help:      "Folders and bookmarks in the published tree.",
	}, []string{"browser", "type"})

	lastReload = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "bookmarks",
		Name:      "last_reload_timestamp_seconds",
		Help:      "Unix time of the last successful parse.",
	}, []string{"browser"})
)

func reloadResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, parser.ErrStoreNotFound):
		return "not_found"
	case errors.Is(err, parser.ErrRootNotFound):
		return "root_not_found"
	case errors.Is(err, parser.ErrMalformedStore):
		return "malformed"
	default:
		return "error"
	}
}
