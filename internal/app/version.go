package app

import (
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/heartmarshall/election-backend/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and health endpoints.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// newBuildInfo returns a constant gauge set to 1 whose labels identify the
// running binary.
func newBuildInfo() prometheus.Gauge {
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "election",
		Name:      "build_info",
		Help:      "Build metadata of the running election backend.",
		ConstLabels: prometheus.Labels{
			"version":    Version,
			"commit":     Commit,
			"go_version": runtime.Version(),
		},
	})
	g.Set(1)
	return g
}
