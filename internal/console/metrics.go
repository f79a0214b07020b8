package console

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsPrefix = "arroyo_console_"

const (
	pollLoopPreview = "preview"
	pollLoopStop    = "stop"
)

var previewsStartedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "previews_started",
		Help: "Number of preview jobs launched",
	},
)

var previewTerminationsCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "preview_terminations",
		Help: "Number of preview sessions that ended, by reason",
	},
	[]string{"reason"},
)

var statusPollFailuresCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "status_poll_failures",
		Help: "Number of failed job status fetches while polling",
	},
	[]string{"loop"},
)

var outputsReceivedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "outputs_received",
		Help: "Number of output records received from preview jobs",
	},
)

var outputsEvictedCounter = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "outputs_evicted",
		Help: "Number of output records dropped from full preview buffers",
	},
)

var launchesCounter = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: MetricsPrefix + "launches",
		Help: "Number of durable pipeline launch attempts, by outcome",
	},
	[]string{"outcome"},
)
