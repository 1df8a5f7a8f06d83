package status

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// gauges mirror pipeline.Snapshot's fields one-for-one so /metrics and
// /status never drift from each other.
var (
	inputLevelRMS = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamcensor_input_level_rms",
		Help: "RMS level of the most recent input block on channel 0",
	})
	fillFraction = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamcensor_fill_fraction",
		Help: "Delay ring fill as a fraction of target_delay_samples",
	})
	latencyMs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamcensor_latency_ms",
		Help: "Configured playback latency in milliseconds",
	})
	profanityCount = promauto.NewCounter(prometheus.CounterOpts{
		Name: "streamcensor_profanity_count_total",
		Help: "Total CensorOps successfully applied to the delay ring",
	})
	playbackStarted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamcensor_playback_started",
		Help: "1 once fill has first reached target_delay_samples, else 0",
	})
	paused = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamcensor_paused",
		Help: "1 while playback is paused for underrun recovery, else 0",
	})
	running = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "streamcensor_running",
		Help: "1 while the engine is started, else 0",
	})
)

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
