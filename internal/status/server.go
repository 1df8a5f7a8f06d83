// Package status exposes the engine's observability surface over HTTP:
// /health, /status (JSON snapshot), and /metrics (Prometheus exposition),
// mirroring the status endpoints the original hardware build served over
// cpp-httplib.
package status

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/explicitlyaudio/streamcensor/internal/pipeline"
)

// SnapshotFunc returns the current observability snapshot; the caller
// supplies pipeline.Scheduler.Snapshot bound as a method value.
type SnapshotFunc func() pipeline.Snapshot

// Server serves the HTTP observability surface on its own goroutine. It
// never touches ring memory and is not part of the real-time contract.
type Server struct {
	httpServer *http.Server
	ready      atomic.Bool
}

// New builds a Gin engine with /health, /status, and /metrics wired to
// snapshot, and returns a Server ready to Start.
func New(bindAddress string, port int, snapshot SnapshotFunc) *Server {
	s := &Server{}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		if !s.ready.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/status", func(c *gin.Context) {
		snap := snapshot()
		publish(snap)
		c.JSON(http.StatusOK, snap)
	})

	metricsHandler := promhttp.Handler()
	r.GET("/metrics", func(c *gin.Context) {
		publish(snapshot())
		metricsHandler.ServeHTTP(c.Writer, c.Request)
	})

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bindAddress, port),
		Handler: r,
	}
	return s
}

// MarkReady flips /health to report ok. Called once the engine has started.
func (s *Server) MarkReady() { s.ready.Store(true) }

// Start begins serving in a background goroutine. Errors other than a clean
// shutdown are logged by the caller via the returned channel.
func (s *Server) Start() <-chan error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()
	return errCh
}

// Stop gracefully shuts the server down within the given timeout.
func (s *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// publish copies a Snapshot into the Prometheus gauges so /metrics reports
// the same values /status just served.
func publish(snap pipeline.Snapshot) {
	inputLevelRMS.Set(float64(snap.InputLevelRMS))
	fillFraction.Set(float64(snap.FillFraction))
	latencyMs.Set(float64(snap.LatencyMs))
	playbackStarted.Set(boolToFloat(snap.PlaybackStarted))
	paused.Set(boolToFloat(snap.Paused))
	running.Set(boolToFloat(snap.Running))
	// profanityCount is a monotonic counter; only advance it, never reset.
	if delta := snap.ProfanityCount - lastProfanityCount.Swap(snap.ProfanityCount); delta > 0 {
		profanityCount.Add(float64(delta))
	}
}

var lastProfanityCount atomic.Uint64
