// Package metrics exposes the footage report as Prometheus gauges.
package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"protect-cli/internal/auth"
	"protect-cli/internal/client"
	"protect-cli/internal/footage"
)

// Directory is the part of the Protect client the collector needs.
type Directory interface {
	FootageCameras(ctx context.Context) ([]footage.Camera, error)
	Login(ctx context.Context) (auth.Session, error)
}

var (
	upDesc = prometheus.NewDesc(
		"protect_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"protect_scrape_duration_seconds", "Time taken to scrape the API.", nil, nil,
	)
	cameraCountDesc = prometheus.NewDesc(
		"protect_cameras_total", "Number of selected cameras.", nil, nil,
	)
	hasFootageDesc = prometheus.NewDesc(
		"protect_camera_has_footage", "Whether both footage bounds are known.", []string{"id", "name"}, nil,
	)
	footageStartDesc = prometheus.NewDesc(
		"protect_camera_footage_start_timestamp_seconds", "Earliest recorded footage.", []string{"id", "name"}, nil,
	)
	footageEndDesc = prometheus.NewDesc(
		"protect_camera_footage_end_timestamp_seconds", "Latest recorded footage.", []string{"id", "name"}, nil,
	)
	footageSecondsDesc = prometheus.NewDesc(
		"protect_camera_footage_seconds", "Length of the recorded footage range.", []string{"id", "name"}, nil,
	)
)

// FootageCollector reports the footage range of every selected camera.
type FootageCollector struct {
	dir       Directory
	selection footage.Selection
	timeout   time.Duration
	logger    *zap.Logger

	mu sync.Mutex
}

// NewFootageCollector creates a collector. A zero timeout disables the
// per-scrape deadline.
func NewFootageCollector(dir Directory, sel footage.Selection, timeout time.Duration, logger *zap.Logger) *FootageCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FootageCollector{dir: dir, selection: sel, timeout: timeout, logger: logger}
}

func (c *FootageCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- cameraCountDesc
	ch <- hasFootageDesc
	ch <- footageStartDesc
	ch <- footageEndDesc
	ch <- footageSecondsDesc
}

func (c *FootageCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := time.Now()

	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	success := 1.0
	cams, err := c.fetchCamerasWithRetry(ctx)
	if err != nil {
		success = 0.0
		c.logger.Warn("scrape cameras", zap.Error(err))
	} else {
		c.collectCameras(ch, cams)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

func (c *FootageCollector) collectCameras(ch chan<- prometheus.Metric, cams []footage.Camera) {
	selected := c.selection.Filter(cams)
	ch <- prometheus.MustNewConstMetric(cameraCountDesc, prometheus.GaugeValue, float64(len(selected)))

	for _, cam := range selected {
		if cam.RecordingStart == nil || cam.RecordingEnd == nil {
			ch <- prometheus.MustNewConstMetric(hasFootageDesc, prometheus.GaugeValue, 0, cam.ID, cam.Name)
			continue
		}

		ch <- prometheus.MustNewConstMetric(hasFootageDesc, prometheus.GaugeValue, 1, cam.ID, cam.Name)
		ch <- prometheus.MustNewConstMetric(footageStartDesc, prometheus.GaugeValue, unixSeconds(*cam.RecordingStart), cam.ID, cam.Name)
		ch <- prometheus.MustNewConstMetric(footageEndDesc, prometheus.GaugeValue, unixSeconds(*cam.RecordingEnd), cam.ID, cam.Name)
		ch <- prometheus.MustNewConstMetric(footageSecondsDesc, prometheus.GaugeValue, cam.RecordingEnd.Sub(*cam.RecordingStart).Seconds(), cam.ID, cam.Name)
	}
}

// fetchCamerasWithRetry logs in again once when the session has expired.
func (c *FootageCollector) fetchCamerasWithRetry(ctx context.Context) ([]footage.Camera, error) {
	res, err := c.dir.FootageCameras(ctx)
	if err == nil {
		return res, nil
	}
	if client.IsAuthError(err) {
		c.logger.Info("session rejected, logging in again")
		if _, e := c.dir.Login(ctx); e != nil {
			c.logger.Warn("re-login failed", zap.Error(e))
			return nil, err
		}
		return c.dir.FootageCameras(ctx)
	}
	return nil, err
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}
