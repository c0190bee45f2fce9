package observability

import (
	"context"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/portfolio-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter

	renders       *CounterVec
	renderLatency *HistogramVec
	snapshots     *CounterVec
	snapLatency   *HistogramVec
	uploads       *CounterVec
	uploadBytes   *Counter
	nameChecks    *CounterVec
	refCache      *CounterVec

	dbStats   *GaugeVec
	redisUp   *Gauge
	redisPing *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Enabled() bool {
	v := strings.TrimSpace(os.Getenv("METRICS_ENABLED"))
	if v == "" {
		return false
	}
	return strings.EqualFold(v, "true") || v == "1" || strings.EqualFold(v, "yes")
}

func Current() *Metrics {
	return instance
}

func scrapeInterval() time.Duration {
	v := strings.TrimSpace(os.Getenv("METRICS_SCRAPE_INTERVAL_SECONDS"))
	if v == "" {
		return 10 * time.Second
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 10 * time.Second
	}
	return time.Duration(n) * time.Second
}

// Init returns nil when METRICS_ENABLED is off. Every method on a nil
// *Metrics is a no-op.
func Init(log *logger.Logger) *Metrics {
	if !Enabled() {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics()
		if log != nil {
			log.Info("metrics enabled")
		}
	})
	return instance
}

// NewMetrics builds an unregistered set, mostly for tests.
func NewMetrics() *Metrics {
	return &Metrics{
		apiRequests: NewCounterVec("pf_api_requests_total", "Total API requests by method/route/status.", []string{"method", "route", "status"}),
		apiLatency: NewHistogramVec(
			"pf_api_request_duration_seconds",
			"API request latency in seconds by method/route/status.",
			[]string{"method", "route", "status"},
			[]float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		),
		apiInflight: NewGauge("pf_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("pf_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("pf_api_requests_error_total", "Total API requests with 5xx status."),
		renders:     NewCounterVec("pf_render_total", "Portfolio renders by source/status.", []string{"source", "status"}),
		renderLatency: NewHistogramVec(
			"pf_render_duration_seconds",
			"Render pipeline latency by source.",
			[]string{"source"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		),
		snapshots: NewCounterVec("pf_snapshot_total", "Snapshot captures by kind/status.", []string{"kind", "status"}),
		snapLatency: NewHistogramVec(
			"pf_snapshot_duration_seconds",
			"Snapshot capture latency by kind.",
			[]string{"kind"},
			[]float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		),
		uploads:     NewCounterVec("pf_upload_total", "Image uploads by status.", []string{"status"}),
		uploadBytes: NewCounter("pf_upload_bytes_total", "Bytes written to the image bucket."),
		nameChecks:  NewCounterVec("pf_name_check_total", "Name availability checks by result.", []string{"result"}),
		refCache:    NewCounterVec("pf_reference_cache_total", "Reference cache lookups by kind/result.", []string{"kind", "result"}),
		dbStats:     NewGaugeVec("pf_db_pool", "database/sql pool stats.", []string{"stat"}),
		redisUp:     NewGauge("pf_redis_up", "Redis reachability (1 up, 0 down)."),
		redisPing:   NewGauge("pf_redis_ping_seconds", "Last Redis ping latency in seconds."),
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiReqTotal, m.apiReqError,
		m.renders, m.renderLatency, m.snapshots, m.snapLatency,
		m.uploads, m.uploadBytes, m.nameChecks, m.refCache,
		m.dbStats, m.redisUp, m.redisPing,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(method, route, status)
	m.apiLatency.Observe(dur.Seconds(), method, route, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveRender records one render. source is "portfolio", "preview" or "template".
func (m *Metrics) ObserveRender(source string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	m.renders.Inc(source, statusOf(err))
	m.renderLatency.Observe(dur.Seconds(), source)
}

func (m *Metrics) ObserveSnapshot(kind string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	m.snapshots.Inc(kind, statusOf(err))
	m.snapLatency.Observe(dur.Seconds(), kind)
}

func (m *Metrics) ObserveUpload(err error, size int) {
	if m == nil {
		return
	}
	m.uploads.Inc(statusOf(err))
	if err == nil && size > 0 {
		m.uploadBytes.Add(float64(size))
	}
}

func (m *Metrics) IncNameCheck(result string) {
	if m == nil {
		return
	}
	m.nameChecks.Inc(result)
}

func (m *Metrics) IncReferenceCache(kind string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.refCache.Inc(kind, result)
}

func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
				m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
			}
		}
	}()
}

// StartRedisCollector pings the shared client; it does not close it.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *goredis.Client) {
	if m == nil || rdb == nil {
		return
	}
	interval := scrapeInterval()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
