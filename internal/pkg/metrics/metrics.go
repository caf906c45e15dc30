package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// RSVPの試行数（status: success, invalid, not_found, full, duplicate, busy, error）
	RSVPsTotal *prometheus.CounterVec

	// メール送信数（kind: confirmation, admin_notice, inquiry / status: sent, failed）
	EmailsSentTotal *prometheus.CounterVec

	// クラス単位ロックの取得時間（status: success/failed）
	ClassLockDuration *prometheus.HistogramVec

	// 公開中のクラス数
	ActiveClasses prometheus.Gauge

	// クラスごとの残席数（class_id）
	ClassSpotsRemaining *prometheus.GaugeVec
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RSVPsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rsvps_total",
				Help: "Total number of RSVP attempts by outcome",
			},
			[]string{"status"},
		),
		EmailsSentTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_sent_total",
				Help: "Total number of outbound emails by kind and outcome",
			},
			[]string{"kind", "status"},
		),
		ClassLockDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "class_lock_duration_seconds",
				Help:    "Time spent acquiring per-class locks",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"status"},
		),
		ActiveClasses: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "classes_active",
				Help: "Current number of active classes",
			},
		),
		ClassSpotsRemaining: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "class_spots_remaining",
				Help: "Remaining spots per class",
			},
			[]string{"class_id"},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RSVPsTotal,
		m.EmailsSentTotal,
		m.ClassLockDuration,
		m.ActiveClasses,
		m.ClassSpotsRemaining,
	)

	return m
}

// ObserveRSVP はRSVP結果をカウントする（nil の場合は何もしない）
func (m *Metrics) ObserveRSVP(status string) {
	if m == nil {
		return
	}
	m.RSVPsTotal.WithLabelValues(status).Inc()
}

// ObserveEmail はメール送信結果をカウントする
func (m *Metrics) ObserveEmail(kind string, err error) {
	if m == nil {
		return
	}
	status := "sent"
	if err != nil {
		status = "failed"
	}
	m.EmailsSentTotal.WithLabelValues(kind, status).Inc()
}

// ObserveLock はロック取得時間を記録する
func (m *Metrics) ObserveLock(seconds float64, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.ClassLockDuration.WithLabelValues(status).Observe(seconds)
}
