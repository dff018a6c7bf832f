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

	// 仮押さえ試行の総数（status: success, unavailable, error）
	HoldsTotal *prometheus.CounterVec

	// 自動座席選択の所要時間（result: adjacent, fallback, cross_class, failed）
	AutoSelectDuration *prometheus.HistogramVec

	// 期限切れ回収で放棄された注文の総数
	AbandonedOrdersTotal prometheus.Counter

	// 現在保持中の座席数（state: held, reserved）
	HeldSeats *prometheus.GaugeVec
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
		HoldsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_holds_total",
				Help: "Total number of seat hold attempts",
			},
			[]string{"status"},
		),
		AutoSelectDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "auto_select_duration_seconds",
				Help:    "Time spent selecting seats automatically",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"result"},
		),
		AbandonedOrdersTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "abandoned_orders_total",
				Help: "Total number of orders abandoned by the expiry reaper",
			},
		),
		HeldSeats: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "held_seats",
				Help: "Current number of seats per hold state",
			},
			[]string{"state"},
		),
	}

	// レジストリに登録
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HoldsTotal,
		m.AutoSelectDuration,
		m.AbandonedOrdersTotal,
		m.HeldSeats,
	)

	return m
}

// デフォルトのメトリクスインスタンス
var defaultMetrics *Metrics

// Init はデフォルトのメトリクスインスタンスを初期化する
func Init() *Metrics {
	defaultMetrics = New()
	return defaultMetrics
}

// Get はデフォルトのメトリクスインスタンスを返す
func Get() *Metrics {
	return defaultMetrics
}
