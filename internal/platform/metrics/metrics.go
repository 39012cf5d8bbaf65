package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics はアプリケーションの Prometheus メトリクスを保持します。
type Metrics struct {
	PromotionsTotal   prometheus.Counter
	PromotionFailures *prometheus.CounterVec
	HTTPRequests      *prometheus.CounterVec
}

// New はメトリクスを生成しデフォルトレジストリに登録します。
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith はメトリクスを生成し指定されたレジストリに登録します。
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		PromotionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "employee_history_promotions_total",
			Help: "Total number of successfully committed promotions",
		}),
		PromotionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "employee_history_promotion_failures_total",
			Help: "Total number of rejected or failed promotions, labelled by error code",
		}, []string{"code"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "employee_history_http_requests_total",
			Help: "Total number of handled HTTP requests, labelled by method, route and status",
		}, []string{"method", "route", "status"}),
	}
}

// IncPromotions は昇進成功カウンタを加算します。
func (m *Metrics) IncPromotions() {
	m.PromotionsTotal.Inc()
}

// IncPromotionFailure は失敗カウンタをエラーコード別に加算します。
func (m *Metrics) IncPromotionFailure(code string) {
	m.PromotionFailures.WithLabelValues(code).Inc()
}

// IncHTTPRequest は HTTP リクエストカウンタを加算します。
func (m *Metrics) IncHTTPRequest(method, route string, status int) {
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
