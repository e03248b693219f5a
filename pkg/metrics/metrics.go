package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec

	// Детектор конфликтов
	ConflictsDetected *prometheus.CounterVec
	DetectionDuration *prometheus.HistogramVec

	// Кэш отчетов
	CacheRequests *prometheus.CounterVec

	serviceName string
}

// New создает метрики и регистрирует их в глобальном реестре (для promhttp.Handler)
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре
// В тестах используется prometheus.NewRegistry(), чтобы избежать повторной регистрации
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		ConflictsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_detected_total",
			Help: "Total number of detected booking conflicts",
		}, []string{"service", "type", "severity"}),
		DetectionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "booking_conflicts_detection_duration_seconds",
			Help:    "Conflict detector run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "scope"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conflicts_cache_requests_total",
			Help: "Conflict report cache lookups by result",
		}, []string{"service", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.ConflictsDetected,
		m.DetectionDuration,
		m.CacheRequests,
	)

	return m
}

// ServiceName возвращает имя сервиса, которым помечаются метрики
func (m *Metrics) ServiceName() string {
	return m.serviceName
}

// ObserveDetection фиксирует длительность прохода детектора и найденные конфликты
// counts - ключ {type, severity}
func (m *Metrics) ObserveDetection(scope string, duration time.Duration, counts map[[2]string]int) {
	m.DetectionDuration.WithLabelValues(m.serviceName, scope).Observe(duration.Seconds())
	for key, n := range counts {
		m.ConflictsDetected.WithLabelValues(m.serviceName, key[0], key[1]).Add(float64(n))
	}
}

// ObserveCache фиксирует попадание или промах кэша
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheRequests.WithLabelValues(m.serviceName, result).Inc()
}
