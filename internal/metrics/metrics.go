package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "brytashop"

const (
	OrdersCreated   = "orders_created_total"
	PaymentFailures = "payment_failures_total"
	Refunds         = "refunds_total"
	Unreconciled    = "payments_unreconciled_total"
)

var help = map[string]string{
	OrdersCreated:   "Orders stored after a successful payment.",
	PaymentFailures: "Charges or verifications that failed or were rejected.",
	Refunds:         "Compensating refunds issued for orders that could not be stored.",
	Unreconciled:    "Payments that moved money without a matching order.",
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Registry owns the process collectors and hands out named counters.
type Registry struct {
	reg      *prometheus.Registry
	requests *prometheus.HistogramVec

	mu       sync.Mutex
	counters map[string]prometheus.Counter
}

func NewRegistry() *Registry {
	r := &Registry{
		reg:      prometheus.NewRegistry(),
		counters: make(map[string]prometheus.Counter),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "status"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests,
	)
	for name := range help {
		r.Counter(name)
	}
	return r
}

// Counter returns the counter registered under name, creating it on first use.
func (r *Registry) Counter(name string) prometheus.Counter {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.counters[name]; ok {
		return c
	}
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help[name],
	})
	r.reg.MustRegister(c)
	r.counters[name] = c
	return c
}

func (r *Registry) ObserveRequest(method string, status int, d time.Duration) {
	r.requests.WithLabelValues(method, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
