package metrics

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	timer := StartTimer()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.Duration(), 2*time.Millisecond)
}

func TestRegistry_Counter(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Counter(OrdersCreated).Inc()
		}()
	}
	wg.Wait()

	assert.Same(t, r.Counter(OrdersCreated), r.Counter(OrdersCreated))
	assert.Equal(t, float64(50), testutil.ToFloat64(r.Counter(OrdersCreated)))
	assert.Equal(t, float64(0), testutil.ToFloat64(r.Counter(Refunds)))
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.Counter(PaymentFailures).Inc()
	r.ObserveRequest(http.MethodPost, http.StatusOK, 15*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "brytashop_payment_failures_total 1")
	assert.Contains(t, body, "brytashop_orders_created_total 0")
	assert.Contains(t, body, `brytashop_http_request_duration_seconds_count{method="POST",status="200"} 1`)
	assert.Contains(t, body, "go_goroutines")
}
