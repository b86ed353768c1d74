package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues("fail"))
	Logins.WithLabelValues("fail").Inc()
	if got := testutil.ToFloat64(Logins.WithLabelValues("fail")); got != before+1 {
		t.Fatalf("logins fail = %v, want %v", got, before+1)
	}

	before = testutil.ToFloat64(Orders)
	Orders.Inc()
	if got := testutil.ToFloat64(Orders); got != before+1 {
		t.Fatalf("orders = %v, want %v", got, before+1)
	}
}
