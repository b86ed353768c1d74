package services

import (
	"time"

	"audiotech/internal/metrics"
)

// Latency is the artificial delay each mock operation waits before it
// resolves. The wait is not interruptible.
type Latency struct {
	Op       time.Duration
	Register time.Duration
	Logout   time.Duration
	Checkout time.Duration
}

func DefaultLatency() Latency {
	return Latency{
		Op:       800 * time.Millisecond,
		Register: 1300 * time.Millisecond,
		Logout:   500 * time.Millisecond,
		Checkout: 2 * time.Second,
	}
}

// Scaled derives every delay from a single base value, keeping the
// default proportions.
func Scaled(base time.Duration) Latency {
	return Latency{
		Op:       base,
		Register: base + base*5/8,
		Logout:   base * 5 / 8,
		Checkout: base * 5 / 2,
	}
}

func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

// observe records the duration of op; call the result when op finishes.
func observe(op string) func() {
	start := time.Now()
	return func() {
		metrics.ServiceLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
