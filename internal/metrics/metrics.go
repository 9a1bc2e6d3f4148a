package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

func (c *Counter) reset() {
	atomic.StoreUint64(&c.value, 0)
}

// Timer measures one workflow run; callers log Duration with the outcome.
type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Order workflow counters. The failure counters track bookkeeping steps that
// are allowed to fail without failing the order, so they must never be dropped.
var (
	OrdersCreated              Counter
	OrdersCancelled            Counter
	InventoryDecrementFailures Counter
	InventoryRestoreFailures   Counter
	CartClearFailures          Counter
	CompensationRetries        Counter
	OrphanedOrders             Counter
)

var registry = map[string]*Counter{
	"orders_created":               &OrdersCreated,
	"orders_cancelled":             &OrdersCancelled,
	"inventory_decrement_failures": &InventoryDecrementFailures,
	"inventory_restore_failures":   &InventoryRestoreFailures,
	"cart_clear_failures":          &CartClearFailures,
	"compensation_retries":         &CompensationRetries,
	"orphaned_orders":              &OrphanedOrders,
}

// Snapshot returns the current value of every registered counter.
func Snapshot() map[string]uint64 {
	out := make(map[string]uint64, len(registry))
	for name, c := range registry {
		out[name] = c.Load()
	}
	return out
}

// Reset zeroes every registered counter. Tests only.
func Reset() {
	for _, c := range registry {
		c.reset()
	}
}
