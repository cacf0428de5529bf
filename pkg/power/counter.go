package power

import "sync"

// MaxHighPerformanceRequests is the request counter capacity. The bound
// exists to catch leaked request/release pairs before they wrap; realistic
// concurrent-caller counts stay far below it.
const MaxHighPerformanceRequests = 255

// Counter tracks outstanding high-performance obligations. It never goes
// negative and refuses to grow past MaxHighPerformanceRequests.
// Counter is safe for concurrent use and usable as a zero value.
type Counter struct {
	mu    sync.Mutex
	value int
}

// Increment adds one obligation.
// Returns ErrCounterOverflow when the counter is at capacity.
func (c *Counter) Increment() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value >= MaxHighPerformanceRequests {
		return ErrCounterOverflow
	}
	c.value++
	return nil
}

// Decrement removes one obligation, floored at zero.
// Returns false when the counter was already zero.
func (c *Counter) Decrement() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.value == 0 {
		return false
	}
	c.value--
	return true
}

// Value returns the current obligation count.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}
