package log

import (
	"sync"
	"testing"
	"time"
)

// captureLogger records events in memory for assertions.
type captureLogger struct {
	mu     sync.Mutex
	events []Event
}

func (c *captureLogger) Log(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *captureLogger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestMultiLoggerFansOut(t *testing.T) {
	a := &captureLogger{}
	b := &captureLogger{}

	multi := NewMultiLogger(a, b)

	multi.Log(Event{Timestamp: time.Now(), TraceID: "t-1", Category: CategoryRequest})
	multi.Log(Event{Timestamp: time.Now(), TraceID: "t-2", Category: CategoryDecision})

	if a.count() != 2 {
		t.Errorf("logger a got %d events, want 2", a.count())
	}
	if b.count() != 2 {
		t.Errorf("logger b got %d events, want 2", b.count())
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	multi := NewMultiLogger()

	// No loggers configured; must not panic
	multi.Log(Event{Timestamp: time.Now(), Category: CategoryError})
}
