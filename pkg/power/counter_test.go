package power

import (
	"errors"
	"sync"
	"testing"
)

func TestCounterZeroValue(t *testing.T) {
	var c Counter

	if c.Value() != 0 {
		t.Errorf("Value() = %d, want 0", c.Value())
	}
	if c.Decrement() {
		t.Error("Decrement() on zero counter = true, want false")
	}
	if c.Value() != 0 {
		t.Errorf("Value() after clamped decrement = %d, want 0", c.Value())
	}
}

func TestCounterIncrementDecrement(t *testing.T) {
	var c Counter

	if err := c.Increment(); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if err := c.Increment(); err != nil {
		t.Fatalf("Increment() error = %v", err)
	}
	if c.Value() != 2 {
		t.Errorf("Value() = %d, want 2", c.Value())
	}

	if !c.Decrement() {
		t.Error("Decrement() = false, want true")
	}
	if !c.Decrement() {
		t.Error("Decrement() = false, want true")
	}
	if c.Value() != 0 {
		t.Errorf("Value() = %d, want 0", c.Value())
	}

	// Floor at zero
	if c.Decrement() {
		t.Error("Decrement() below zero = true, want false")
	}
	if c.Value() != 0 {
		t.Errorf("Value() = %d, want 0", c.Value())
	}
}

func TestCounterOverflow(t *testing.T) {
	var c Counter

	for i := 0; i < MaxHighPerformanceRequests; i++ {
		if err := c.Increment(); err != nil {
			t.Fatalf("Increment() #%d error = %v", i+1, err)
		}
	}

	err := c.Increment()
	if !errors.Is(err, ErrCounterOverflow) {
		t.Errorf("Increment() at capacity error = %v, want ErrCounterOverflow", err)
	}
	if c.Value() != MaxHighPerformanceRequests {
		t.Errorf("Value() = %d, want %d", c.Value(), MaxHighPerformanceRequests)
	}
}

func TestCounterConcurrentPairs(t *testing.T) {
	var c Counter

	// Each goroutine pairs every decrement with its own prior increment,
	// so the counter can never clamp and must end at zero.
	const goroutines = 20
	const pairs = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < pairs; j++ {
				if err := c.Increment(); err != nil {
					t.Errorf("Increment() error = %v", err)
					return
				}
				if !c.Decrement() {
					t.Error("Decrement() = false with paired increment")
					return
				}
			}
		}()
	}
	wg.Wait()

	if c.Value() != 0 {
		t.Errorf("Value() after paired storm = %d, want 0", c.Value())
	}
}
