package log

import (
	"testing"
	"time"
)

func TestNoopLoggerDoesNotPanic(t *testing.T) {
	logger := NoopLogger{}

	// Should not panic with any event type
	event := Event{
		Timestamp: time.Now(),
		TraceID:   "trace-1",
		Category:  CategoryRequest,
	}

	// Test with nil payloads
	logger.Log(event)

	// Test with request payload
	event.Request = &RequestEvent{Action: ActionAcquire, Outstanding: 1}
	logger.Log(event)

	// Test with decision payload
	event.Request = nil
	event.Decision = &DecisionEvent{Target: "HIGH_PERFORMANCE", Requests: 1}
	logger.Log(event)

	// Test with transition payload
	event.Decision = nil
	event.Transition = &TransitionEvent{To: "DTIM_BASED_SLEEP"}
	logger.Log(event)

	// Test with state change payload
	event.Transition = nil
	event.StateChange = &StateChangeEvent{Entity: StateEntityCommissioning, NewState: "OPEN"}
	logger.Log(event)

	// Test with error payload
	event.StateChange = nil
	event.Error = &ErrorEventData{Op: "verify-and-transition", Message: "test error"}
	logger.Log(event)
}

func TestNoopLoggerIsZeroValue(t *testing.T) {
	// NoopLogger should be usable as zero value
	var logger NoopLogger
	logger.Log(Event{})
}
