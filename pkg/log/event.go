package log

import (
	"time"
)

// Event represents a power arbitration event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// TraceID correlates all events of one controller lifetime (UUID).
	TraceID string `cbor:"2,keyasint"`

	// DeviceID is the device identifier, if the application set one.
	DeviceID string `cbor:"3,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Request     *RequestEvent     `cbor:"5,keyasint,omitempty"`  // Obligation acquired/released
	Decision    *DecisionEvent    `cbor:"6,keyasint,omitempty"`  // Evaluation outcome
	Transition  *TransitionEvent  `cbor:"7,keyasint,omitempty"`  // Successful hardware switch
	StateChange *StateChangeEvent `cbor:"8,keyasint,omitempty"`  // Commissioning/network state
	Error       *ErrorEventData   `cbor:"9,keyasint,omitempty"`  // Failed operations
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryRequest indicates a high-performance obligation change.
	CategoryRequest Category = 0
	// CategoryDecision indicates an arbitration pass (applied or not).
	CategoryDecision Category = 1
	// CategoryTransition indicates a successful hardware mode switch.
	CategoryTransition Category = 2
	// CategoryState indicates a commissioning/connectivity/provisioning change.
	CategoryState Category = 3
	// CategoryError indicates a failed operation.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRequest:
		return "REQUEST"
	case CategoryDecision:
		return "DECISION"
	case CategoryTransition:
		return "TRANSITION"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// RequestEvent captures a change to the high-performance request counter.
type RequestEvent struct {
	// Action distinguishes acquire from release.
	Action RequestAction `cbor:"1,keyasint"`

	// WithTransition indicates the caller asked for an immediate transition.
	WithTransition bool `cbor:"2,keyasint,omitempty"`

	// Outstanding is the counter value after the action.
	Outstanding int `cbor:"3,keyasint"`

	// Clamped indicates a release was ignored because the counter was
	// already zero (caller bug; the counter never goes negative).
	Clamped bool `cbor:"4,keyasint,omitempty"`
}

// RequestAction distinguishes acquire from release.
type RequestAction uint8

const (
	// ActionAcquire indicates a high-performance request was added.
	ActionAcquire RequestAction = 0
	// ActionRelease indicates a high-performance request was removed.
	ActionRelease RequestAction = 1
)

// String returns the action name.
func (a RequestAction) String() string {
	switch a {
	case ActionAcquire:
		return "ACQUIRE"
	case ActionRelease:
		return "RELEASE"
	default:
		return "UNKNOWN"
	}
}

// DecisionEvent captures one arbitration pass: the inputs the decision
// engine saw and the target it produced. Emitted for every evaluation,
// including passes that required no hardware call.
type DecisionEvent struct {
	// Target is the mode the decision engine selected.
	Target string `cbor:"1,keyasint"`

	// Previous is the last-applied mode at evaluation time.
	Previous string `cbor:"2,keyasint,omitempty"`

	// Requests is the outstanding high-performance request count.
	Requests int `cbor:"3,keyasint"`

	// Commissioning indicates a commissioning session was in progress.
	Commissioning bool `cbor:"4,keyasint,omitempty"`

	// Provisioned indicates the device held network credentials.
	Provisioned bool `cbor:"5,keyasint,omitempty"`

	// Changed indicates the target differed from Previous, so a
	// hardware transition was attempted.
	Changed bool `cbor:"6,keyasint,omitempty"`
}

// TransitionEvent captures a successful hardware mode switch.
type TransitionEvent struct {
	// From is the previously-applied mode (empty on the first transition).
	From string `cbor:"1,keyasint,omitempty"`

	// To is the newly-applied mode.
	To string `cbor:"2,keyasint"`

	// Cause is the power event that triggered the evaluation.
	Cause string `cbor:"3,keyasint,omitempty"`

	// Elapsed is the duration of the hardware delegate call.
	Elapsed time.Duration `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures commissioning and network state changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntityCommissioning indicates a commissioning state change.
	StateEntityCommissioning StateEntity = 0
	// StateEntityConnectivity indicates a connectivity state change.
	StateEntityConnectivity StateEntity = 1
	// StateEntityProvisioning indicates a provisioning state change.
	StateEntityProvisioning StateEntity = 2
	// StateEntityAdvertising indicates an advertising state change.
	StateEntityAdvertising StateEntity = 3
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntityCommissioning:
		return "COMMISSIONING"
	case StateEntityConnectivity:
		return "CONNECTIVITY"
	case StateEntityProvisioning:
		return "PROVISIONING"
	case StateEntityAdvertising:
		return "ADVERTISING"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures a failed power operation.
type ErrorEventData struct {
	// Op names the operation that failed (e.g., "verify-and-transition").
	Op string `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`
}
