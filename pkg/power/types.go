package power

import "errors"

// Arbitration errors.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUninitialized      = errors.New("power manager not initialized")
	ErrAlreadyInitialized = errors.New("power manager already initialized")
	ErrInternal           = errors.New("internal error")
	ErrCounterOverflow    = errors.New("request counter at capacity")
)

// PowerMode identifies a radio power state. Exactly one mode is the
// arbitration target at any time; it is recomputed from obligations and
// device state on every event, never stored as independent truth.
type PowerMode uint8

const (
	// ModeUnknown - no mode has been applied yet.
	ModeUnknown PowerMode = iota

	// ModeHighPerformance - maximum radio responsiveness.
	ModeHighPerformance

	// ModeDTIMBasedSleep - wake schedule aligned to the DTIM beacon.
	ModeDTIMBasedSleep

	// ModeDeepSleep - lowest-power state.
	ModeDeepSleep
)

// String returns the mode name.
func (m PowerMode) String() string {
	switch m {
	case ModeUnknown:
		return "UNKNOWN"
	case ModeHighPerformance:
		return "HIGH_PERFORMANCE"
	case ModeDTIMBasedSleep:
		return "DTIM_BASED_SLEEP"
	case ModeDeepSleep:
		return "DEEP_SLEEP"
	default:
		return "UNKNOWN"
	}
}

// PowerEvent tags why a re-evaluation was triggered. Events carry no
// payload; they exist so logs and captures can attribute cause.
type PowerEvent uint8

const (
	// EventGeneric - unspecified trigger (requests, releases, retries).
	EventGeneric PowerEvent = iota

	// EventCommissioningComplete - a commissioning flow finished.
	EventCommissioningComplete

	// EventConnectivityChange - network connectivity changed.
	EventConnectivityChange
)

// String returns the event name.
func (e PowerEvent) String() string {
	switch e {
	case EventGeneric:
		return "GENERIC"
	case EventCommissioningComplete:
		return "COMMISSIONING_COMPLETE"
	case EventConnectivityChange:
		return "CONNECTIVITY_CHANGE"
	default:
		return "UNKNOWN"
	}
}

// valid reports whether the event tag is recognized.
func (e PowerEvent) valid() bool {
	return e <= EventConnectivityChange
}
