package power

// Driver applies power configurations to the wireless hardware. It is
// injected at Init and borrowed for the manager's entire lifetime.
//
// Calls may block (a hardware or firmware round trip); the manager imposes
// no timeout and serializes all transitions, so implementations need not
// handle overlapping calls. Repeated calls with the same mode must be safe,
// though the manager already avoids them via last-applied-mode tracking.
type Driver interface {
	// ApplyHighPerformance configures the radio for maximum
	// responsiveness. Broadcast-filter configuration is left untouched.
	ApplyHighPerformance() error

	// ApplyDTIMBasedSleep aligns the listen interval with the network's
	// DTIM beacon period and disables the broadcast filter.
	ApplyDTIMBasedSleep() error

	// ApplyDeepSleep enters the lowest-power state. Broadcast-filter
	// configuration is left untouched.
	ApplyDeepSleep() error
}

// StateProvider reports device network state for mode decisions. It is
// injected at Init and borrowed for the manager's entire lifetime.
type StateProvider interface {
	// IsProvisioned reports whether the device currently holds network
	// credentials. Queried on every evaluation; must be cheap and must
	// not block indefinitely.
	IsProvisioned() bool
}
