package power

// DecideMode computes the target power mode from current obligations and
// device state, in strict priority order:
//
//  1. Outstanding high-performance requests always win: responsiveness
//     obligations dominate energy savings.
//  2. An in-progress commissioning session needs periodic responsiveness,
//     but not full performance.
//  3. An unprovisioned, idle device has nothing to stay reachable for and
//     may sleep maximally.
//  4. A provisioned, idle device sleeps with bounded latency so it remains
//     reachable as a network peer.
//
// DecideMode is pure: no side effects, never fails.
func DecideMode(highPerfRequests int, commissioning, provisioned bool) PowerMode {
	if highPerfRequests > 0 {
		return ModeHighPerformance
	}
	if commissioning {
		return ModeDTIMBasedSleep
	}
	if !provisioned {
		return ModeDeepSleep
	}
	return ModeDTIMBasedSleep
}
