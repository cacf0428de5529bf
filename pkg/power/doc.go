// Package power arbitrates the radio power state of a battery-sensitive
// network device.
//
// Competing demands arrive asynchronously - commissioning sessions,
// connectivity changes, explicit "stay awake" requests from independent
// callers - and must combine into one race-free decision about which power
// state the wireless interface occupies. The Manager owns that arbitration:
// it tracks outstanding high-performance obligations, recomputes the target
// mode on every event, and drives changed targets through an injected
// hardware Driver.
//
// # Power Modes
//
//   - HIGH_PERFORMANCE: maximum responsiveness, maximum draw
//   - DTIM_BASED_SLEEP: wake schedule aligned to the access point's DTIM
//     beacon; bounded latency at a fraction of the cost
//   - DEEP_SLEEP: lowest power; the radio stops listening entirely
//
// # Decision Priority
//
// Strict priority order, re-evaluated on every event:
//
//  1. Outstanding high-performance requests → HIGH_PERFORMANCE
//  2. Commissioning in progress → DTIM_BASED_SLEEP
//  3. Not provisioned → DEEP_SLEEP
//  4. Otherwise (provisioned, idle) → DTIM_BASED_SLEEP
//
// # Request Pairing
//
// Every successful RequestHighPerformance must be paired with exactly one
// ReleaseHighPerformanceRequest. Requests are legal before Init and feed
// the first evaluation, so a device can boot straight into high performance.
//
// # Hardware Transitions
//
// The target mode is compared against the last-applied mode and the Driver
// is invoked only on change. A failed driver call leaves the last-applied
// mode untouched: re-delivering an equivalent event retries the same
// transition.
package power
