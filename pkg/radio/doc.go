// Package radio models the Wi-Fi radio configuration behind each power mode
// and provides a simulated driver for development and testing.
//
// # Listen Interval
//
// The radio wakes its receiver every ListenInterval beacon intervals. High
// performance pins the interval to 1 (every beacon), DTIM-based sleep aligns
// it to the access point's DTIM period, and deep sleep parks the receiver
// entirely (interval 0).
//
// # Broadcast Filter
//
// When the broadcast filter is enabled the radio drops group-addressed
// frames to save power. Entering DTIM-based sleep always disables the
// filter: a sleeping but provisioned device must still receive mDNS queries
// and other multicast traffic at DTIM beacons. The other modes leave the
// filter untouched.
//
// # Simulator
//
// Simulator implements the power manager's hardware driver against an
// in-memory radio. It records per-mode apply counts, supports one-shot
// failure injection for exercising retry paths, and can add artificial
// latency to mimic slow radio firmware calls.
package radio
