// Package advertise publishes the device's reachability pacing over mDNS.
//
// A battery-sensitive device is not always listening. Controllers that know
// the device's wake cadence can pace retransmissions instead of flooding a
// sleeping radio, so the device advertises two intervals in its TXT records:
// the idle interval (how long until a sleeping device checks in) and the
// active interval (how quickly it responds once an exchange is running).
//
// # Mode Tracking
//
// Publisher keeps the advertisement in sync with the power manager: wire
// its HandleModeChange into the manager's transition callback. DTIM-based
// sleep stretches the idle interval to the radio's wake cadence, deep sleep
// withdraws the advertisement entirely (the radio cannot answer queries
// anyway), and returning to a reachable mode re-registers the service.
package advertise
