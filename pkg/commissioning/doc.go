// Package commissioning implements the commissioning window state machine
// for a battery-sensitive device.
//
// # Window Lifecycle
//
// The window starts CLOSED. Opening it (button press, remote command, or
// unprovisioned startup) moves it to OPEN and starts an auto-close timer.
// A commissioner beginning a session moves it to SESSION_ACTIVE. A failed
// session returns to OPEN while the timer has time left; a successful one
// closes the window. The window also closes on timeout or an explicit
// Close call.
//
// # Power Pairing
//
// Every open window produces exactly one OnClosed callback, regardless of
// how it closes. Wiring OnOpened to the power manager's commissioning start
// and OnClosed to its stop therefore keeps the high-performance obligation
// balanced: the radio stays responsive for the whole window and returns to
// its resting mode as soon as the window is gone.
package commissioning
