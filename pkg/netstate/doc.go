// Package netstate tracks the device's network state for power arbitration.
//
// Tracker holds two observed facts: whether the device is provisioned
// (holds network credentials) and whether it is currently connected. The
// power manager reads the provisioned flag on every arbitration pass;
// platform glue updates both flags as the network stack reports changes.
//
// # Change Notification
//
// OnChange registers a callback fired on every state edge. Callbacks run
// outside the tracker lock, so they may call back into the tracker or
// trigger a power re-evaluation directly.
package netstate
