package radio

import (
	"errors"
	"time"

	"github.com/powersave-project/powersave-go/pkg/power"
)

// Radio configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid radio config")
)

// DTIMPeriod is the access point's DTIM period: the number of beacon
// intervals between beacons that carry buffered group-addressed traffic.
// Typical access points use 1 or 3.
type DTIMPeriod uint8

// Params is a snapshot of the radio's power-relevant configuration.
type Params struct {
	// Mode is the currently applied power mode. ModeUnknown until the
	// first transition.
	Mode power.PowerMode

	// ListenInterval is the number of beacon intervals between receiver
	// wakeups. 0 means the receiver is parked (deep sleep).
	ListenInterval uint16

	// BeaconInterval is the access point's beacon period.
	BeaconInterval time.Duration

	// BroadcastFilterEnabled reports whether group-addressed frames are
	// dropped before reaching the host.
	BroadcastFilterEnabled bool
}

// WakeInterval returns the effective time between receiver wakeups.
// Zero means the receiver never wakes.
func (p Params) WakeInterval() time.Duration {
	return p.BeaconInterval * time.Duration(p.ListenInterval)
}

// DutyCycle returns the approximate fraction of beacon intervals the
// receiver is awake for, in [0, 1].
func (p Params) DutyCycle() float64 {
	if p.ListenInterval == 0 {
		return 0
	}
	return 1 / float64(p.ListenInterval)
}
