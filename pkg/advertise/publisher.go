package advertise

import (
	"context"
	"sync"
	"time"

	"github.com/powersave-project/powersave-go/pkg/power"
)

// Publisher keeps the advertised reachability pacing in sync with the
// device's power mode. Wire HandleModeChange into the power manager's
// transition callback.
type Publisher struct {
	mu sync.Mutex

	advertiser Advertiser
	info       ServiceInfo

	// wakeSource reports the radio's current wake cadence for DTIM pacing.
	wakeSource func() time.Duration

	// ctx is the base context from Start, reused when the service is
	// re-registered after leaving deep sleep.
	ctx context.Context

	started     bool
	advertising bool
}

// NewPublisher creates a publisher over the given advertiser.
func NewPublisher(advertiser Advertiser, info ServiceInfo) *Publisher {
	return &Publisher{
		advertiser: advertiser,
		info:       info,
	}
}

// SetWakeSource sets the radio wake cadence source consulted when
// computing DTIM-based sleep pacing. If unset, the default idle interval
// is advertised.
func (p *Publisher) SetWakeSource(fn func() time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.wakeSource = fn
}

// Start begins publishing. If the device is in deep sleep (or no mode has
// been applied yet), registration is deferred until the first reachable
// mode.
func (p *Publisher) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	p.ctx = ctx
	p.started = true
	p.refreshIntervalsLocked()

	if !reachable(p.info.Mode) {
		return nil
	}

	info := p.info
	if err := p.advertiser.Advertise(ctx, &info); err != nil {
		p.started = false
		return err
	}
	p.advertising = true
	return nil
}

// HandleModeChange recomputes the advertised pacing for the new mode.
// Entering deep sleep withdraws the advertisement; leaving it re-registers
// the service; other changes update TXT records in place.
func (p *Publisher) HandleModeChange(mode power.PowerMode) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.info.Mode = mode
	p.refreshIntervalsLocked()

	if !p.started {
		return nil
	}

	if !reachable(mode) {
		if !p.advertising {
			return nil
		}
		p.advertising = false
		return p.advertiser.Stop()
	}

	info := p.info
	if !p.advertising {
		if err := p.advertiser.Advertise(p.ctx, &info); err != nil {
			return err
		}
		p.advertising = true
		return nil
	}
	return p.advertiser.Update(&info)
}

// Stop withdraws the advertisement and stops publishing.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}
	p.started = false

	if !p.advertising {
		return nil
	}
	p.advertising = false
	return p.advertiser.Stop()
}

// IsAdvertising reports whether a registration is currently live.
func (p *Publisher) IsAdvertising() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.advertising
}

// Info returns a snapshot of the current service info.
func (p *Publisher) Info() ServiceInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info
}

func (p *Publisher) refreshIntervalsLocked() {
	var wake time.Duration
	if p.wakeSource != nil {
		wake = p.wakeSource()
	}
	p.info.Intervals = IntervalsForMode(p.info.Mode, wake)
}

// reachable reports whether the radio answers queries in the given mode.
func reachable(mode power.PowerMode) bool {
	return mode == power.ModeHighPerformance || mode == power.ModeDTIMBasedSleep
}
