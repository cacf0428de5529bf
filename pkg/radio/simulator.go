package radio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/powersave-project/powersave-go/pkg/power"
)

// SimulatorConfig configures the simulated radio.
type SimulatorConfig struct {
	// DTIMPeriod is the simulated access point's DTIM period.
	DTIMPeriod DTIMPeriod

	// BeaconInterval is the simulated access point's beacon period.
	BeaconInterval time.Duration

	// ApplyLatency is an artificial delay added to every apply call,
	// mimicking slow radio firmware. Zero disables it.
	ApplyLatency time.Duration

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultSimulatorConfig returns a SimulatorConfig with sensible defaults:
// DTIM period 3 and the common 100ms beacon period.
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		DTIMPeriod:     3,
		BeaconInterval: 100 * time.Millisecond,
	}
}

// Validate checks if the simulator config is valid.
func (c *SimulatorConfig) Validate() error {
	if c.DTIMPeriod == 0 {
		return ErrInvalidConfig
	}
	if c.BeaconInterval <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// Simulator is an in-memory radio implementing the power manager's hardware
// driver. It is safe for concurrent use.
type Simulator struct {
	mu sync.Mutex

	cfg SimulatorConfig

	mode     power.PowerMode
	listen   uint16
	filterOn bool

	applies  map[power.PowerMode]int
	failNext error

	onApply func(Params)
}

var _ power.Driver = (*Simulator)(nil)

// NewSimulator creates a simulated radio. The receiver starts with the
// broadcast filter disabled and no mode applied.
func NewSimulator(cfg SimulatorConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:     cfg,
		applies: make(map[power.PowerMode]int),
	}, nil
}

// ApplyHighPerformance wakes the receiver every beacon. The broadcast
// filter is left untouched.
func (s *Simulator) ApplyHighPerformance() error {
	return s.apply(power.ModeHighPerformance)
}

// ApplyDTIMBasedSleep aligns the listen interval to the DTIM period and
// disables the broadcast filter so group-addressed traffic still arrives.
func (s *Simulator) ApplyDTIMBasedSleep() error {
	return s.apply(power.ModeDTIMBasedSleep)
}

// ApplyDeepSleep parks the receiver. The broadcast filter is left
// untouched.
func (s *Simulator) ApplyDeepSleep() error {
	return s.apply(power.ModeDeepSleep)
}

func (s *Simulator) apply(mode power.PowerMode) error {
	if d := s.cfg.ApplyLatency; d > 0 {
		time.Sleep(d)
	}

	s.mu.Lock()
	if err := s.failNext; err != nil {
		s.failNext = nil
		s.mu.Unlock()

		if s.cfg.Logger != nil {
			s.cfg.Logger.Debug("radio apply failed",
				"mode", mode.String(),
				"error", err)
		}
		return err
	}

	s.mode = mode
	switch mode {
	case power.ModeHighPerformance:
		s.listen = 1
	case power.ModeDTIMBasedSleep:
		s.listen = uint16(s.cfg.DTIMPeriod)
		s.filterOn = false
	case power.ModeDeepSleep:
		s.listen = 0
	}
	s.applies[mode]++
	params := s.paramsLocked()
	cb := s.onApply
	logger := s.cfg.Logger
	s.mu.Unlock()

	if logger != nil {
		logger.Debug("radio configured",
			"mode", params.Mode.String(),
			"listen_interval", params.ListenInterval,
			"broadcast_filter", params.BroadcastFilterEnabled)
	}
	if cb != nil {
		cb(params)
	}
	return nil
}

// FailNext makes the next apply call return err without changing the radio
// state. Passing nil clears a pending injection.
func (s *Simulator) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// SetBroadcastFilter enables or disables dropping of group-addressed
// frames. The next DTIM-based sleep transition disables the filter again.
func (s *Simulator) SetBroadcastFilter(enabled bool) {
	s.mu.Lock()
	s.filterOn = enabled
	logger := s.cfg.Logger
	s.mu.Unlock()

	if logger != nil {
		logger.Debug("broadcast filter configured", "enabled", enabled)
	}
}

// OnApply sets a callback fired after each successful apply with the
// resulting radio parameters. The callback runs outside the simulator lock.
func (s *Simulator) OnApply(fn func(Params)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onApply = fn
}

// Params returns a snapshot of the current radio configuration.
func (s *Simulator) Params() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paramsLocked()
}

func (s *Simulator) paramsLocked() Params {
	return Params{
		Mode:                   s.mode,
		ListenInterval:         s.listen,
		BeaconInterval:         s.cfg.BeaconInterval,
		BroadcastFilterEnabled: s.filterOn,
	}
}

// Applies returns how many times the given mode was successfully applied.
func (s *Simulator) Applies(mode power.PowerMode) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applies[mode]
}
