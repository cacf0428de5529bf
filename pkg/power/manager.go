package power

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/powersave-project/powersave-go/pkg/log"
)

// Manager arbitrates the radio power state for one device.
//
// It owns the high-performance request counter and the commissioning flag,
// recomputes the target mode on every event, and drives hardware transitions
// through the injected Driver. Production wiring uses one instance per
// process; tests construct as many as they need.
//
// All public operations are safe for any number of concurrent callers. The
// decide-compare-apply sequence runs under a single manager-wide lock, so
// hardware calls serialize all power operations - acceptable because
// transitions are infrequent relative to steady-state operation.
type Manager struct {
	mu sync.Mutex

	driver      Driver
	provider    StateProvider
	initialized bool

	// Outstanding high-performance obligations.
	requests Counter

	// True between commissioning-session-started and the matching stopped.
	commissioning bool

	// Last successfully-applied mode; ModeUnknown until the first apply.
	lastApplied PowerMode

	// Correlates captured events for this manager's lifetime.
	traceID  string
	deviceID string

	logger      *slog.Logger
	eventLogger log.Logger

	onTransition func(old, new PowerMode, cause PowerEvent)
}

// NewManager creates an uninitialized power manager. High-performance
// requests may be queued immediately; hardware transitions require Init.
func NewManager() *Manager {
	return &Manager{
		traceID: uuid.NewString(),
	}
}

// SetLogger sets the operational logger. If nil, logging is disabled.
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// SetEventLogger sets the power event capture logger and the device ID
// stamped on captured events. If logger is nil, capture is disabled.
func (m *Manager) SetEventLogger(logger log.Logger, deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventLogger = logger
	m.deviceID = deviceID
}

// OnTransition sets a callback fired after each successful hardware
// transition. The callback runs outside the manager lock; it may call back
// into the manager.
func (m *Manager) OnTransition(fn func(old, new PowerMode, cause PowerEvent)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTransition = fn
}

// Init supplies the hardware driver and the state provider, then performs
// a full evaluation so the device lands in its correct starting mode.
// High-performance requests queued before Init feed that first evaluation.
//
// Returns ErrInvalidArgument if either delegate is nil,
// ErrAlreadyInitialized on a second call after a successful one, and
// ErrInternal if the initial hardware transition fails - the manager stays
// initialized in that case, so re-delivering an event retries the
// transition.
func (m *Manager) Init(driver Driver, provider StateProvider) error {
	if driver == nil || provider == nil {
		return fmt.Errorf("%w: driver and state provider are required", ErrInvalidArgument)
	}

	m.mu.Lock()
	if m.initialized {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.driver = driver
	m.provider = provider
	m.initialized = true

	out := m.evaluateLocked()
	cb := m.onTransition
	s := m.sinksLocked()
	m.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("power manager initialized",
			"requests", out.requests,
			"commissioning", out.commissioning,
			"provisioned", out.provisioned)
	}
	return m.finish(s, out, EventGeneric, "init", cb)
}

// RequestHighPerformance adds one high-performance obligation. When
// withTransition is true and the manager is initialized, the resulting
// mode (necessarily HighPerformance) is applied immediately; otherwise the
// obligation is recorded and the next evaluation picks it up. Requests are
// explicitly legal before Init, enabling "start in high performance"
// semantics.
//
// Every successful request must be paired with exactly one
// ReleaseHighPerformanceRequest call.
func (m *Manager) RequestHighPerformance(withTransition bool) error {
	m.mu.Lock()
	if err := m.requests.Increment(); err != nil {
		s := m.sinksLocked()
		m.mu.Unlock()

		err = fmt.Errorf("%w: %w", ErrInternal, err)
		if s.logger != nil {
			s.logger.Warn("high performance request rejected", "error", err)
		}
		s.emitError("request-high-performance", err)
		return err
	}

	outstanding := m.requests.Value()
	out, evaluated := m.maybeEvaluateLocked(withTransition)
	cb := m.onTransition
	s := m.sinksLocked()
	m.mu.Unlock()

	s.emitRequest(log.ActionAcquire, withTransition, outstanding, false)
	if !evaluated {
		return nil
	}
	return m.finish(s, out, EventGeneric, "request-high-performance", cb)
}

// RequestHighPerformanceWithTransition adds one high-performance obligation
// and applies the resulting mode immediately.
func (m *Manager) RequestHighPerformanceWithTransition() error {
	return m.RequestHighPerformance(true)
}

// RequestHighPerformanceWithoutTransition adds one high-performance
// obligation without touching the hardware; the next evaluation picks it up.
func (m *Manager) RequestHighPerformanceWithoutTransition() error {
	return m.RequestHighPerformance(false)
}

// ReleaseHighPerformanceRequest removes one high-performance obligation
// and, when initialized, re-evaluates and applies the resulting mode.
// Releasing with no outstanding obligation is a caller bug: the counter
// stays at zero and a warning is logged, never going negative.
//
// Returns ErrInternal only if the hardware transition fails; the release
// itself persists regardless.
func (m *Manager) ReleaseHighPerformanceRequest() error {
	m.mu.Lock()
	clamped := !m.requests.Decrement()
	outstanding := m.requests.Value()
	out, evaluated := m.maybeEvaluateLocked(true)
	cb := m.onTransition
	s := m.sinksLocked()
	m.mu.Unlock()

	if clamped && s.logger != nil {
		s.logger.Warn("release without matching high performance request")
	}
	s.emitRequest(log.ActionRelease, false, outstanding, clamped)
	if !evaluated {
		return nil
	}
	return m.finish(s, out, EventGeneric, "release-high-performance-request", cb)
}

// HandleCommissioningSessionStarted marks a commissioning session as in
// progress. Only the false→true edge takes effect: it adds exactly one
// high-performance obligation (commissioning needs a responsive radio) and,
// when initialized, applies the resulting mode. Repeated calls without an
// intervening stop are no-ops.
func (m *Manager) HandleCommissioningSessionStarted() error {
	m.mu.Lock()
	if m.commissioning {
		m.mu.Unlock()
		return nil
	}
	m.commissioning = true
	if err := m.requests.Increment(); err != nil {
		// The flag and its obligation stay paired.
		m.commissioning = false
		s := m.sinksLocked()
		m.mu.Unlock()

		err = fmt.Errorf("%w: %w", ErrInternal, err)
		if s.logger != nil {
			s.logger.Warn("commissioning session start rejected", "error", err)
		}
		s.emitError("commissioning-session-started", err)
		return err
	}

	outstanding := m.requests.Value()
	out, evaluated := m.maybeEvaluateLocked(true)
	cb := m.onTransition
	s := m.sinksLocked()
	m.mu.Unlock()

	s.emitState(log.StateEntityCommissioning, "IDLE", "IN_PROGRESS", "session started")
	s.emitRequest(log.ActionAcquire, true, outstanding, false)
	if !evaluated {
		return nil
	}
	return m.finish(s, out, EventGeneric, "commissioning-session-started", cb)
}

// HandleCommissioningSessionStopped clears the commissioning flag. Only the
// true→false edge takes effect: it releases the obligation added by the
// matching start and, when initialized, applies the resulting mode.
// Repeated calls without an intervening start are no-ops.
func (m *Manager) HandleCommissioningSessionStopped() error {
	m.mu.Lock()
	if !m.commissioning {
		m.mu.Unlock()
		return nil
	}
	m.commissioning = false
	clamped := !m.requests.Decrement()
	outstanding := m.requests.Value()
	out, evaluated := m.maybeEvaluateLocked(true)
	cb := m.onTransition
	s := m.sinksLocked()
	m.mu.Unlock()

	if clamped && s.logger != nil {
		s.logger.Warn("commissioning stop without outstanding request")
	}
	s.emitState(log.StateEntityCommissioning, "IN_PROGRESS", "IDLE", "session stopped")
	s.emitRequest(log.ActionRelease, false, outstanding, clamped)
	if !evaluated {
		return nil
	}
	return m.finish(s, out, EventGeneric, "commissioning-session-stopped", cb)
}

// VerifyAndTransition recomputes the target power mode and applies it when
// it differs from the last-applied mode. The event tags the cause for
// logging and capture; it does not alter the decision.
//
// Returns ErrUninitialized before Init, ErrInvalidArgument for unrecognized
// events, and ErrInternal when the hardware transition fails. A failed
// transition leaves the last-applied mode unchanged, so re-delivering an
// equivalent event retries safely.
func (m *Manager) VerifyAndTransition(event PowerEvent) error {
	if !event.valid() {
		return fmt.Errorf("%w: unrecognized power event %d", ErrInvalidArgument, event)
	}

	m.mu.Lock()
	if !m.initialized {
		m.mu.Unlock()
		return ErrUninitialized
	}
	out := m.evaluateLocked()
	cb := m.onTransition
	s := m.sinksLocked()
	m.mu.Unlock()

	return m.finish(s, out, event, "verify-and-transition", cb)
}

// Mode returns the last successfully-applied power mode.
// ModeUnknown means no transition has happened yet.
func (m *Manager) Mode() PowerMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastApplied
}

// HighPerformanceRequests returns the outstanding obligation count.
func (m *Manager) HighPerformanceRequests() int {
	return m.requests.Value()
}

// IsCommissioningInProgress reports whether a commissioning session is open.
func (m *Manager) IsCommissioningInProgress() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commissioning
}

// Initialized reports whether Init has completed successfully.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// evalOutcome captures one decide-compare-apply pass for logging and
// callbacks after the lock is released.
type evalOutcome struct {
	target        PowerMode
	previous      PowerMode
	requests      int
	commissioning bool
	provisioned   bool
	changed       bool          // hardware call attempted
	applied       bool          // hardware call succeeded
	elapsed       time.Duration // driver call duration
	err           error         // ErrInternal-wrapped driver failure
}

// maybeEvaluateLocked runs an evaluation when requested and initialized.
// Callers must hold m.mu.
func (m *Manager) maybeEvaluateLocked(evaluate bool) (evalOutcome, bool) {
	if !evaluate || !m.initialized {
		return evalOutcome{}, false
	}
	return m.evaluateLocked(), true
}

// evaluateLocked runs one decide-compare-apply pass. Callers must hold m.mu
// with m.initialized true. lastApplied is updated only when the driver call
// succeeds, so a failed transition is retried by the next equivalent event.
func (m *Manager) evaluateLocked() evalOutcome {
	out := evalOutcome{
		previous:      m.lastApplied,
		requests:      m.requests.Value(),
		commissioning: m.commissioning,
		provisioned:   m.provider.IsProvisioned(),
	}
	out.target = DecideMode(out.requests, out.commissioning, out.provisioned)
	if out.target == out.previous {
		return out
	}

	out.changed = true
	start := time.Now()
	err := m.applyLocked(out.target)
	out.elapsed = time.Since(start)
	if err != nil {
		out.err = fmt.Errorf("%w: apply %s: %w", ErrInternal, out.target, err)
		return out
	}

	m.lastApplied = out.target
	out.applied = true
	return out
}

// applyLocked dispatches the mode-specific driver call.
func (m *Manager) applyLocked(target PowerMode) error {
	switch target {
	case ModeHighPerformance:
		return m.driver.ApplyHighPerformance()
	case ModeDTIMBasedSleep:
		return m.driver.ApplyDTIMBasedSleep()
	case ModeDeepSleep:
		return m.driver.ApplyDeepSleep()
	default:
		return fmt.Errorf("%w: no transition for mode %d", ErrInvalidArgument, target)
	}
}

// finish logs and captures the outcome of one evaluation pass and fires the
// transition callback. Must be called without holding m.mu.
func (m *Manager) finish(s sinks, out evalOutcome, cause PowerEvent, op string, cb func(old, new PowerMode, cause PowerEvent)) error {
	s.emitDecision(out)

	if out.err != nil {
		if s.logger != nil {
			s.logger.Error("power transition failed",
				"target", out.target.String(),
				"cause", cause.String(),
				"error", out.err)
		}
		s.emitError(op, out.err)
		return out.err
	}

	if out.applied {
		if s.logger != nil {
			s.logger.Info("power mode applied",
				"from", modeLabel(out.previous),
				"to", out.target.String(),
				"cause", cause.String(),
				"elapsed", out.elapsed)
		}
		s.emitTransition(out, cause)
		if cb != nil {
			cb(out.previous, out.target, cause)
		}
		return nil
	}

	if s.logger != nil {
		s.logger.Debug("power mode unchanged",
			"mode", out.target.String(),
			"cause", cause.String())
	}
	return nil
}

// modeLabel stringifies a mode for capture, using empty for ModeUnknown so
// first-transition events carry no misleading "from" state.
func modeLabel(mode PowerMode) string {
	if mode == ModeUnknown {
		return ""
	}
	return mode.String()
}

// sinks snapshots the logging destinations under the manager lock so
// emission can happen after unlock.
type sinks struct {
	logger   *slog.Logger
	events   log.Logger
	traceID  string
	deviceID string
}

// sinksLocked captures the current sinks. Callers must hold m.mu.
func (m *Manager) sinksLocked() sinks {
	return sinks{
		logger:   m.logger,
		events:   m.eventLogger,
		traceID:  m.traceID,
		deviceID: m.deviceID,
	}
}

func (s sinks) newEvent(category log.Category) log.Event {
	return log.Event{
		Timestamp: time.Now(),
		TraceID:   s.traceID,
		DeviceID:  s.deviceID,
		Category:  category,
	}
}

func (s sinks) emitRequest(action log.RequestAction, withTransition bool, outstanding int, clamped bool) {
	if s.events == nil {
		return
	}
	e := s.newEvent(log.CategoryRequest)
	e.Request = &log.RequestEvent{
		Action:         action,
		WithTransition: withTransition,
		Outstanding:    outstanding,
		Clamped:        clamped,
	}
	s.events.Log(e)
}

func (s sinks) emitDecision(out evalOutcome) {
	if s.events == nil {
		return
	}
	e := s.newEvent(log.CategoryDecision)
	e.Decision = &log.DecisionEvent{
		Target:        out.target.String(),
		Previous:      modeLabel(out.previous),
		Requests:      out.requests,
		Commissioning: out.commissioning,
		Provisioned:   out.provisioned,
		Changed:       out.changed,
	}
	s.events.Log(e)
}

func (s sinks) emitTransition(out evalOutcome, cause PowerEvent) {
	if s.events == nil {
		return
	}
	e := s.newEvent(log.CategoryTransition)
	e.Transition = &log.TransitionEvent{
		From:    modeLabel(out.previous),
		To:      out.target.String(),
		Cause:   cause.String(),
		Elapsed: out.elapsed,
	}
	s.events.Log(e)
}

func (s sinks) emitState(entity log.StateEntity, oldState, newState, reason string) {
	if s.events == nil {
		return
	}
	e := s.newEvent(log.CategoryState)
	e.StateChange = &log.StateChangeEvent{
		Entity:   entity,
		OldState: oldState,
		NewState: newState,
		Reason:   reason,
	}
	s.events.Log(e)
}

func (s sinks) emitError(op string, err error) {
	if s.events == nil {
		return
	}
	e := s.newEvent(log.CategoryError)
	e.Error = &log.ErrorEventData{
		Op:      op,
		Message: err.Error(),
	}
	s.events.Log(e)
}
