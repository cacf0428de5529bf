package commissioning

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Window timeout bounds.
const (
	// DefaultWindowTimeout is the default commissioning window timeout.
	DefaultWindowTimeout = 120 * time.Second

	// MinWindowTimeout is the minimum allowed window timeout.
	MinWindowTimeout = 30 * time.Second

	// MaxWindowTimeout is the maximum allowed window timeout.
	MaxWindowTimeout = 900 * time.Second
)

// WindowState represents the state of the commissioning window.
type WindowState uint8

const (
	// WindowClosed indicates the device is not accepting commissioning.
	WindowClosed WindowState = iota

	// WindowOpen indicates the device is accepting commissioning attempts.
	WindowOpen

	// WindowSessionActive indicates a commissioner session is in progress.
	WindowSessionActive
)

// String returns a human-readable state name.
func (s WindowState) String() string {
	switch s {
	case WindowClosed:
		return "CLOSED"
	case WindowOpen:
		return "OPEN"
	case WindowSessionActive:
		return "SESSION_ACTIVE"
	default:
		return "UNKNOWN"
	}
}

// Window errors.
var (
	ErrWindowClosed    = errors.New("commissioning window is closed")
	ErrSessionActive   = errors.New("commissioning session already in progress")
	ErrNoActiveSession = errors.New("no commissioning session in progress")
	ErrSessionMismatch = errors.New("session ID does not match")
	ErrInvalidTimeout  = errors.New("invalid timeout value")
)

// OpenTrigger indicates how the window was opened.
type OpenTrigger uint8

const (
	// TriggerButton indicates a physical button press.
	TriggerButton OpenTrigger = iota

	// TriggerCommand indicates a remote command.
	TriggerCommand

	// TriggerStartup indicates an automatic open on unprovisioned boot.
	TriggerStartup
)

// String returns a human-readable trigger name.
func (t OpenTrigger) String() string {
	switch t {
	case TriggerButton:
		return "BUTTON"
	case TriggerCommand:
		return "COMMAND"
	case TriggerStartup:
		return "STARTUP"
	default:
		return "UNKNOWN"
	}
}

// CloseReason indicates why the window closed.
type CloseReason uint8

const (
	// CloseReasonManual indicates an explicit Close call.
	CloseReasonManual CloseReason = iota

	// CloseReasonTimeout indicates the auto-close timer expired.
	CloseReasonTimeout

	// CloseReasonCommissioned indicates a session completed successfully.
	CloseReasonCommissioned
)

// String returns a human-readable reason name.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonManual:
		return "MANUAL"
	case CloseReasonTimeout:
		return "TIMEOUT"
	case CloseReasonCommissioned:
		return "COMMISSIONED"
	default:
		return "UNKNOWN"
	}
}

// Window manages the commissioning window state machine.
// All callbacks run outside the window lock, so they may call back into the
// window or drive a power manager directly.
type Window struct {
	mu sync.RWMutex

	state     WindowState
	timeout   time.Duration
	timer     *time.Timer
	openedAt  time.Time
	trigger   OpenTrigger
	sessionID string

	onStateChange  func(old, new WindowState)
	onOpened       func(trigger OpenTrigger)
	onClosed       func(reason CloseReason)
	onCommissioned func(sessionID string)
}

// NewWindow creates a closed commissioning window with the default timeout.
func NewWindow() *Window {
	return &Window{
		state:   WindowClosed,
		timeout: DefaultWindowTimeout,
	}
}

// State returns the current window state.
func (w *Window) State() WindowState {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state
}

// IsOpen returns true if the window is accepting commissioning attempts.
func (w *Window) IsOpen() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state == WindowOpen
}

// IsSessionActive returns true if a commissioner session is in progress.
func (w *Window) IsSessionActive() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state == WindowSessionActive
}

// IsClosed returns true if the window is closed.
func (w *Window) IsClosed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state == WindowClosed
}

// Trigger returns how the current window was opened. Only meaningful while
// the window is not closed.
func (w *Window) Trigger() OpenTrigger {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.trigger
}

// SessionID returns the active session ID, or empty if none.
func (w *Window) SessionID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sessionID
}

// RemainingTime returns the time until the window auto-closes.
// Returns 0 if the window is closed.
func (w *Window) RemainingTime() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.remainingLocked()
}

func (w *Window) remainingLocked() time.Duration {
	if w.state == WindowClosed {
		return 0
	}
	remaining := w.timeout - time.Since(w.openedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetTimeout sets the window timeout. Takes effect on the next Open.
func (w *Window) SetTimeout(d time.Duration) error {
	if d < MinWindowTimeout || d > MaxWindowTimeout {
		return ErrInvalidTimeout
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.timeout = d
	return nil
}

// Timeout returns the current timeout setting.
func (w *Window) Timeout() time.Duration {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.timeout
}

// OnStateChange sets a callback fired on every state transition.
func (w *Window) OnStateChange(fn func(old, new WindowState)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onStateChange = fn
}

// OnOpened sets a callback fired when the window opens from closed.
// Re-opening an already-open window does not fire it.
func (w *Window) OnOpened(fn func(trigger OpenTrigger)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onOpened = fn
}

// OnClosed sets a callback fired exactly once per open window, whether it
// closes by timeout, by command, or by successful commissioning.
func (w *Window) OnClosed(fn func(reason CloseReason)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClosed = fn
}

// OnCommissioned sets a callback fired when a session completes
// successfully, before the closed callback for the same window.
func (w *Window) OnCommissioned(fn func(sessionID string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCommissioned = fn
}

// Open opens the commissioning window and starts the auto-close timer.
// Opening an already-open window restarts the timer instead.
func (w *Window) Open(trigger OpenTrigger) error {
	w.mu.Lock()
	if w.state != WindowClosed {
		w.restartTimerLocked()
		w.mu.Unlock()
		return nil
	}

	old := w.state
	w.state = WindowOpen
	w.trigger = trigger
	w.sessionID = ""
	w.restartTimerLocked()

	stateFn := w.onStateChange
	openedFn := w.onOpened
	w.mu.Unlock()

	if stateFn != nil {
		stateFn(old, WindowOpen)
	}
	if openedFn != nil {
		openedFn(trigger)
	}
	return nil
}

// Close closes the window. No-op if already closed.
func (w *Window) Close() {
	w.mu.Lock()
	if w.state == WindowClosed {
		w.mu.Unlock()
		return
	}
	old := w.state
	closedFn, stateFn := w.closeLocked()
	w.mu.Unlock()

	if stateFn != nil {
		stateFn(old, WindowClosed)
	}
	if closedFn != nil {
		closedFn(CloseReasonManual)
	}
}

// BeginSession transitions to SESSION_ACTIVE and returns the session ID.
// Returns ErrWindowClosed if the window is closed and ErrSessionActive if
// another session is already in progress.
func (w *Window) BeginSession() (string, error) {
	w.mu.Lock()
	switch w.state {
	case WindowClosed:
		w.mu.Unlock()
		return "", ErrWindowClosed
	case WindowSessionActive:
		w.mu.Unlock()
		return "", ErrSessionActive
	}

	old := w.state
	w.state = WindowSessionActive
	w.sessionID = uuid.NewString()
	id := w.sessionID
	stateFn := w.onStateChange
	w.mu.Unlock()

	if stateFn != nil {
		stateFn(old, WindowSessionActive)
	}
	return id, nil
}

// EndSession ends the active session. On success the window closes
// (commissioning complete); on failure it returns to OPEN unless the timer
// has already run out, in which case it closes.
func (w *Window) EndSession(sessionID string, success bool) error {
	w.mu.Lock()
	if w.state != WindowSessionActive {
		w.mu.Unlock()
		return ErrNoActiveSession
	}
	if w.sessionID != sessionID {
		w.mu.Unlock()
		return ErrSessionMismatch
	}

	old := w.state
	var (
		closedFn       func(CloseReason)
		commissionedFn func(string)
		reason         CloseReason
		newState       WindowState
	)

	switch {
	case success:
		commissionedFn = w.onCommissioned
		closedFn, _ = w.closeLocked()
		reason = CloseReasonCommissioned
		newState = WindowClosed
	case w.remainingLocked() > 0:
		w.state = WindowOpen
		w.sessionID = ""
		newState = WindowOpen
	default:
		closedFn, _ = w.closeLocked()
		reason = CloseReasonTimeout
		newState = WindowClosed
	}
	stateFn := w.onStateChange
	w.mu.Unlock()

	if stateFn != nil {
		stateFn(old, newState)
	}
	if commissionedFn != nil {
		commissionedFn(sessionID)
	}
	if closedFn != nil {
		closedFn(reason)
	}
	return nil
}

// closeLocked moves the window to CLOSED, stops the timer, and returns the
// callbacks for the caller to fire after unlock. Callers must hold w.mu
// with the window not already closed.
func (w *Window) closeLocked() (closedFn func(CloseReason), stateFn func(old, new WindowState)) {
	w.state = WindowClosed
	w.sessionID = ""
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	return w.onClosed, w.onStateChange
}

// restartTimerLocked (re)arms the auto-close timer. Callers must hold w.mu.
func (w *Window) restartTimerLocked() {
	if w.timer != nil {
		w.timer.Stop()
	}
	w.openedAt = time.Now()
	w.timer = time.AfterFunc(w.timeout, w.handleTimeout)
}

// handleTimeout closes the window when the auto-close timer expires. A
// window that already closed by another path is left alone.
func (w *Window) handleTimeout() {
	w.mu.Lock()
	if w.state == WindowClosed {
		w.mu.Unlock()
		return
	}
	old := w.state
	closedFn, stateFn := w.closeLocked()
	w.mu.Unlock()

	if stateFn != nil {
		stateFn(old, WindowClosed)
	}
	if closedFn != nil {
		closedFn(CloseReasonTimeout)
	}
}
