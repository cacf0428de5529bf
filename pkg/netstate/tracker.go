package netstate

import (
	"sync"

	"github.com/powersave-project/powersave-go/pkg/power"
)

// Entity names a tracked network fact.
type Entity uint8

const (
	// EntityProvisioning tracks whether the device holds network credentials.
	EntityProvisioning Entity = 0
	// EntityConnectivity tracks whether the device has an active connection.
	EntityConnectivity Entity = 1
)

// String returns the entity name.
func (e Entity) String() string {
	switch e {
	case EntityProvisioning:
		return "PROVISIONING"
	case EntityConnectivity:
		return "CONNECTIVITY"
	default:
		return "UNKNOWN"
	}
}

// Change describes one observed network state edge.
type Change struct {
	// Entity names what changed.
	Entity Entity

	// Old and New are the values before and after the edge.
	Old bool
	New bool
}

// Tracker holds the device's observed network state. The zero value is an
// unprovisioned, disconnected tracker ready for use. All methods are safe
// for concurrent use.
type Tracker struct {
	mu sync.RWMutex

	provisioned bool
	connected   bool

	onChange func(Change)
}

var _ power.StateProvider = (*Tracker)(nil)

// NewTracker creates an unprovisioned, disconnected tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnChange sets a callback fired on every state edge. The callback runs
// outside the tracker lock.
func (t *Tracker) OnChange(fn func(Change)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// SetProvisioned records whether the device holds network credentials.
// Only actual edges fire the change callback.
func (t *Tracker) SetProvisioned(provisioned bool) {
	t.set(EntityProvisioning, provisioned)
}

// SetConnected records whether the device has an active connection.
// Only actual edges fire the change callback.
func (t *Tracker) SetConnected(connected bool) {
	t.set(EntityConnectivity, connected)
}

func (t *Tracker) set(entity Entity, value bool) {
	t.mu.Lock()
	var old bool
	switch entity {
	case EntityProvisioning:
		old = t.provisioned
		t.provisioned = value
	case EntityConnectivity:
		old = t.connected
		t.connected = value
	}
	fn := t.onChange
	t.mu.Unlock()

	if old == value || fn == nil {
		return
	}
	fn(Change{Entity: entity, Old: old, New: value})
}

// IsProvisioned reports whether the device holds network credentials.
func (t *Tracker) IsProvisioned() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.provisioned
}

// IsConnected reports whether the device has an active connection.
func (t *Tracker) IsConnected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.connected
}
