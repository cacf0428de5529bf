package advertise

import (
	"context"
	"time"

	"github.com/powersave-project/powersave-go/pkg/power"
)

// ServiceInfo describes the advertised service.
type ServiceInfo struct {
	// InstanceName is the mDNS instance name.
	// Empty defaults to "powersave-<DeviceID>".
	InstanceName string

	// DeviceID identifies the device in TXT records.
	DeviceID string

	// Port is the service port. Zero defaults to DefaultPort.
	Port uint16

	// Mode is the device's current power mode.
	Mode power.PowerMode

	// Intervals is the advertised reachability pacing.
	Intervals Intervals
}

// instanceName returns the effective mDNS instance name.
func (i *ServiceInfo) instanceName() string {
	if i.InstanceName != "" {
		return i.InstanceName
	}
	return "powersave-" + i.DeviceID
}

// port returns the effective service port.
func (i *ServiceInfo) port() int {
	if i.Port == 0 {
		return DefaultPort
	}
	return int(i.Port)
}

// Advertiser publishes the device's reachability pacing over mDNS.
type Advertiser interface {
	// Advertise starts advertising the service. A second call replaces the
	// previous registration.
	Advertise(ctx context.Context, info *ServiceInfo) error

	// Update republishes TXT records after a pacing change.
	// Returns ErrNotAdvertising if the service is not registered.
	Update(info *ServiceInfo) error

	// Stop withdraws the advertisement.
	Stop() error
}

// AdvertiserConfig configures advertiser behavior.
type AdvertiserConfig struct {
	// Interface specifies which network interface to use.
	// Empty string means all interfaces.
	Interface string

	// TTL is the DNS record TTL.
	// Default: 120 seconds.
	TTL time.Duration
}

// DefaultAdvertiserConfig returns the default advertiser configuration.
func DefaultAdvertiserConfig() AdvertiserConfig {
	return AdvertiserConfig{
		Interface: "",
		TTL:       120 * time.Second,
	}
}
