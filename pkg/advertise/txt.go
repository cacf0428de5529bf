package advertise

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/powersave-project/powersave-go/pkg/power"
)

// mDNS service constants.
const (
	// ServiceType is the service type for power-managed devices.
	ServiceType = "_powersave._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default service port.
	DefaultPort = 5540

	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63
)

// TXT record keys.
const (
	// TXTKeySleepyIdle is the idle interval in milliseconds: the longest a
	// controller should wait for a sleeping device to check in.
	TXTKeySleepyIdle = "sii"

	// TXTKeySleepyActive is the active interval in milliseconds: the
	// expected response time once an exchange is running.
	TXTKeySleepyActive = "sai"

	// TXTKeyPowerMode is the device's current power mode name.
	TXTKeyPowerMode = "pm"

	// TXTKeyDeviceID is the optional device identifier.
	TXTKeyDeviceID = "id"
)

// Advertising errors.
var (
	ErrMissingRequired     = errors.New("missing required TXT record")
	ErrInvalidTXTRecord    = errors.New("invalid TXT record")
	ErrInstanceNameTooLong = errors.New("instance name exceeds DNS label limit")
	ErrNotAdvertising      = errors.New("service is not being advertised")
)

// Pacing defaults.
const (
	// DefaultIdleInterval is the idle pacing for a device that wakes at
	// least every 500ms.
	DefaultIdleInterval = 500 * time.Millisecond

	// DefaultActiveInterval is the expected response time while awake.
	DefaultActiveInterval = 300 * time.Millisecond

	// DeepSleepIdleInterval is advertised in deep sleep, where the device
	// wakes rarely if at all.
	DeepSleepIdleInterval = time.Hour
)

// Intervals describes the retry pacing a sleepy device advertises.
type Intervals struct {
	// Idle is the longest a controller should wait for the device to wake.
	Idle time.Duration

	// Active is the expected response time during an active exchange.
	Active time.Duration
}

// IntervalsForMode returns the pacing to advertise for a power mode. wake
// is the radio's wake cadence (beacon period times listen interval); pass 0
// when unknown. DTIM-based sleep stretches the idle interval to the wake
// cadence when that exceeds the default.
func IntervalsForMode(mode power.PowerMode, wake time.Duration) Intervals {
	switch mode {
	case power.ModeDeepSleep:
		return Intervals{Idle: DeepSleepIdleInterval, Active: DefaultActiveInterval}
	case power.ModeDTIMBasedSleep:
		idle := DefaultIdleInterval
		if wake > idle {
			idle = wake
		}
		return Intervals{Idle: idle, Active: DefaultActiveInterval}
	default:
		return Intervals{Idle: DefaultIdleInterval, Active: DefaultActiveInterval}
	}
}

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// SleepInfo is the decoded reachability pacing of a remote device.
type SleepInfo struct {
	// Intervals is the advertised pacing.
	Intervals Intervals

	// Mode is the advertised power mode name, if present.
	Mode string

	// DeviceID is the advertised device identifier, if present.
	DeviceID string
}

// EncodeSleepTXT creates TXT records for the given service info.
func EncodeSleepTXT(info *ServiceInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	txt[TXTKeySleepyIdle] = strconv.FormatInt(info.Intervals.Idle.Milliseconds(), 10)
	txt[TXTKeySleepyActive] = strconv.FormatInt(info.Intervals.Active.Milliseconds(), 10)
	txt[TXTKeyPowerMode] = info.Mode.String()

	if info.DeviceID != "" {
		txt[TXTKeyDeviceID] = info.DeviceID
	}

	return txt
}

// DecodeSleepTXT parses reachability pacing from TXT records.
func DecodeSleepTXT(txt TXTRecordMap) (*SleepInfo, error) {
	info := &SleepInfo{}

	// Parse idle interval (required)
	idleStr, ok := txt[TXTKeySleepyIdle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeySleepyIdle)
	}
	idle, err := strconv.ParseInt(idleStr, 10, 64)
	if err != nil || idle < 0 {
		return nil, fmt.Errorf("%w: invalid %s value %q", ErrInvalidTXTRecord, TXTKeySleepyIdle, idleStr)
	}
	info.Intervals.Idle = time.Duration(idle) * time.Millisecond

	// Parse active interval (required)
	activeStr, ok := txt[TXTKeySleepyActive]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeySleepyActive)
	}
	active, err := strconv.ParseInt(activeStr, 10, 64)
	if err != nil || active < 0 {
		return nil, fmt.Errorf("%w: invalid %s value %q", ErrInvalidTXTRecord, TXTKeySleepyActive, activeStr)
	}
	info.Intervals.Active = time.Duration(active) * time.Millisecond

	// Optional fields
	info.Mode = txt[TXTKeyPowerMode]
	info.DeviceID = txt[TXTKeyDeviceID]

	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to "key=value" strings, the
// format mDNS libraries expect.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}

// StringsToTXTRecords parses "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			txt[parts[0]] = ""
		}
	}
	return txt
}

// ValidateInstanceName checks if an instance name is valid for mDNS.
func ValidateInstanceName(name string) error {
	if name == "" || len(name) > MaxInstanceNameLen {
		return ErrInstanceNameTooLong
	}
	return nil
}
