package advertise_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/powersave-project/powersave-go/pkg/advertise"
	"github.com/powersave-project/powersave-go/pkg/advertise/mocks"
	"github.com/powersave-project/powersave-go/pkg/power"
)

// TestPublisherStartAdvertisesWhenReachable verifies that starting the
// publisher in a reachable power mode registers the service immediately.
func TestPublisherStartAdvertisesWhenReachable(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeDTIMBasedSleep,
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !p.IsAdvertising() {
		t.Error("expected publisher to be advertising after Start")
	}

	info := p.Info()
	if info.Intervals.Idle != advertise.DefaultIdleInterval {
		t.Errorf("Idle = %v, want %v", info.Intervals.Idle, advertise.DefaultIdleInterval)
	}
	if info.Intervals.Active != advertise.DefaultActiveInterval {
		t.Errorf("Active = %v, want %v", info.Intervals.Active, advertise.DefaultActiveInterval)
	}
}

// TestPublisherStartDefersUntilReachable verifies that starting before any
// power mode has been applied defers registration until the device enters a
// reachable mode.
func TestPublisherStartDefersUntilReachable(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeUnknown,
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if p.IsAdvertising() {
		t.Fatal("publisher should not advertise while mode is unknown")
	}

	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()

	if err := p.HandleModeChange(power.ModeDTIMBasedSleep); err != nil {
		t.Fatalf("HandleModeChange failed: %v", err)
	}
	if !p.IsAdvertising() {
		t.Error("expected publisher to advertise after entering a reachable mode")
	}
}

// TestPublisherUpdatesPacingOnModeChange verifies that a change between
// reachable modes republishes TXT records in place instead of re-registering.
func TestPublisherUpdatesPacingOnModeChange(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()

	var updated advertise.ServiceInfo
	advertiser.EXPECT().Update(mock.Anything).Run(func(info *advertise.ServiceInfo) {
		updated = *info
	}).Return(nil).Once()

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeDTIMBasedSleep,
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := p.HandleModeChange(power.ModeHighPerformance); err != nil {
		t.Fatalf("HandleModeChange failed: %v", err)
	}

	if updated.Mode != power.ModeHighPerformance {
		t.Errorf("updated mode = %v, want %v", updated.Mode, power.ModeHighPerformance)
	}
	if updated.Intervals.Idle != advertise.DefaultIdleInterval {
		t.Errorf("updated Idle = %v, want %v", updated.Intervals.Idle, advertise.DefaultIdleInterval)
	}
	if !p.IsAdvertising() {
		t.Error("publisher should still be advertising after an in-place update")
	}
}

// TestPublisherWithdrawsInDeepSleep verifies that entering deep sleep stops
// the advertisement and that leaving it registers the service again.
func TestPublisherWithdrawsInDeepSleep(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Times(2)
	advertiser.EXPECT().Stop().Return(nil).Once()

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeHighPerformance,
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if err := p.HandleModeChange(power.ModeDeepSleep); err != nil {
		t.Fatalf("HandleModeChange to deep sleep failed: %v", err)
	}
	if p.IsAdvertising() {
		t.Fatal("publisher should not advertise in deep sleep")
	}

	// Staying in deep sleep must not stop the advertiser a second time.
	if err := p.HandleModeChange(power.ModeDeepSleep); err != nil {
		t.Fatalf("repeated deep sleep change failed: %v", err)
	}

	if err := p.HandleModeChange(power.ModeDTIMBasedSleep); err != nil {
		t.Fatalf("HandleModeChange out of deep sleep failed: %v", err)
	}
	if !p.IsAdvertising() {
		t.Error("expected publisher to re-register after leaving deep sleep")
	}
}

// TestPublisherDTIMWakeStretchesIdle verifies that a wake cadence longer
// than the default idle interval stretches the advertised pacing.
func TestPublisherDTIMWakeStretchesIdle(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)

	var registered advertise.ServiceInfo
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Run(func(ctx context.Context, info *advertise.ServiceInfo) {
		registered = *info
	}).Return(nil).Once()

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeDTIMBasedSleep,
	})
	p.SetWakeSource(func() time.Duration { return 900 * time.Millisecond })

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if registered.Intervals.Idle != 900*time.Millisecond {
		t.Errorf("registered Idle = %v, want 900ms", registered.Intervals.Idle)
	}
	if registered.Intervals.Active != advertise.DefaultActiveInterval {
		t.Errorf("registered Active = %v, want %v", registered.Intervals.Active, advertise.DefaultActiveInterval)
	}
}

// TestPublisherStartErrorIsRetryable verifies that a failed registration
// leaves the publisher stopped so Start can be retried.
func TestPublisherStartErrorIsRetryable(t *testing.T) {
	registerErr := errors.New("interface down")

	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(registerErr).Once()

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeHighPerformance,
	})

	if err := p.Start(context.Background()); !errors.Is(err, registerErr) {
		t.Fatalf("Start error = %v, want %v", err, registerErr)
	}
	if p.IsAdvertising() {
		t.Fatal("publisher must not report advertising after a failed registration")
	}

	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("retried Start failed: %v", err)
	}
	if !p.IsAdvertising() {
		t.Error("expected publisher to advertise after successful retry")
	}
}

// TestPublisherStop verifies that Stop withdraws the advertisement exactly
// once and that further calls are no-ops.
func TestPublisherStop(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)
	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()
	advertiser.EXPECT().Stop().Return(nil).Once()

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeDTIMBasedSleep,
	})

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := p.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if p.IsAdvertising() {
		t.Error("publisher should not advertise after Stop")
	}

	if err := p.Stop(); err != nil {
		t.Fatalf("second Stop failed: %v", err)
	}
}

// TestPublisherStopBeforeStart verifies that stopping a publisher that never
// started touches no advertiser state.
func TestPublisherStopBeforeStart(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{DeviceID: "device-1"})

	if err := p.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

// TestPublisherModeChangeBeforeStart verifies that mode changes before Start
// only update the tracked state; the first registration happens at Start.
func TestPublisherModeChangeBeforeStart(t *testing.T) {
	advertiser := mocks.NewMockAdvertiser(t)

	p := advertise.NewPublisher(advertiser, advertise.ServiceInfo{
		DeviceID: "device-1",
		Mode:     power.ModeUnknown,
	})

	if err := p.HandleModeChange(power.ModeDTIMBasedSleep); err != nil {
		t.Fatalf("HandleModeChange failed: %v", err)
	}

	advertiser.EXPECT().Advertise(mock.Anything, mock.Anything).Return(nil).Once()

	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !p.IsAdvertising() {
		t.Error("expected publisher to advertise the mode tracked before Start")
	}
	if got := p.Info().Mode; got != power.ModeDTIMBasedSleep {
		t.Errorf("Info().Mode = %v, want %v", got, power.ModeDTIMBasedSleep)
	}
}
