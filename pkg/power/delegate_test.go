package power_test

import (
	"errors"
	"testing"

	"github.com/powersave-project/powersave-go/pkg/power"
	"github.com/powersave-project/powersave-go/pkg/power/mocks"
)

// TestDelegateCallContract pins down exactly which driver calls one
// request/release cycle produces: one transition into high performance,
// one back out, and nothing for evaluations that change nothing.
func TestDelegateCallContract(t *testing.T) {
	driver := mocks.NewMockDriver(t)
	provider := mocks.NewMockStateProvider(t)

	provider.EXPECT().IsProvisioned().Return(true)
	driver.EXPECT().ApplyDTIMBasedSleep().Return(nil).Times(2)
	driver.EXPECT().ApplyHighPerformance().Return(nil).Once()

	mgr := power.NewManager()
	if err := mgr.Init(driver, provider); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if err := mgr.RequestHighPerformanceWithTransition(); err != nil {
		t.Fatalf("request error = %v", err)
	}
	// A second request changes nothing at the hardware.
	if err := mgr.RequestHighPerformanceWithTransition(); err != nil {
		t.Fatalf("second request error = %v", err)
	}
	if err := mgr.ReleaseHighPerformanceRequest(); err != nil {
		t.Fatalf("first release error = %v", err)
	}
	if err := mgr.ReleaseHighPerformanceRequest(); err != nil {
		t.Fatalf("second release error = %v", err)
	}
	// Redundant evaluation: no further driver calls.
	if err := mgr.VerifyAndTransition(power.EventGeneric); err != nil {
		t.Fatalf("VerifyAndTransition() error = %v", err)
	}
}

// TestDelegateFailureThenRecovery drives the manager through a failing
// hardware call and verifies the retry reaches the driver again.
func TestDelegateFailureThenRecovery(t *testing.T) {
	driver := mocks.NewMockDriver(t)
	provider := mocks.NewMockStateProvider(t)

	radioErr := errors.New("radio busy")
	provider.EXPECT().IsProvisioned().Return(false)
	driver.EXPECT().ApplyDeepSleep().Return(radioErr).Once()
	driver.EXPECT().ApplyDeepSleep().Return(nil).Once()

	mgr := power.NewManager()
	if err := mgr.Init(driver, provider); !errors.Is(err, power.ErrInternal) {
		t.Fatalf("Init() error = %v, want ErrInternal", err)
	}
	if err := mgr.VerifyAndTransition(power.EventConnectivityChange); err != nil {
		t.Fatalf("retry error = %v", err)
	}
	if mgr.Mode() != power.ModeDeepSleep {
		t.Errorf("Mode() = %v, want ModeDeepSleep", mgr.Mode())
	}
}

// TestDelegateProviderConsultedPerEvaluation verifies the provisioning
// source is re-read on every evaluation rather than cached.
func TestDelegateProviderConsultedPerEvaluation(t *testing.T) {
	driver := mocks.NewMockDriver(t)
	provider := mocks.NewMockStateProvider(t)

	// Unprovisioned at Init, provisioned afterwards.
	provider.EXPECT().IsProvisioned().Return(false).Once()
	provider.EXPECT().IsProvisioned().Return(true).Once()
	driver.EXPECT().ApplyDeepSleep().Return(nil).Once()
	driver.EXPECT().ApplyDTIMBasedSleep().Return(nil).Once()

	mgr := power.NewManager()
	if err := mgr.Init(driver, provider); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if mgr.Mode() != power.ModeDeepSleep {
		t.Fatalf("Mode() = %v, want ModeDeepSleep", mgr.Mode())
	}
	if err := mgr.VerifyAndTransition(power.EventConnectivityChange); err != nil {
		t.Fatalf("VerifyAndTransition() error = %v", err)
	}
	if mgr.Mode() != power.ModeDTIMBasedSleep {
		t.Errorf("Mode() = %v, want ModeDTIMBasedSleep", mgr.Mode())
	}
}
