package power

import "testing"

func TestDecideModePriority(t *testing.T) {
	tests := []struct {
		name          string
		requests      int
		commissioning bool
		provisioned   bool
		want          PowerMode
	}{
		{"RequestsDominateAll", 1, true, true, ModeHighPerformance},
		{"RequestsDominateUnprovisioned", 1, false, false, ModeHighPerformance},
		{"RequestsDominateCommissioning", 3, true, false, ModeHighPerformance},
		{"RequestsAlone", 5, false, true, ModeHighPerformance},
		{"CommissioningUnprovisioned", 0, true, false, ModeDTIMBasedSleep},
		{"CommissioningProvisioned", 0, true, true, ModeDTIMBasedSleep},
		{"UnprovisionedIdle", 0, false, false, ModeDeepSleep},
		{"ProvisionedIdle", 0, false, true, ModeDTIMBasedSleep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecideMode(tt.requests, tt.commissioning, tt.provisioned)
			if got != tt.want {
				t.Errorf("DecideMode(%d, %v, %v) = %v, want %v",
					tt.requests, tt.commissioning, tt.provisioned, got, tt.want)
			}
		})
	}
}

func TestDecideModeIsPure(t *testing.T) {
	// Same inputs must always produce the same output.
	for i := 0; i < 3; i++ {
		if got := DecideMode(0, false, true); got != ModeDTIMBasedSleep {
			t.Fatalf("DecideMode(0, false, true) = %v on call %d, want ModeDTIMBasedSleep", got, i+1)
		}
	}
}
