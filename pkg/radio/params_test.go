package radio

import (
	"testing"
	"time"

	"github.com/powersave-project/powersave-go/pkg/power"
)

func TestParamsWakeInterval(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   time.Duration
	}{
		{
			"EveryBeacon",
			Params{ListenInterval: 1, BeaconInterval: 100 * time.Millisecond},
			100 * time.Millisecond,
		},
		{
			"DTIMAligned",
			Params{ListenInterval: 3, BeaconInterval: 100 * time.Millisecond},
			300 * time.Millisecond,
		},
		{
			"ReceiverParked",
			Params{ListenInterval: 0, BeaconInterval: 100 * time.Millisecond},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.WakeInterval(); got != tt.want {
				t.Errorf("WakeInterval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParamsDutyCycle(t *testing.T) {
	tests := []struct {
		name   string
		listen uint16
		want   float64
	}{
		{"EveryBeacon", 1, 1.0},
		{"EveryTenth", 10, 0.1},
		{"Parked", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{ListenInterval: tt.listen}
			if got := p.DutyCycle(); got != tt.want {
				t.Errorf("DutyCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParamsZeroValue(t *testing.T) {
	var p Params
	if p.Mode != power.ModeUnknown {
		t.Errorf("zero Params.Mode = %v, want ModeUnknown", p.Mode)
	}
	if p.WakeInterval() != 0 {
		t.Errorf("zero Params.WakeInterval() = %v, want 0", p.WakeInterval())
	}
}
