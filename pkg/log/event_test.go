package log

import "testing"

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{CategoryRequest, "REQUEST"},
		{CategoryDecision, "DECISION"},
		{CategoryTransition, "TRANSITION"},
		{CategoryState, "STATE"},
		{CategoryError, "ERROR"},
		{Category(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestRequestActionString(t *testing.T) {
	tests := []struct {
		action RequestAction
		want   string
	}{
		{ActionAcquire, "ACQUIRE"},
		{ActionRelease, "RELEASE"},
		{RequestAction(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("RequestAction(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}

func TestStateEntityString(t *testing.T) {
	tests := []struct {
		entity StateEntity
		want   string
	}{
		{StateEntityCommissioning, "COMMISSIONING"},
		{StateEntityConnectivity, "CONNECTIVITY"},
		{StateEntityProvisioning, "PROVISIONING"},
		{StateEntityAdvertising, "ADVERTISING"},
		{StateEntity(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.entity.String(); got != tt.want {
			t.Errorf("StateEntity(%d).String() = %q, want %q", tt.entity, got, tt.want)
		}
	}
}
