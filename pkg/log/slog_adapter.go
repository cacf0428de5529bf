package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes power events to an slog.Logger.
// Useful for development when you want to see arbitration activity in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("trace_id", event.TraceID),
		slog.String("category", event.Category.String()),
	}

	// Add optional identifiers
	if event.DeviceID != "" {
		attrs = append(attrs, slog.String("device_id", event.DeviceID))
	}

	// Add type-specific attributes
	switch {
	case event.Request != nil:
		attrs = append(attrs,
			slog.String("action", event.Request.Action.String()),
			slog.Int("outstanding", event.Request.Outstanding),
		)
		if event.Request.WithTransition {
			attrs = append(attrs, slog.Bool("with_transition", true))
		}
		if event.Request.Clamped {
			attrs = append(attrs, slog.Bool("clamped", true))
		}
	case event.Decision != nil:
		attrs = append(attrs,
			slog.String("target", event.Decision.Target),
			slog.Int("requests", event.Decision.Requests),
			slog.Bool("commissioning", event.Decision.Commissioning),
			slog.Bool("provisioned", event.Decision.Provisioned),
			slog.Bool("changed", event.Decision.Changed),
		)
		if event.Decision.Previous != "" {
			attrs = append(attrs, slog.String("previous", event.Decision.Previous))
		}
	case event.Transition != nil:
		attrs = append(attrs,
			slog.String("from", event.Transition.From),
			slog.String("to", event.Transition.To),
			slog.String("cause", event.Transition.Cause),
			slog.Duration("elapsed", event.Transition.Elapsed),
		)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("op", event.Error.Op),
			slog.String("error_msg", event.Error.Message),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "power", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
