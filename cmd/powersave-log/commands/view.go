// Package commands implements the powersave-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/powersave-project/powersave-go/pkg/log"
)

// ViewFilter specifies criteria for selecting events in the view command.
// Zero values match everything.
type ViewFilter struct {
	Category *log.Category
	Entity   *log.StateEntity
	TraceID  string // prefix match
	DeviceID string
}

// RunView reads the log file at path and writes a human-readable rendering
// of every matching event to w.
func RunView(path string, filter ViewFilter, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}

		if !matchesViewFilter(event, filter) {
			continue
		}

		formatEvent(w, event)
	}

	return nil
}

// filterEvents returns the subset of events matching the filter.
func filterEvents(events []log.Event, filter ViewFilter) []log.Event {
	var matched []log.Event
	for _, event := range events {
		if matchesViewFilter(event, filter) {
			matched = append(matched, event)
		}
	}
	return matched
}

func matchesViewFilter(event log.Event, filter ViewFilter) bool {
	if filter.Category != nil && event.Category != *filter.Category {
		return false
	}
	if filter.Entity != nil {
		if event.StateChange == nil || event.StateChange.Entity != *filter.Entity {
			return false
		}
	}
	if filter.TraceID != "" && !strings.HasPrefix(event.TraceID, filter.TraceID) {
		return false
	}
	if filter.DeviceID != "" && event.DeviceID != filter.DeviceID {
		return false
	}
	return true
}

// formatEvent writes one event as a header line followed by indented
// detail lines and a trailing blank line.
func formatEvent(w io.Writer, event log.Event) {
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	trace := shortenTraceID(event.TraceID)

	var typeLabel string
	switch {
	case event.Request != nil:
		typeLabel = event.Request.Action.String()
	case event.Decision != nil:
		typeLabel = event.Decision.Target
	case event.Transition != nil:
		typeLabel = event.Transition.To
	case event.StateChange != nil:
		typeLabel = event.StateChange.Entity.String()
	case event.Error != nil:
		typeLabel = event.Error.Op
	default:
		typeLabel = "UNKNOWN"
	}

	if event.DeviceID != "" {
		fmt.Fprintf(w, "%s [trace:%s] %-10s %s (%s)\n", ts, trace, event.Category, typeLabel, event.DeviceID)
	} else {
		fmt.Fprintf(w, "%s [trace:%s] %-10s %s\n", ts, trace, event.Category, typeLabel)
	}

	switch {
	case event.Request != nil:
		formatRequestDetails(w, event.Request)
	case event.Decision != nil:
		formatDecisionDetails(w, event.Decision)
	case event.Transition != nil:
		formatTransitionDetails(w, event.Transition)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

func formatRequestDetails(w io.Writer, req *log.RequestEvent) {
	if req.Clamped {
		fmt.Fprintf(w, "  Release ignored: no outstanding requests\n")
		return
	}
	if req.Action == log.ActionAcquire && req.WithTransition {
		fmt.Fprintf(w, "  Outstanding: %d (immediate transition)\n", req.Outstanding)
		return
	}
	fmt.Fprintf(w, "  Outstanding: %d\n", req.Outstanding)
}

func formatDecisionDetails(w io.Writer, dec *log.DecisionEvent) {
	if dec.Previous != "" {
		fmt.Fprintf(w, "  %s -> %s\n", dec.Previous, dec.Target)
	} else {
		fmt.Fprintf(w, "  -> %s\n", dec.Target)
	}
	fmt.Fprintf(w, "  Inputs: requests=%d commissioning=%v provisioned=%v\n",
		dec.Requests, dec.Commissioning, dec.Provisioned)
	if !dec.Changed {
		fmt.Fprintf(w, "  No transition required\n")
	}
}

func formatTransitionDetails(w io.Writer, tr *log.TransitionEvent) {
	if tr.From != "" {
		fmt.Fprintf(w, "  %s -> %s\n", tr.From, tr.To)
	} else {
		fmt.Fprintf(w, "  -> %s\n", tr.To)
	}
	if tr.Cause != "" {
		fmt.Fprintf(w, "  Cause: %s\n", tr.Cause)
	}
	if tr.Elapsed > 0 {
		fmt.Fprintf(w, "  Elapsed: %s\n", formatDuration(tr.Elapsed))
	}
}

func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEventData) {
	fmt.Fprintf(w, "  Op: %s\n", e.Op)
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
}

// formatDuration renders a duration with a unit suited to its magnitude.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	case d < time.Second:
		return fmt.Sprintf("%.3fms", float64(d.Nanoseconds())/1e6)
	default:
		return fmt.Sprintf("%.3fs", d.Seconds())
	}
}

func shortenTraceID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// ParseCategoryFlag converts a command-line category name to a log.Category.
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "request":
		return log.CategoryRequest, nil
	case "decision":
		return log.CategoryDecision, nil
	case "transition":
		return log.CategoryTransition, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be request, decision, transition, state, or error)", s)
	}
}

// ParseEntityFlag converts a command-line entity name to a log.StateEntity.
func ParseEntityFlag(s string) (log.StateEntity, error) {
	return parseEntity(s)
}

func parseEntity(s string) (log.StateEntity, error) {
	switch strings.ToLower(s) {
	case "commissioning":
		return log.StateEntityCommissioning, nil
	case "connectivity":
		return log.StateEntityConnectivity, nil
	case "provisioning":
		return log.StateEntityProvisioning, nil
	case "advertising":
		return log.StateEntityAdvertising, nil
	default:
		return 0, fmt.Errorf("invalid entity: %s (must be commissioning, connectivity, provisioning, or advertising)", s)
	}
}
