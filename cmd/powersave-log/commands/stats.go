package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/powersave-project/powersave-go/pkg/log"
)

// Stats summarizes the contents of a power event log file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	Acquires          int
	Releases          int
	Clamped           int
	TransitionsByMode map[string]int
	Errors            int
	Traces            map[string]*TraceStats
	TimeStart         time.Time
	TimeEnd           time.Time
}

// TraceStats summarizes the events of one manager lifetime.
type TraceStats struct {
	DeviceID    string
	Events      int
	Transitions int
	FirstSeen   time.Time
	LastSeen    time.Time
}

// RunStats reads the log file at path and writes a statistics summary to w.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func newStats() *Stats {
	return &Stats{
		EventsByCategory:  make(map[log.Category]int),
		TransitionsByMode: make(map[string]int),
		Traces:            make(map[string]*TraceStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++

	if s.TimeStart.IsZero() || event.Timestamp.Before(s.TimeStart) {
		s.TimeStart = event.Timestamp
	}
	if event.Timestamp.After(s.TimeEnd) {
		s.TimeEnd = event.Timestamp
	}

	if event.TraceID != "" {
		trace, ok := s.Traces[event.TraceID]
		if !ok {
			trace = &TraceStats{FirstSeen: event.Timestamp}
			s.Traces[event.TraceID] = trace
		}
		trace.Events++
		if event.Timestamp.Before(trace.FirstSeen) {
			trace.FirstSeen = event.Timestamp
		}
		if event.Timestamp.After(trace.LastSeen) {
			trace.LastSeen = event.Timestamp
		}
		if event.DeviceID != "" {
			trace.DeviceID = event.DeviceID
		}
		if event.Transition != nil {
			trace.Transitions++
		}
	}

	switch {
	case event.Request != nil:
		switch {
		case event.Request.Clamped:
			s.Clamped++
		case event.Request.Action == log.ActionAcquire:
			s.Acquires++
		default:
			s.Releases++
		}
	case event.Transition != nil:
		s.TransitionsByMode[event.Transition.To]++
	case event.Error != nil:
		s.Errors++
	}
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Power Event Log Statistics ===")
	fmt.Fprintln(w)

	if !stats.TimeStart.IsZero() {
		fmt.Fprintf(w, "Time Range: %s - %s\n",
			stats.TimeStart.UTC().Format(time.RFC3339),
			stats.TimeEnd.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "Duration: %s\n", stats.TimeEnd.Sub(stats.TimeStart))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	if len(stats.EventsByCategory) > 0 {
		fmt.Fprintln(w, "Events by Category:")
		categories := make([]log.Category, 0, len(stats.EventsByCategory))
		for c := range stats.EventsByCategory {
			categories = append(categories, c)
		}
		sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })
		for _, c := range categories {
			fmt.Fprintf(w, "  %s: %d\n", c, stats.EventsByCategory[c])
		}
		fmt.Fprintln(w)
	}

	if stats.Acquires > 0 || stats.Releases > 0 || stats.Clamped > 0 {
		fmt.Fprintln(w, "High-Performance Requests:")
		fmt.Fprintf(w, "  Acquired: %d\n", stats.Acquires)
		fmt.Fprintf(w, "  Released: %d\n", stats.Releases)
		if stats.Clamped > 0 {
			fmt.Fprintf(w, "  Clamped Releases: %d\n", stats.Clamped)
		}
		fmt.Fprintln(w)
	}

	if len(stats.TransitionsByMode) > 0 {
		fmt.Fprintln(w, "Transitions by Mode:")
		modes := make([]string, 0, len(stats.TransitionsByMode))
		for m := range stats.TransitionsByMode {
			modes = append(modes, m)
		}
		sort.Strings(modes)
		for _, m := range modes {
			fmt.Fprintf(w, "  %s: %d\n", m, stats.TransitionsByMode[m])
		}
		fmt.Fprintln(w)
	}

	if len(stats.Traces) > 0 {
		fmt.Fprintf(w, "Traces: %d\n", len(stats.Traces))
		ids := make([]string, 0, len(stats.Traces))
		for id := range stats.Traces {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			return stats.Traces[ids[i]].FirstSeen.Before(stats.Traces[ids[j]].FirstSeen)
		})
		for _, id := range ids {
			trace := stats.Traces[id]
			fmt.Fprintf(w, "  [%s] %d events, %d transitions",
				shortenTraceID(id), trace.Events, trace.Transitions)
			if trace.DeviceID != "" {
				fmt.Fprintf(w, ", device %s", trace.DeviceID)
			}
			if trace.LastSeen.After(trace.FirstSeen) {
				fmt.Fprintf(w, ", %s", trace.LastSeen.Sub(trace.FirstSeen))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
}
