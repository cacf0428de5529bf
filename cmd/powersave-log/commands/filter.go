package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/powersave-project/powersave-go/pkg/log"
)

// FilterOptions specifies criteria for the filter command. String fields
// are parsed here so main can pass flag values through unmodified.
type FilterOptions struct {
	Output    string
	TraceID   string
	DeviceID  string
	Category  string
	Entity    string
	TimeStart string
	TimeEnd   string
}

// RunFilter reads the log file at path, applies the filter, and writes the
// matching events to a new log file.
func RunFilter(path string, opts FilterOptions) error {
	filter, err := buildFilter(opts)
	if err != nil {
		return err
	}

	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer reader.Close()

	writer, err := log.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer writer.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}
		writer.Log(event)
		count++
	}

	fmt.Printf("Filtered %d events to %s\n", count, opts.Output)
	return nil
}

func buildFilter(opts FilterOptions) (log.Filter, error) {
	filter := log.Filter{
		TraceID:  opts.TraceID,
		DeviceID: opts.DeviceID,
	}

	if opts.Category != "" {
		c, err := parseCategory(opts.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}

	if opts.Entity != "" {
		e, err := parseEntity(opts.Entity)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Entity = &e
	}

	if opts.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeStart)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-start: %w", err)
		}
		filter.TimeStart = &t
	}

	if opts.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, opts.TimeEnd)
		if err != nil {
			return log.Filter{}, fmt.Errorf("invalid time-end: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}
