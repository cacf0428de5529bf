package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/powersave-project/powersave-go/pkg/log"
)

// RunExport reads the log file at path and writes it in the given format
// (jsonl or csv) to the output file, or stdout when output is empty.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (must be jsonl or csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	enc := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}
		if err := enc.Encode(event); err != nil {
			return fmt.Errorf("encoding event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "trace_id", "device_id", "category", "type", "from", "to", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading event: %w", err)
		}
		if err := cw.Write(csvRow(event)); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	return cw.Error()
}

// csvRow flattens an event into the fixed export columns. Payload fields
// with no column of their own land in detail.
func csvRow(event log.Event) []string {
	row := []string{
		event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
		event.TraceID,
		event.DeviceID,
		event.Category.String(),
		"", // type
		"", // from
		"", // to
		"", // detail
	}

	switch {
	case event.Request != nil:
		row[4] = event.Request.Action.String()
		detail := "outstanding=" + strconv.Itoa(event.Request.Outstanding)
		if event.Request.WithTransition {
			detail += " with-transition"
		}
		if event.Request.Clamped {
			detail += " clamped"
		}
		row[7] = detail
	case event.Decision != nil:
		row[4] = event.Decision.Target
		row[5] = event.Decision.Previous
		row[6] = event.Decision.Target
		row[7] = fmt.Sprintf("requests=%d commissioning=%v provisioned=%v changed=%v",
			event.Decision.Requests, event.Decision.Commissioning,
			event.Decision.Provisioned, event.Decision.Changed)
	case event.Transition != nil:
		row[4] = event.Transition.To
		row[5] = event.Transition.From
		row[6] = event.Transition.To
		row[7] = event.Transition.Cause
	case event.StateChange != nil:
		row[4] = event.StateChange.Entity.String()
		row[5] = event.StateChange.OldState
		row[6] = event.StateChange.NewState
		row[7] = event.StateChange.Reason
	case event.Error != nil:
		row[4] = event.Error.Op
		row[7] = event.Error.Message
	}

	return row
}
