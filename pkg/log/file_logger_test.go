package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	// File should exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerWritesCBOR(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	event := Event{
		Timestamp: time.Now(),
		TraceID:   "trace-123",
		DeviceID:  "device-1",
		Category:  CategoryTransition,
		Transition: &TransitionEvent{
			From:    "DEEP_SLEEP",
			To:      "HIGH_PERFORMANCE",
			Cause:   "GENERIC",
			Elapsed: 3 * time.Millisecond,
		},
	}

	logger.Log(event)
	logger.Close()

	// Read the file and decode
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	if len(data) == 0 {
		t.Fatal("log file is empty")
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}

	if decoded.TraceID != event.TraceID {
		t.Errorf("TraceID: got %q, want %q", decoded.TraceID, event.TraceID)
	}
	if decoded.Transition == nil {
		t.Fatal("Transition is nil")
	}
	if decoded.Transition.To != "HIGH_PERFORMANCE" {
		t.Errorf("Transition.To: got %q, want %q", decoded.Transition.To, "HIGH_PERFORMANCE")
	}
	if decoded.Transition.Elapsed != 3*time.Millisecond {
		t.Errorf("Transition.Elapsed: got %v, want %v", decoded.Transition.Elapsed, 3*time.Millisecond)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	// Write first event
	logger1, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger1.Log(Event{Timestamp: time.Now(), TraceID: "trace-1", Category: CategoryRequest})
	logger1.Close()

	// Reopen and write second event
	logger2, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger reopen failed: %v", err)
	}
	logger2.Log(Event{Timestamp: time.Now(), TraceID: "trace-2", Category: CategoryRequest})
	logger2.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var traces []string
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		traces = append(traces, event.TraceID)
	}

	if len(traces) != 2 {
		t.Fatalf("got %d events, want 2", len(traces))
	}
	if traces[0] != "trace-1" || traces[1] != "trace-2" {
		t.Errorf("events out of order: %v", traces)
	}
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	const writers = 10
	const eventsPerWriter = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < eventsPerWriter; j++ {
				logger.Log(Event{
					Timestamp: time.Now(),
					TraceID:   "concurrent",
					Category:  CategoryDecision,
					Decision:  &DecisionEvent{Target: "DTIM_BASED_SLEEP"},
				})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		_, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed after %d events: %v", count, err)
		}
		count++
	}

	if count != writers*eventsPerWriter {
		t.Errorf("got %d events, want %d", count, writers*eventsPerWriter)
	}
}

func TestFileLoggerLogAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.plog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Should not panic, and not write
	logger.Log(Event{Timestamp: time.Now(), TraceID: "late", Category: CategoryRequest})

	// Double close is fine
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty file after post-close write, got %d bytes", len(data))
	}
}
