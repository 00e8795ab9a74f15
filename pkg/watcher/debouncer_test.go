package watcher

import (
	"context"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, 50*time.Millisecond, 2*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// A burst of rapid events, as an editor produces while saving.
	for i := 0; i < 3; i++ {
		input <- ChangeEvent{Paths: []string{"graph.json"}, Timestamp: time.Now()}
	}

	select {
	case event, ok := <-d.Output():
		if !ok {
			t.Fatal("Output closed before flushing")
		}
		if len(event.Paths) != 3 {
			t.Errorf("Expected 3 coalesced paths, got %d", len(event.Paths))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("No flush after quiet period")
	}

	// The burst must produce exactly one flush.
	select {
	case event := <-d.Output():
		t.Errorf("Unexpected second flush with %d paths", len(event.Paths))
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerMaxWaitUnderSustainedEvents(t *testing.T) {
	input := make(chan ChangeEvent, 100)
	d := NewDebouncer(input, 100*time.Millisecond, 250*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	// Keep the quiet period from ever elapsing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 20; i++ {
			input <- ChangeEvent{Paths: []string{"graph.json"}, Timestamp: time.Now()}
			time.Sleep(50 * time.Millisecond)
		}
	}()

	select {
	case event, ok := <-d.Output():
		if !ok {
			t.Fatal("Output closed before flushing")
		}
		if len(event.Paths) == 0 {
			t.Error("Max-wait flush carried no paths")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Max wait did not force a flush under sustained events")
	}

	cancel()
	<-done
}

func TestDebouncerFlushesOnCancel(t *testing.T) {
	input := make(chan ChangeEvent, 10)
	d := NewDebouncer(input, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)

	input <- ChangeEvent{Paths: []string{"graph.json"}, Timestamp: time.Now()}
	// Give the accumulator a moment to pick the event up.
	time.Sleep(50 * time.Millisecond)
	cancel()

	event, ok := <-d.Output()
	if !ok {
		t.Fatal("Expected a final flush before close")
	}
	if len(event.Paths) != 1 {
		t.Errorf("Expected 1 path in final flush, got %d", len(event.Paths))
	}

	if _, ok := <-d.Output(); ok {
		t.Error("Output should be closed after cancellation")
	}
}
