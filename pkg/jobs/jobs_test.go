package jobs

import (
	"context"
	"testing"
	"time"
)

func blockUntilDone(ctx context.Context) {
	<-ctx.Done()
}

func TestStartAsyncRejectsDuplicates(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	if err := m.StartAsync(context.Background(), "sweeper", blockUntilDone); err != nil {
		t.Fatalf("StartAsync: %v", err)
	}
	if err := m.StartAsync(context.Background(), "sweeper", blockUntilDone); err == nil {
		t.Fatal("duplicate start succeeded")
	}
}

func TestStopAllWaits(t *testing.T) {
	m := NewManager()

	for _, name := range []string{"a", "b", "c"} {
		m.StartAsync(context.Background(), name, blockUntilDone)
	}
	if n := len(m.List()); n != 3 {
		t.Fatalf("running = %d", n)
	}

	m.StopAll()
	if n := len(m.List()); n != 0 {
		t.Errorf("running after StopAll = %d", n)
	}
}

func TestNameFreedAfterExit(t *testing.T) {
	m := NewManager()
	defer m.StopAll()

	done := make(chan struct{})
	m.StartAsync(context.Background(), "oneshot", func(ctx context.Context) {
		close(done)
	})
	<-done

	// The goroutine removes the name after the job returns.
	deadline := time.After(2 * time.Second)
	for {
		if err := m.StartAsync(context.Background(), "oneshot", blockUntilDone); err == nil {
			return
		}
		select {
		case <-deadline:
			t.Fatal("name never freed after job exit")
		case <-time.After(10 * time.Millisecond):
		}
	}
}
