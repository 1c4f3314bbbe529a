// Package jobs runs named background tasks with cancellation. A job is a
// function that blocks until its context is cancelled.
package jobs

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Job is a long-running task. It must return promptly once ctx is done.
type Job func(ctx context.Context)

// Manager tracks running jobs by name.
type Manager struct {
	mu      sync.Mutex
	running map[string]context.CancelFunc
	wg      sync.WaitGroup
}

func NewManager() *Manager {
	return &Manager{running: make(map[string]context.CancelFunc)}
}

// StartAsync launches a job in its own goroutine. Starting a name twice is
// an error; the first instance keeps running.
func (m *Manager) StartAsync(parent context.Context, name string, job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.running[name]; exists {
		return fmt.Errorf("job '%s' is already running", name)
	}

	ctx, cancel := context.WithCancel(parent)
	m.running[name] = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		log.Printf("[INFO] Job '%s' started", name)
		job(ctx)
		log.Printf("[INFO] Job '%s' exited", name)

		m.mu.Lock()
		delete(m.running, name)
		m.mu.Unlock()
	}()

	return nil
}

// StopAll cancels every job and waits for them to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()
	for _, cancel := range m.running {
		cancel()
	}
	m.mu.Unlock()

	m.wg.Wait()
}

// List returns the names of running jobs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.running))
	for name := range m.running {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
