// Package jobmgr runs command handlers and other background jobs in tracked
// goroutines with cancellation and lifecycle reporting.
//
// Typical usage:
//
//	jm := jobmgr.NewManager(func(msg string) {
//	    logger.Debug("job", zap.String("event", msg))
//	})
//
//	// as the execution strategy of a command dispatch
//	err := args.Execute(shape, cursor, env, jm)
//
//	// named jobs
//	err = jm.StartAsync("digest-upload", func(ctx context.Context) error { ... })
//
//	// on shutdown; List still names the jobs that ignored cancellation
//	jm.Close()
//	if err := jm.Wait(ctx); err != nil {
//	    logger.Warn("stuck", zap.Strings("jobs", jm.List()))
//	}
package jobmgr

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned when work is submitted after Close.
var ErrClosed = errors.New("jobmgr: manager closed")

// Job represents a running unit of work.
type Job struct {
	Name   string
	Cancel context.CancelFunc
}

// StatusReporter receives lifecycle events for jobs:
//
//	running:digest-upload
//	error:digest-upload:failed to connect
//	done:digest-upload
type StatusReporter func(string)

// Manager starts, stops and tracks jobs. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	jobs     map[string]*Job
	wg       sync.WaitGroup
	closed   bool
	Reporter StatusReporter
}

// NewManager creates a new Manager. The reporter may be nil.
func NewManager(reporter StatusReporter) *Manager {
	return &Manager{
		jobs:     make(map[string]*Job),
		Reporter: reporter,
	}
}

// Execute runs a matched command handler as an anonymous job and returns
// immediately. The handler's error goes to the reporter.
func (m *Manager) Execute(work func() error) error {
	name := "handler-" + uuid.NewString()
	return m.StartAsync(name, func(context.Context) error {
		return work()
	})
}

// StartAsync runs a job in a separate goroutine and returns immediately.
// If a job with the same name is already running, an error is returned.
// Jobs are removed automatically after completion.
func (m *Manager) StartAsync(name string, runner func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	job := &Job{Name: name, Cancel: cancel}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		cancel()
		return ErrClosed
	}
	if _, exists := m.jobs[name]; exists {
		m.mu.Unlock()
		cancel()
		return fmt.Errorf("job '%s' is already running", name)
	}
	m.jobs[name] = job
	m.wg.Add(1)
	m.mu.Unlock()

	go func() {
		defer m.wg.Done()
		defer cancel()

		m.report("running:" + name)
		if err := runner(ctx); err != nil {
			m.report("error:" + name + ":" + err.Error())
		} else {
			m.report("done:" + name)
		}

		m.mu.Lock()
		if m.jobs[name] == job {
			delete(m.jobs, name)
		}
		m.mu.Unlock()
	}()

	return nil
}

// List returns the names of active jobs, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.jobs))
	for k := range m.jobs {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Status returns a human-readable summary of active jobs:
//
//	"Running jobs: handler-1b4e..., digest-upload"
//
// If none are running: "No jobs are running."
func (m *Manager) Status() string {
	active := m.List()
	if len(active) == 0 {
		return "No jobs are running."
	}
	return fmt.Sprintf("Running jobs: %s", strings.Join(active, ", "))
}

// Close rejects new jobs and cancels the running ones. It does not wait; use
// Wait for that. A cancelled job stays in List until its runner returns.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	for _, job := range m.jobs {
		job.Cancel()
	}
}

// Wait blocks until every started job has returned or ctx is done.
func (m *Manager) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) report(s string) {
	if m.Reporter != nil {
		m.Reporter(s)
	}
}
