package margin

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/LoganKirkendoll123/UnifiedRFQTool-sub001/storage/db"
)

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one margin discovery run tracked by the registry.
type Run struct {
	ID         string    `json:"id"`
	Status     RunStatus `json:"status"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	Report     *Report   `json:"report,omitempty"`
	Error      string    `json:"error,omitempty"`

	cancel context.CancelFunc
}

// RunRegistry tracks in-flight and finished runs in memory.
type RunRegistry struct {
	mu   sync.Mutex
	runs map[string]*Run
}

func NewRunRegistry() *RunRegistry {
	return &RunRegistry{runs: make(map[string]*Run)}
}

// Start launches the engine on a background goroutine and returns the
// tracked run immediately.
func (r *RunRegistry) Start(engine *Engine, shipments []db.Shipment) *Run {
	ctx, cancel := context.WithCancel(context.Background())
	run := &Run{
		ID:        ulid.Make().String(),
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
		cancel:    cancel,
	}

	r.mu.Lock()
	r.runs[run.ID] = run
	r.mu.Unlock()

	go func() {
		defer cancel()
		report, err := engine.Run(ctx, shipments)

		r.mu.Lock()
		defer r.mu.Unlock()
		run.Report = report
		run.FinishedAt = time.Now()
		switch {
		case errors.Is(err, context.Canceled):
			run.Status = RunStatusCancelled
		case err != nil:
			run.Status = RunStatusFailed
			run.Error = err.Error()
		default:
			run.Status = RunStatusCompleted
		}
	}()

	return run
}

// Snapshot returns a copy of the run's current state, safe to read
// while the run is still mutating.
func (r *RunRegistry) Snapshot(id string) (Run, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return Run{}, false
	}
	snapshot := *run
	snapshot.cancel = nil
	return snapshot, true
}

// Cancel requests cancellation of a running run. It reports whether the
// run exists; cancelling a finished run is a no-op.
func (r *RunRegistry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, ok := r.runs[id]
	if !ok {
		return false
	}
	run.cancel()
	return true
}
