package eddy

import (
	"errors"
	"time"
)

var (
	ErrPoolClosed  = errors.New("pool: pool has been closed, no more tasks submitted")
	ErrPoolPaused  = errors.New("pool: pool has been paused, resume first please")
	ErrTaskTimeout = errors.New("task: submit timeout")
	// ErrTaskCancelled completes the future of a queued task dropped by
	// Worker.Cancel before it ever ran.
	ErrTaskCancelled = errors.New("task: task cancelled before execution")

	ErrAlreadyCompleted = errors.New("future: future has already been completed")
	// ErrNotCompletable is returned by Complete on a future that has no
	// executor bound, i.e. one built by Map or Replace: only its source
	// chain may complete it.
	ErrNotCompletable   = errors.New("future: future is not bound to an executor")
	ErrAwaitTimeout     = errors.New("future: await timeout")
	ErrInconsistentWait = errors.New("future: await signalled without a result")
	ErrNilReplacement   = errors.New("future: replace transform returned nil future")
)

// constraints for pool
const (
	// purge idle workers to recycle resource every 30s.
	defaultPurgeWorkersDuration = 32 * time.Second
	// make task queue buffered, so as to avoid accidently blocking main
	// goroutine when submit, BUT BLOCK MAY HAPPEN SOME TIME.
	defaultTaskBufferSizeFactor = 4
	// default pool capacity is defaultPoolCapacityFactor * NumCPU
	defaultPoolCapacityFactor = 8
	// expand number of workers once queued/size ratio reaches this
	// threshold.
	autoExpandFactor = 0.75
)

// constraints for workers
const (
	// if a worker doesn't preempt a task after defaultIdleDuration,
	// it will be flagged as idle.
	defaultIdleDuration = 8 * time.Second
)
