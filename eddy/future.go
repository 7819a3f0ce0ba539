package eddy

import (
	"sync"
	"time"

	"github.com/Simoncqk/go-containers"
	"github.com/pkg/errors"
)

// Task represent a task to be executed. No args passed in because it
// can be easily achieved by closure, and return value is captured by
// the Future it completes.
type Task func() (interface{}, error)

// Handler receives the terminal result of a future, exactly once.
// Either val or err is meaningful, never both.
type Handler func(val interface{}, err error)

type taskResult struct {
	val interface{}
	err error
}

// taskWrapper binds a task to the completion callback of the future
// waiting on it; this is the unit of work flowing through the pool.
type taskWrapper struct {
	t    Task
	done Handler
}

// Future is a single-assignment result container: it completes at most
// once, with a value or an error, and delivers that result to every
// registered handler exactly once, in registration order.
type Future interface {
	// Then registers handler to receive the terminal result. If the
	// future has already completed, handler is invoked synchronously
	// with the stored result; otherwise it is queued until completion.
	Then(handler Handler)

	// OnSuccess register the callback when future completed with a
	// value. If future completed with error, it is a no-op.
	OnSuccess(f func(val interface{}))

	// OnFailure register the callback when future completed with some
	// error. If future completed with a value, it is a no-op.
	OnFailure(f func(err error))

	// Complete submits task to the bound executor and makes its outcome
	// the terminal result. Return ErrAlreadyCompleted if a terminal
	// result already exists, ErrNotCompletable on a chained future.
	Complete(task Task) error

	// IsCompleted return whether a terminal result has been set.
	IsCompleted() bool

	// Await blocks the calling goroutine until the future completes or
	// timeout elapses. On completion it returns the stored value or
	// re-raises the stored error verbatim; on expiry it fails with
	// ErrAwaitTimeout.
	Await(timeout time.Duration) (interface{}, error)

	// Map derives a future completing with next applied to this
	// future's value. An error result short-circuits: next never runs
	// and the derived future carries the same error.
	Map(next func(val interface{}) (interface{}, error)) Future

	// Replace derives a future adopting the result of the future
	// returned by next (flat-map), with the same error short-circuit
	// as Map.
	Replace(next func(val interface{}) (Future, error)) Future
}

// eddy implementation of Future interface. The mutex guards the result
// slot and the handler queue as one atomic unit: the deliver-now versus
// enqueue decision is made under it, and it is never held while a
// handler or task runs.
type eddyFuture struct {
	lock     sync.Mutex
	res      *taskResult
	handlers *containers.Queue
	exec     Executor // nil for chained futures
}

func newEddyFuture(exec Executor) *eddyFuture {
	return &eddyFuture{
		handlers: containers.NewQueue(),
		exec:     exec,
	}
}

// NewFuture create an empty pending future bound to exec, to be
// completed later exactly once via Complete.
func NewFuture(exec Executor) Future {
	return newEddyFuture(exec)
}

func (ef *eddyFuture) Then(handler Handler) {
	ef.lock.Lock()
	if ef.res != nil {
		res := ef.res
		ef.lock.Unlock()
		// lock released first, so a handler may re-enter this future.
		handler(res.val, res.err)
		return
	}
	ef.handlers.Push(handler)
	ef.lock.Unlock()
}

func (ef *eddyFuture) OnSuccess(f func(val interface{})) {
	ef.Then(func(val interface{}, err error) {
		if err == nil {
			f(val)
		}
	})
}

func (ef *eddyFuture) OnFailure(f func(err error)) {
	ef.Then(func(val interface{}, err error) {
		if err != nil {
			f(err)
		}
	})
}

func (ef *eddyFuture) Complete(task Task) error {
	ef.lock.Lock()
	if ef.res != nil {
		ef.lock.Unlock()
		return ErrAlreadyCompleted
	}
	exec := ef.exec
	ef.lock.Unlock()

	if exec == nil {
		return ErrNotCompletable
	}
	// the guard only covers terminal results: a Complete racing with an
	// accepted in-flight one may pass too, fulfill keeps the first
	// outcome and drops the loser.
	return exec.Execute(task, ef.fulfill)
}

// fulfill set the terminal result and drain the handler queue, in
// insertion order, invoking each handler outside the lock. It re-checks
// completion under the lock: of several racing completions exactly one
// wins, the rest are dropped without overwriting.
func (ef *eddyFuture) fulfill(val interface{}, err error) {
	ef.lock.Lock()
	if ef.res != nil {
		ef.lock.Unlock()
		return
	}
	ef.res = &taskResult{val: val, err: err}
	var hs []Handler
	for ef.handlers.Size() > 0 {
		hs = append(hs, ef.handlers.Peek().(Handler))
		ef.handlers.Pop()
	}
	ef.lock.Unlock()

	for _, h := range hs {
		h(val, err)
	}
}

func (ef *eddyFuture) IsCompleted() bool {
	ef.lock.Lock()
	defer ef.lock.Unlock()
	return ef.res != nil
}

func (ef *eddyFuture) Await(timeout time.Duration) (interface{}, error) {
	var rec *taskResult
	sig := make(chan struct{}, 1)
	ef.Then(func(val interface{}, err error) {
		rec = &taskResult{val: val, err: err}
		sig <- struct{}{}
	})

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-sig:
		if rec == nil {
			return nil, ErrInconsistentWait
		}
		return rec.val, rec.err
	case <-timer.C:
		return nil, errors.Wrapf(ErrAwaitTimeout, "after %v", timeout)
	}
}
