package eddy

import (
	"runtime"
	"sync"
	"time"
)

// Executor is the background execution capability a Future depends on:
// accept a fallible computation plus a completion callback, and
// guarantee the callback is eventually invoked with the outcome, on a
// worker goroutine other than the submitter's.
type Executor interface {
	Execute(task Task, done Handler) error
}

// Pool interface defines the critical methods a pool must implement,
// it also represents the main methods exposed to users.
type Pool interface {
	Executor

	// Submit is the main entry for submitting new tasks, it returns a
	// pending Future completed by the task's outcome.
	Submit(task Task) (Future, error)

	// SubmitWithTimeout submit a new task and set expiration for the
	// enqueue step.
	SubmitWithTimeout(task Task, timeout time.Duration) (Future, error)

	// SetCapacity dynamically reset the capacity of pool.
	SetCapacity(newCap int)

	// Pause will block the whole pool, util Resume is invoked.
	Pause()

	// Resume restart the paused pool, if pool is in running state,
	// this is a no-op.
	Resume()

	// Close close the pool and recycle the resource, users must invoke
	// this method if they do not use pool anymore. Tasks still queued
	// fail their futures with ErrPoolClosed.
	Close()
}

type basicPool struct {
	capacity      int
	workers       []Worker
	wc            WorkerCtor
	taskQ         *ResizableChan
	pause         chan struct{}
	close         chan struct{}
	lock          sync.RWMutex
	purgeDuration time.Duration
	purgeTicker   *time.Ticker
	// fixed pools keep capacity and queue size immutable.
	fixed bool
}

func newBasicPool(wc WorkerCtor, cap ...int) *basicPool {
	if wc == nil {
		wc = newEddyWorker
	}
	bp := &basicPool{
		capacity:      append(cap, defaultPoolCapacityFactor*runtime.NumCPU())[0],
		wc:            wc,
		taskQ:         NewResizableChan(defaultTaskBufferSizeFactor * runtime.NumCPU()),
		pause:         make(chan struct{}, 1), // make pause buffered
		close:         make(chan struct{}),
		purgeDuration: defaultPurgeWorkersDuration,
		purgeTicker:   time.NewTicker(defaultPurgeWorkersDuration),
	}
	for i := 0; i < bp.capacity; i++ {
		bp.workers = append(bp.workers, bp.wc(bp.taskQ.Out()))
	}
	go bp.purgeWorkers()
	return bp
}

// purgeWorkers purge idle workers periodically and recycle resource.
func (bp *basicPool) purgeWorkers() {
	for {
		select {
		case <-bp.close:
			return
		case <-bp.purgeTicker.C:
			bp.makePause()
			bp.lock.Lock()
			kept := bp.workers[:0]
			for _, worker := range bp.workers {
				if worker.Idle() {
					worker.Close()
				} else {
					kept = append(kept, worker)
				}
			}
			for i := len(kept); i < len(bp.workers); i++ {
				bp.workers[i] = nil
			}
			bp.workers = kept
			bp.lock.Unlock()
		}
	}
}

// Execute enqueue task for background execution; done is invoked by a
// worker once the task ran. This is the capability futures complete
// through.
func (bp *basicPool) Execute(task Task, done Handler) error {
	// check closed
	select {
	case <-bp.close:
		return ErrPoolClosed
	default:
	}

	// check paused
	if len(bp.pause) > 0 {
		return ErrPoolPaused
	}

	bp.taskQ.In() <- rscPool.getTask(task, done)

	bp.autoExpand()
	return nil
}

func (bp *basicPool) executeWithTimeout(task Task, done Handler, timeout time.Duration) error {
	select {
	case <-bp.close:
		return ErrPoolClosed
	default:
	}

	if len(bp.pause) > 0 {
		return ErrPoolPaused
	}

	tw := rscPool.getTask(task, done)
	select {
	case <-time.After(timeout):
		rscPool.putTask(tw)
		return ErrTaskTimeout
	case bp.taskQ.In() <- tw:
	}

	bp.autoExpand()
	return nil
}

func (bp *basicPool) Submit(task Task) (Future, error) {
	f := newEddyFuture(bp)
	if err := bp.Execute(task, f.fulfill); err != nil {
		return nil, err
	}
	return f, nil
}

func (bp *basicPool) SubmitWithTimeout(task Task, timeout time.Duration) (Future, error) {
	f := newEddyFuture(bp)
	if err := bp.executeWithTimeout(task, f.fulfill, timeout); err != nil {
		return nil, err
	}
	return f, nil
}

func (bp *basicPool) SetCapacity(newCap int) {
	bp.lock.Lock()
	defer bp.lock.Unlock()

	curCap := len(bp.workers)
	if curCap == newCap || newCap < 0 {
		return
	}
	bp.capacity = newCap

	if curCap < newCap {
		for i := curCap; i < newCap; i++ {
			bp.workers = append(bp.workers, bp.wc(bp.taskQ.Out()))
		}
		return
	}

	for i := newCap; i < curCap; i++ {
		bp.workers[i].Close()
		bp.workers[i] = nil
	}
	bp.workers = bp.workers[:newCap]
}

func (bp *basicPool) Pause() {
	bp.pause <- struct{}{}
}

// makePause judge if pool is in paused state, if so, stop
// current action and wait for resume.
func (bp *basicPool) makePause() {
	if len(bp.pause) > 0 {
		// try send signal and it will block because buffer size
		// of pause channel is 1
		bp.pause <- struct{}{}
	}
}

func (bp *basicPool) Resume() {
	// clear pause signals
	for len(bp.pause) > 0 {
		<-bp.pause
	}
}

func (bp *basicPool) Close() {
	bp.lock.Lock()
	close(bp.close)
	close(bp.pause)

	// clear workers
	for _, worker := range bp.workers {
		worker.Close()
	}
	bp.workers = nil
	bp.purgeTicker.Stop()
	bp.lock.Unlock()

	// fail tasks that never reached a worker, so no future is left
	// pending forever.
	bp.taskQ.Close()
	for tw := range bp.taskQ.Out() {
		done := tw.done
		rscPool.putTask(tw)
		done(nil, ErrPoolClosed)
	}
}

// Capacity return current capacity of pool.
func (bp *basicPool) Capacity() int {
	bp.lock.RLock()
	defer bp.lock.RUnlock()
	return bp.capacity
}

// Workers return current number of under working workers.
func (bp *basicPool) Workers() int {
	bp.lock.RLock()
	defer bp.lock.RUnlock()
	return len(bp.workers)
}

// SetPurgeDuration set duration of pool recycling its idle workers.
func (bp *basicPool) SetPurgeDuration(dur time.Duration) {
	if dur != bp.purgeDuration {
		bp.lock.Lock()
		bp.purgeDuration = dur
		bp.purgeTicker = time.NewTicker(dur)
		bp.lock.Unlock()
	}
}

// autoExpand expand number of workers and queue room when too many
// tasks accumulated.
func (bp *basicPool) autoExpand() {
	if bp.fixed {
		return
	}
	if float32(bp.taskQ.Len())/float32(bp.taskQ.Size()) >= autoExpandFactor {
		bp.SetCapacity(bp.capacity + bp.capacity/2)
		bp.taskQ.Resize(bp.taskQ.Size() + bp.taskQ.Size()/2)
	}
}
