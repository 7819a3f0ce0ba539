package eddy

import "time"

// Worker represents a executor broker for goroutine, do the real job
// and obtained by Pool.
type Worker interface {
	// run start worker service listening for task coming, it should be
	// invoked instantly when worker created.
	run()

	// Idle return whether worker is in long-idle state which indicate
	// can be recycled.
	Idle() bool

	// Cancel cancel next to-be-executed task immediately. If no pending
	// task now, it is a no-op.
	Cancel()

	// Close close the worker and recycle resource, if it is
	// under working, waiting for task done synchronously.
	Close()
}

// WorkerCtor build a customized Worker preempting tasks from taskQ,
// used with NewCustomizedWorkerPool.
type WorkerCtor func(taskQ <-chan *taskWrapper) Worker

type eddyWorker struct {
	// taskQ is the outgoing side of the pool queue, workers preempt
	// for tasks over it, if no more task comes, worker will be asleep.
	taskQ  <-chan *taskWrapper
	cancel chan struct{}
	close  chan struct{}
	idle   bool
}

func newEddyWorker(tq <-chan *taskWrapper) Worker {
	ew := &eddyWorker{
		taskQ:  tq,
		cancel: make(chan struct{}),
		close:  make(chan struct{}),
		idle:   false,
	}
	go ew.run()
	return ew
}

func (ew *eddyWorker) run() {
	timer := time.NewTimer(defaultIdleDuration)

	for {
		select {
		case <-ew.close:
			return
		case <-ew.cancel:
			// if cancel signal arrive earlier than task, deprecate the
			// coming task and fail its future, so no registered handler
			// is left stranded.
			if task, open := <-ew.taskQ; open {
				done := task.done
				rscPool.putTask(task)
				done(nil, ErrTaskCancelled)
			}
		case task, open := <-ew.taskQ:
			if !open {
				return
			}
			ew.idle = false
			t, done := task.t, task.done
			rscPool.putTask(task)
			done(t())
			timer.Reset(defaultIdleDuration)
		case <-timer.C:
			ew.idle = true
			timer.Reset(defaultIdleDuration)
		}
	}
}

func (ew *eddyWorker) Idle() bool {
	return ew.idle
}

func (ew *eddyWorker) Cancel() {
	ew.cancel <- struct{}{}
}

func (ew *eddyWorker) Close() {
	close(ew.close)
}
