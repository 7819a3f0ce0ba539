package eddy

import "sync"

// resourcePool recycles taskWrapper allocations over the submit path.
// Terminal results are deliberately not pooled: a future retains its
// result for its whole lifetime, recycling would alias live memory.
type resourcePool struct {
	taskPool *sync.Pool
}

var rscPool *resourcePool

func (p *resourcePool) init() {
	p.taskPool = &sync.Pool{
		New: func() interface{} {
			return &taskWrapper{}
		},
	}
}

func (p *resourcePool) getTask(t Task, done Handler) *taskWrapper {
	task := p.taskPool.Get().(*taskWrapper)
	task.t, task.done = t, done
	return task
}

func (p *resourcePool) putTask(task *taskWrapper) {
	task.t, task.done = nil, nil
	p.taskPool.Put(task)
}

func init() {
	rscPool = &resourcePool{}
	rscPool.init()
}
