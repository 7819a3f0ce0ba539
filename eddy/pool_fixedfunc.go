package eddy

import (
	"sync"
	"time"
)

// FixedFuncPool hold a function and accept different payload
// arguments, do execution and pass the result. See it as a
// executor.
type FixedFuncPool struct {
	pool *basicPool
	mu   sync.RWMutex
	f    FixedFunc
}

type FixedFunc func(interface{}) (interface{}, error)

func newFixedFuncPool(f FixedFunc, wc WorkerCtor, cap ...int) *FixedFuncPool {
	return &FixedFuncPool{
		pool: newBasicPool(wc, cap...),
		f:    f,
	}
}

func (p *FixedFuncPool) Submit(arg interface{}) (Future, error) {
	f := p.fixedFunc()
	return p.pool.Submit(func() (interface{}, error) { return f(arg) })
}

func (p *FixedFuncPool) SubmitWithTimeout(arg interface{}, timeout time.Duration) (Future, error) {
	f := p.fixedFunc()
	return p.pool.SubmitWithTimeout(func() (interface{}, error) { return f(arg) }, timeout)
}

func (p *FixedFuncPool) fixedFunc() FixedFunc {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.f
}

// SetNewFixedFunc dynamically set new fixed function hold inside
// pool, it will pause until old tasks done.
func (p *FixedFuncPool) SetNewFixedFunc(newFunc FixedFunc) {
	// pause the service, equivalent to a LOCK.
	p.Pause()

	// wait for queued tasks to be dispatched
	for p.pool.taskQ.Len() > 0 {
		time.Sleep(time.Millisecond)
	}

	p.mu.Lock()
	p.f = newFunc
	p.mu.Unlock()

	// resume the service
	p.Resume()
}

func (p *FixedFuncPool) SetCapacity(newCap int) {
	p.pool.SetCapacity(newCap)
}

func (p *FixedFuncPool) Pause() {
	p.pool.Pause()
}

func (p *FixedFuncPool) Resume() {
	p.pool.Resume()
}

func (p *FixedFuncPool) Close() {
	p.pool.Close()
}

func (p *FixedFuncPool) SetPurgeDuration(dur time.Duration) {
	p.pool.SetPurgeDuration(dur)
}

func (p *FixedFuncPool) Capacity() int {
	return p.pool.Capacity()
}

func (p *FixedFuncPool) Workers() int {
	return p.pool.Workers()
}
