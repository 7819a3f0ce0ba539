package eddy

// FixedSizePool has a fixed capacity and task queue length, once
// initialized, no more modification allowed over this two members.
type FixedSizePool struct {
	*basicPool
}

func newFixedSizePool(capacity, maxTasks int, wc WorkerCtor) *FixedSizePool {
	bp := newBasicPool(wc, capacity)
	bp.taskQ.Resize(maxTasks)
	bp.fixed = true
	return &FixedSizePool{bp}
}

// SetCapacity do nothing, for overriding the SetCapacity impl of
// basicPool.
func (p *FixedSizePool) SetCapacity(newCap int) {}
