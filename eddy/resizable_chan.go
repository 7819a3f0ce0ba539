package eddy

import "github.com/Simoncqk/go-containers"

// ResizableChan is the elastic queue sitting between submitters and
// workers: a channel pair backed by an unbounded buffer whose admission
// size can be changed at runtime, so the pool can grow queue room
// together with worker capacity.
type ResizableChan struct {
	in, out  chan *taskWrapper
	resizeCh chan int
	buffer   *containers.Queue
	size     int
}

func NewResizableChan(initSize int) *ResizableChan {
	ch := &ResizableChan{
		in:       make(chan *taskWrapper),
		out:      make(chan *taskWrapper),
		resizeCh: make(chan int),
		buffer:   containers.NewQueue(),
		size:     initSize,
	}
	go ch.autoResize()
	return ch
}

func (ch *ResizableChan) In() chan<- *taskWrapper {
	return ch.in
}

func (ch *ResizableChan) Out() <-chan *taskWrapper {
	return ch.out
}

func (ch *ResizableChan) Resize(size int) {
	if size == ch.size {
		return
	}
	if size <= 0 {
		panic("invalid size of ResizableChan")
	}
	ch.resizeCh <- size
}

func (ch *ResizableChan) Size() int {
	return ch.size
}

func (ch *ResizableChan) Len() int {
	return ch.buffer.Size()
}

func (ch *ResizableChan) Close() {
	close(ch.in)
}

func (ch *ResizableChan) autoResize() {

	var (
		input, output chan *taskWrapper
		nextTask      *taskWrapper
		closed        bool
	)

	input = ch.in

	for !closed || ch.buffer.Size() > 0 {
		select {
		case income, open := <-input:
			if open {
				ch.buffer.Push(income)
			} else {
				closed = true
			}
		case output <- nextTask:
			ch.buffer.Pop()
		case ch.size = <-ch.resizeCh:
		}

		// no more outgoing
		if ch.buffer.Size() == 0 {
			output = nil
			nextTask = nil
		} else {
			output = ch.out
			nextTask = ch.buffer.Peek().(*taskWrapper)
		}
		// ch is full or drained after close
		if closed || ch.buffer.Size() >= ch.size {
			input = nil
		} else {
			input = ch.in
		}
	}

	close(ch.out)
	close(ch.resizeCh)
}
