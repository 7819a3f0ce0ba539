package eddy

import "github.com/pkg/errors"

// chain.go builds derived futures: Map for plain transforms, Replace
// for future-returning ones. A derived future has no executor bound,
// its only completer is the handler registered on its source here.

func (ef *eddyFuture) Map(next func(val interface{}) (interface{}, error)) Future {
	nf := newEddyFuture(nil)
	ef.Then(func(val interface{}, err error) {
		if err != nil {
			nf.fulfill(nil, err)
			return
		}
		nf.fulfill(applyMap(next, val))
	})
	return nf
}

func (ef *eddyFuture) Replace(next func(val interface{}) (Future, error)) Future {
	nf := newEddyFuture(nil)
	ef.Then(func(val interface{}, err error) {
		if err != nil {
			nf.fulfill(nil, err)
			return
		}
		inner, ierr := applyReplace(next, val)
		if ierr != nil {
			nf.fulfill(nil, ierr)
			return
		}
		if inner == nil {
			nf.fulfill(nil, ErrNilReplacement)
			return
		}
		// adopts the inner result immediately when inner has already
		// completed, otherwise when it arrives.
		inner.Then(nf.fulfill)
	})
	return nf
}

// applyMap run the transform, converting a panic into an error result
// so a failing transform can never fault the delivering goroutine.
func applyMap(next func(interface{}) (interface{}, error), val interface{}) (res interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, errors.Errorf("chain: transform panic: %v", r)
		}
	}()
	return next(val)
}

func applyReplace(next func(interface{}) (Future, error), val interface{}) (f Future, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, err = nil, errors.Errorf("chain: transform panic: %v", r)
		}
	}()
	return next(val)
}
