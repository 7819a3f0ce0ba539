package eddy

import (
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func completedFuture(val interface{}, err error) Future {
	f := NewFuture(syncExecutor{})
	_ = f.Complete(func() (interface{}, error) { return val, err })
	return f
}

func TestMapSuccess(t *testing.T) {
	future := completedFuture(2, nil)
	mapped := future.Map(func(val interface{}) (interface{}, error) {
		return val.(int) * 3, nil
	})
	val, err := mapped.Await(time.Second)
	if err != nil || val.(int) != 6 {
		t.Fatalf("mapped future should complete with 6, got %v, %v", val, err)
	}
}

func TestMapPendingSource(t *testing.T) {
	future := NewFuture(goExecutor{})
	mapped := future.Map(func(val interface{}) (interface{}, error) {
		return val.(string) + "!", nil
	})
	if mapped.IsCompleted() {
		t.Fatal("derived future should be pending while source is")
	}
	_ = future.Complete(func() (interface{}, error) { return "eddy", nil })
	val, err := mapped.Await(time.Second)
	if err != nil || val.(string) != "eddy!" {
		t.Fatalf("mapped future should complete with eddy!, got %v, %v", val, err)
	}
}

func TestMapErrorShortCircuit(t *testing.T) {
	e1 := errors.New("E1")
	future := completedFuture(nil, e1)

	ran := false
	mapped := future.Map(func(val interface{}) (interface{}, error) {
		ran = true
		return "x" + val.(string), nil
	})

	_, err := mapped.Await(time.Second)
	if err != e1 {
		t.Fatalf("derived future should carry the source error unchanged, got %v", err)
	}
	if ran {
		t.Error("transform should never run on an error result")
	}
}

func TestMapTransformError(t *testing.T) {
	e2 := errors.New("E2")
	future := completedFuture(2, nil)
	mapped := future.Map(func(val interface{}) (interface{}, error) {
		return nil, e2
	})
	_, err := mapped.Await(time.Second)
	if err != e2 {
		t.Fatalf("transform failure should become the derived error, got %v", err)
	}
}

func TestMapTransformPanic(t *testing.T) {
	future := completedFuture(2, nil)
	mapped := future.Map(func(val interface{}) (interface{}, error) {
		panic("kaboom")
	})
	_, err := mapped.Await(time.Second)
	if err == nil || !strings.Contains(err.Error(), "transform panic") {
		t.Fatalf("transform panic should become the derived error, got %v", err)
	}
}

func TestMapChain(t *testing.T) {
	future := completedFuture(1, nil)
	add := func(n int) func(interface{}) (interface{}, error) {
		return func(val interface{}) (interface{}, error) { return val.(int) + n, nil }
	}
	final := future.Map(add(1)).Map(add(10)).Map(add(100))
	val, err := final.Await(time.Second)
	if err != nil || val.(int) != 112 {
		t.Fatalf("chained maps should compose, got %v, %v", val, err)
	}
}

func TestReplaceFlatteningCompletedInner(t *testing.T) {
	future := completedFuture(5, nil)
	derived := future.Replace(func(val interface{}) (Future, error) {
		return completedFuture(val.(int)*2, nil), nil
	})
	val, err := derived.Await(time.Second)
	if err != nil || val.(int) != 10 {
		t.Fatalf("derived future should adopt the inner result, got %v, %v", val, err)
	}
}

func TestReplaceFlatteningPendingInner(t *testing.T) {
	inner := NewFuture(goExecutor{})
	future := completedFuture(5, nil)
	derived := future.Replace(func(val interface{}) (Future, error) {
		return inner, nil
	})
	if derived.IsCompleted() {
		t.Fatal("derived future should be pending while inner is")
	}
	_ = inner.Complete(func() (interface{}, error) { return "inner", nil })
	val, err := derived.Await(time.Second)
	if err != nil || val.(string) != "inner" {
		t.Fatalf("derived future should adopt the inner result, got %v, %v", val, err)
	}
}

func TestReplaceSourceErrorShortCircuit(t *testing.T) {
	e1 := errors.New("E1")
	future := completedFuture(nil, e1)
	ran := false
	derived := future.Replace(func(val interface{}) (Future, error) {
		ran = true
		return completedFuture("x", nil), nil
	})
	_, err := derived.Await(time.Second)
	if err != e1 {
		t.Fatalf("derived future should carry the source error unchanged, got %v", err)
	}
	if ran {
		t.Error("transform should never run on an error result")
	}
}

func TestReplaceTransformError(t *testing.T) {
	e2 := errors.New("E2")
	future := completedFuture(5, nil)
	derived := future.Replace(func(val interface{}) (Future, error) {
		return nil, e2
	})
	_, err := derived.Await(time.Second)
	if err != e2 {
		t.Fatalf("transform failure should become the derived error, got %v", err)
	}
}

func TestReplaceNilInnerFuture(t *testing.T) {
	future := completedFuture(5, nil)
	derived := future.Replace(func(val interface{}) (Future, error) {
		return nil, nil
	})
	_, err := derived.Await(time.Second)
	if err != ErrNilReplacement {
		t.Fatalf("nil inner future should fail with ErrNilReplacement, got %v", err)
	}
}

func TestChainedFutureCompleteRefused(t *testing.T) {
	future := NewFuture(goExecutor{})
	derived := future.Map(func(val interface{}) (interface{}, error) { return val, nil })
	err := derived.Complete(func() (interface{}, error) { return 2, nil })
	if err != ErrNotCompletable {
		t.Fatalf("derived future should refuse direct completion, got %v", err)
	}
}
