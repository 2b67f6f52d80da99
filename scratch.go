package twowaysort

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Allocator hands out scratch buffers for the merge steps. Every buffer
// obtained from Alloc that is not returned to the caller must be handed back
// with Release.
type Allocator interface {
	Alloc(n int) ([]int64, error)
	Release(buf []int64)
}

// poolAllocator recycles buffers through a sync.Pool and optionally caps the
// number of elements that may be live at once.
type poolAllocator struct {
	pool sync.Pool

	mu    sync.Mutex
	max   int // 0 means unlimited
	inUse int
}

// NewAllocator returns the default Allocator. max caps the number of int64
// elements handed out and not yet released; 0 disables the cap.
func NewAllocator(max int) Allocator {
	return &poolAllocator{max: max}
}

func (a *poolAllocator) Alloc(n int) (buf []int64, err error) {
	if n < 0 {
		return nil, errors.Wrapf(ErrScratchExhausted, "negative scratch size %d", n)
	}
	if err := a.reserve(n); err != nil {
		return nil, err
	}
	defer func() {
		// make panics rather than returning nil when the size can't be served.
		if r := recover(); r != nil {
			a.unreserve(n)
			buf, err = nil, errors.Wrap(ErrScratchExhausted, fmt.Sprint(r))
		}
	}()
	if p, ok := a.pool.Get().(*[]int64); ok && cap(*p) >= n {
		return (*p)[:n], nil
	}
	return make([]int64, n), nil
}

func (a *poolAllocator) Release(buf []int64) {
	if buf == nil {
		return
	}
	a.unreserve(len(buf))
	a.pool.Put(&buf)
}

func (a *poolAllocator) reserve(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.max > 0 && a.inUse+n > a.max {
		return errors.Wrapf(ErrScratchExhausted, "need %d elements, %d of %d in use", n, a.inUse, a.max)
	}
	a.inUse += n
	return nil
}

func (a *poolAllocator) unreserve(n int) {
	a.mu.Lock()
	a.inUse -= n
	a.mu.Unlock()
}
