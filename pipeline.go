package twowaysort

import (
	"context"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Stats describes one run of the pipeline.
type Stats struct {
	Left, Right Region
	SortPhase   time.Duration
	MergePhase  time.Duration
}

// Sorter runs the two-way parallel merge sort: two workers sort the halves
// of the input, then a third merges them once both have finished.
type Sorter struct {
	cfg   Config
	alloc Allocator
}

// Option customizes a Sorter.
type Option func(*Sorter)

// WithAllocator replaces the default scratch allocator.
func WithAllocator(a Allocator) Option {
	return func(s *Sorter) { s.alloc = a }
}

// NewSorter creates a Sorter from cfg.
func NewSorter(cfg Config, opts ...Option) (*Sorter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Sorter{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.alloc == nil {
		s.alloc = NewAllocator(cfg.MaxScratch)
	}
	return s, nil
}

// Sort returns a new slice holding the elements of seq in ascending order.
// seq itself is left untouched.
func (s *Sorter) Sort(ctx context.Context, seq []int64) ([]int64, error) {
	out, _, err := s.SortWithStats(ctx, seq)
	return out, err
}

// SortWithStats is Sort, also reporting how the run went. On error the
// returned slice is nil; no partial result is ever exposed.
func (s *Sorter) SortWithStats(ctx context.Context, seq []int64) ([]int64, *Stats, error) {
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	n := len(seq)
	input := make([]int64, n)
	copy(input, seq)
	out := make([]int64, n)

	left, right := Partition(n)
	if err := checkPartition(left, right, n); err != nil {
		glog.Errorf("%+v", err)
		return nil, nil, err
	}
	stats := &Stats{Left: left, Right: right}
	glog.V(1).Infof("partitioned %d elements into %v and %v", n, left, right)

	tasks := []SortTask{
		{Region: left, seq: input, scratch: out},
		{Region: right, seq: input, scratch: out},
	}
	sorted := make([]sortedRegion, len(tasks))
	begin := time.Now()
	err := runPhase(ctx, sortPhase, len(tasks), func(i int) error {
		sorted[i] = tasks[i].run()
		return nil
	})
	if err != nil {
		glog.Errorf("%+v", err)
		return nil, nil, err
	}
	stats.SortPhase = time.Since(begin)
	glog.V(1).Infof("%s finished in %v", sortPhase, stats.SortPhase)

	merge := MergeTask{Left: sorted[0], Right: sorted[1], seq: input, out: out, alloc: s.alloc}
	begin = time.Now()
	err = runPhase(ctx, mergePhase, 1, func(int) error {
		return merge.run()
	})
	if err != nil {
		glog.Errorf("%+v", err)
		return nil, nil, err
	}
	stats.MergePhase = time.Since(begin)
	glog.V(1).Infof("%s finished in %v", mergePhase, stats.MergePhase)

	if s.cfg.Verify {
		if err := Verify(seq, out); err != nil {
			glog.Errorf("%+v", err)
			return nil, nil, err
		}
	}
	return out, stats, nil
}

// runPhase starts n workers and blocks until all of them are done. It
// returns the first worker error, or the context error if ctx ends first.
// In the latter case the workers keep running on buffers nobody reads.
func runPhase(ctx context.Context, p phase, n int, work func(i int) error) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrapf(err, "%s not started", p)
	}
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Wrapf(ErrWorkerFailed, "%s worker %d: %v", p, i, r)
				}
			}()
			return work(i)
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return errors.Wrapf(ctx.Err(), "waiting for %s", p)
	}
}

// Sort sorts seq with a fresh default Sorter.
func Sort(seq []int64) ([]int64, error) {
	s, err := NewSorter(Config{})
	if err != nil {
		return nil, err
	}
	return s.Sort(context.Background(), seq)
}

// MergeSort sorts src in place. It panics if the pipeline fails.
func MergeSort(src []int64) {
	out, err := Sort(src)
	if err != nil {
		panic(err)
	}
	copy(src, out)
}
