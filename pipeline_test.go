package twowaysort

import (
	"context"
	"math/rand"
	"time"

	"github.com/go-test/deep"
	"github.com/pingcap/check"
	"github.com/pkg/errors"
)

var _ = check.Suite(&pipelineTestSuite{})

type pipelineTestSuite struct{}

func (s *pipelineTestSuite) TestSort(c *check.C) {
	for _, t := range []struct {
		name   string
		input  []int64
		expect []int64
	}{
		{"empty", []int64{}, []int64{}},
		{"nil", nil, []int64{}},
		{"single", []int64{5}, []int64{5}},
		{"duplicates", []int64{2, 2, 1, 1}, []int64{1, 1, 2, 2}},
		{"all equal", []int64{4, 4, 4, 4, 4}, []int64{4, 4, 4, 4, 4}},
		{"reference", ReferenceInput(), []int64{-5, 2, 3, 4, 6, 7, 8, 12, 15, 18, 19}},
	} {
		got, err := Sort(t.input)
		c.Assert(err, check.IsNil)
		c.Assert(deep.Equal(got, t.expect), check.IsNil, check.Commentf("%s", t.name))
	}
}

func (s *pipelineTestSuite) TestSortLeavesInputAlone(c *check.C) {
	input := ReferenceInput()
	_, err := Sort(input)
	c.Assert(err, check.IsNil)
	c.Assert(input, check.DeepEquals, ReferenceInput())
}

func (s *pipelineTestSuite) TestIdempotent(c *check.C) {
	r := rand.New(rand.NewSource(7))
	for _, n := range []int{0, 1, 2, 3, 100, 1001} {
		once, err := Sort(CaseUniform(r, n))
		c.Assert(err, check.IsNil)
		twice, err := Sort(once)
		c.Assert(err, check.IsNil)
		c.Assert(deep.Equal(twice, once), check.IsNil)
	}
}

func (s *pipelineTestSuite) TestSortWithStats(c *check.C) {
	sorter, err := NewSorter(Config{Verify: true})
	c.Assert(err, check.IsNil)
	out, stats, err := sorter.SortWithStats(context.Background(), ReferenceInput())
	c.Assert(err, check.IsNil)
	c.Assert(out, check.HasLen, 11)
	c.Assert(stats.Left, check.Equals, Region{Start: 0, Length: 5})
	c.Assert(stats.Right, check.Equals, Region{Start: 5, Length: 6})
}

func (s *pipelineTestSuite) TestReusedSorter(c *check.C) {
	sorter, err := NewSorter(Config{MaxScratch: 64, Verify: true})
	c.Assert(err, check.IsNil)
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		_, err := sorter.Sort(context.Background(), CaseUniform(r, 64))
		c.Assert(err, check.IsNil)
	}
}

func (s *pipelineTestSuite) TestScratchExhausted(c *check.C) {
	sorter, err := NewSorter(Config{MaxScratch: 5})
	c.Assert(err, check.IsNil)
	out, err := sorter.Sort(context.Background(), ReferenceInput())
	c.Assert(errors.Cause(err), check.Equals, ErrScratchExhausted)
	c.Assert(out, check.IsNil)

	out, err = sorter.Sort(context.Background(), []int64{3, 1, 2})
	c.Assert(err, check.IsNil)
	c.Assert(out, check.DeepEquals, []int64{1, 2, 3})
}

func (s *pipelineTestSuite) TestWorkerPanic(c *check.C) {
	sorter, err := NewSorter(Config{}, WithAllocator(panicAllocator{}))
	c.Assert(err, check.IsNil)
	out, err := sorter.Sort(context.Background(), ReferenceInput())
	c.Assert(errors.Cause(err), check.Equals, ErrWorkerFailed)
	c.Assert(err, check.ErrorMatches, "mergePhase worker 0: boom.*")
	c.Assert(out, check.IsNil)
}

func (s *pipelineTestSuite) TestTimeoutAtMergeBarrier(c *check.C) {
	unblock := make(chan struct{})
	defer close(unblock)
	sorter, err := NewSorter(Config{Timeout: 20 * time.Millisecond},
		WithAllocator(blockingAllocator{Allocator: NewAllocator(0), unblock: unblock}))
	c.Assert(err, check.IsNil)

	out, err := sorter.Sort(context.Background(), ReferenceInput())
	c.Assert(errors.Cause(err), check.Equals, context.DeadlineExceeded)
	c.Assert(err, check.ErrorMatches, "waiting for mergePhase.*")
	c.Assert(out, check.IsNil)
}

func (s *pipelineTestSuite) TestCanceledBeforeStart(c *check.C) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sorter, err := NewSorter(Config{})
	c.Assert(err, check.IsNil)
	out, err := sorter.Sort(ctx, ReferenceInput())
	c.Assert(errors.Cause(err), check.Equals, context.Canceled)
	c.Assert(err, check.ErrorMatches, "sortPhase not started.*")
	c.Assert(out, check.IsNil)
}

func (s *pipelineTestSuite) TestInvalidConfig(c *check.C) {
	_, err := NewSorter(Config{MaxScratch: -1})
	c.Assert(err, check.NotNil)
}

func (s *pipelineTestSuite) TestMergeSortInPlace(c *check.C) {
	src := []int64{3, 2, 1}
	MergeSort(src)
	c.Assert(src, check.DeepEquals, []int64{1, 2, 3})
}

type panicAllocator struct{}

func (panicAllocator) Alloc(int) ([]int64, error) { panic("boom") }
func (panicAllocator) Release([]int64)           {}

type blockingAllocator struct {
	Allocator
	unblock chan struct{}
}

func (a blockingAllocator) Alloc(n int) ([]int64, error) {
	<-a.unblock
	return a.Allocator.Alloc(n)
}
