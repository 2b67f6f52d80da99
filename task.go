package twowaysort

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// phase indicates whether a task belongs to the sort or the merge stage.
type phase string

const (
	sortPhase  phase = "sortPhase"
	mergePhase phase = "mergePhase"
)

// SortTask gives a sort worker exclusive use of one region of the input
// sequence and of the same region of the output sequence, which serves as
// merge scratch.
type SortTask struct {
	Region Region

	seq     []int64
	scratch []int64
}

// sortedRegion is a Region whose elements a sort worker has put in order.
// Only a finished SortTask produces one, so a MergeTask can't be built from
// regions that are still being sorted.
type sortedRegion struct {
	Region
}

func (t SortTask) run() sortedRegion {
	glog.V(2).Infof("%s: sorting %v", sortPhase, t.Region)
	if !t.Region.Empty() {
		arr := t.Region.view(t.seq)
		MergeSortRange(arr, t.Region.view(t.scratch), 0, len(arr)-1)
	}
	glog.V(2).Infof("%s: %v done", sortPhase, t.Region)
	return sortedRegion{t.Region}
}

// MergeTask combines the two sorted halves of the input sequence into the
// output sequence.
type MergeTask struct {
	Left, Right sortedRegion

	seq   []int64
	out   []int64
	alloc Allocator
}

func (t MergeTask) span() Region {
	return Region{Start: t.Left.Start, Length: t.Left.Length + t.Right.Length}
}

func (t MergeTask) run() error {
	span := t.span()
	glog.V(2).Infof("%s: merging %v and %v", mergePhase, t.Left.Region, t.Right.Region)
	if span.Empty() {
		return nil
	}
	tmp, err := t.alloc.Alloc(span.Length)
	if err != nil {
		return errors.WithMessagef(err, "%s %v", mergePhase, span)
	}
	defer t.alloc.Release(tmp)

	// Indices are relative to span.Start from here on.
	Merge(span.view(t.seq), tmp, 0, t.Left.Length-1, span.Length-1)
	copy(span.view(t.out), tmp)
	glog.V(2).Infof("%s: %v done", mergePhase, span)
	return nil
}
