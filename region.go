package twowaysort

import (
	"fmt"

	"github.com/pkg/errors"
)

// Region is a contiguous span [Start, Start+Length) of a sequence. The task
// holding a Region is the only one allowed to touch that span.
type Region struct {
	Start  int
	Length int
}

// End returns the exclusive end offset.
func (r Region) End() int { return r.Start + r.Length }

// Last returns the inclusive end offset, Start-1 for an empty region.
func (r Region) Last() int { return r.Start + r.Length - 1 }

// Empty reports whether the region covers no element.
func (r Region) Empty() bool { return r.Length == 0 }

func (r Region) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

// view clips seq to the region. The capacity is clipped as well, so appending
// to the view can't spill into a neighbouring span.
func (r Region) view(seq []int64) []int64 {
	return seq[r.Start:r.End():r.End()]
}

func (r Region) overlaps(o Region) bool {
	return r.Start < o.End() && o.Start < r.End()
}

// Partition splits a sequence of length n into two contiguous halves. The
// left half gets floor(n/2) elements and the right half the rest.
func Partition(n int) (left, right Region) {
	left = Region{Start: 0, Length: n / 2}
	right = Region{Start: left.End(), Length: n - left.Length}
	return left, right
}

// checkPartition asserts that left and right tile [0, n) without a gap or
// an overlap.
func checkPartition(left, right Region, n int) error {
	switch {
	case left.Start != 0 || left.Length < 0 || right.Length < 0:
		return errors.Wrapf(ErrInvariant, "partition %v %v: negative or shifted region", left, right)
	case left.overlaps(right):
		return errors.Wrapf(ErrInvariant, "partition %v %v: regions overlap", left, right)
	case left.End() != right.Start:
		return errors.Wrapf(ErrInvariant, "partition %v %v: gap between regions", left, right)
	case right.End() != n:
		return errors.Wrapf(ErrInvariant, "partition %v %v: does not cover %d elements", left, right, n)
	}
	return nil
}
