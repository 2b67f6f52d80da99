package twowaysort

import (
	"math/rand"
	"sort"

	"github.com/pkg/errors"
)

// referenceInput is the sequence the pipeline is demonstrated on.
var referenceInput = []int64{7, 12, 19, 3, 18, 4, 2, -5, 6, 15, 8}

// ReferenceInput returns a fresh copy of the reference sequence.
func ReferenceInput() []int64 {
	seq := make([]int64, len(referenceInput))
	copy(seq, referenceInput)
	return seq
}

// CaseGenF generates an input sequence of n elements.
type CaseGenF func(r *rand.Rand, n int) []int64

// AllCaseGenFs returns all CaseGenFs used to test.
func AllCaseGenFs() []CaseGenF {
	var gs []CaseGenF
	gs = append(gs, genUniformCases()...)
	gs = append(gs, genPercentCases()...)
	gs = append(gs, CaseAllEqual, CaseAscending, CaseDescending)
	return gs
}

// CaseGen looks a generator up by the name the command line uses.
func CaseGen(name string) (CaseGenF, error) {
	switch name {
	case "uniform":
		return CaseUniform, nil
	case "skewed":
		return func(r *rand.Rand, n int) []int64 {
			return percentGen(r, n, makePercents(100, 0.5, 0.25, 0.125))
		}, nil
	case "equal":
		return CaseAllEqual, nil
	case "asc":
		return CaseAscending, nil
	case "desc":
		return CaseDescending, nil
	}
	return nil, errors.Errorf("unknown generator %q", name)
}

func genUniformCases() []CaseGenF {
	cardinalities := []int{2, 3, 7, 11, 200, 10000}
	gs := make([]CaseGenF, 0, len(cardinalities))
	for _, card := range cardinalities {
		gs = append(gs, func(r *rand.Rand, n int) []int64 {
			return uniformGen(r, n, card)
		})
	}
	return gs
}

func genPercentCases() []CaseGenF {
	ps := []struct {
		l int
		p []float64
	}{
		{11, []float64{0.9, 0.09, 0.009, 0.0009}},
		{10000, []float64{0.5, 0.4}},
		{10000, []float64{0.3, 0.3, 0.3}},
	}
	gs := make([]CaseGenF, 0, len(ps))
	for _, p := range ps {
		gs = append(gs, func(r *rand.Rand, n int) []int64 {
			return percentGen(r, n, makePercents(p.l, p.p...))
		})
	}
	return gs
}

// CaseUniform draws every element from the whole int64 range, negatives
// included.
func CaseUniform(r *rand.Rand, n int) []int64 {
	seq := make([]int64, n)
	for i := range seq {
		seq[i] = int64(r.Uint64())
	}
	return seq
}

// CaseAllEqual repeats a single value.
func CaseAllEqual(r *rand.Rand, n int) []int64 {
	v := r.Int63n(1000) - 500
	seq := make([]int64, n)
	for i := range seq {
		seq[i] = v
	}
	return seq
}

// CaseAscending is already sorted.
func CaseAscending(r *rand.Rand, n int) []int64 {
	seq := CaseUniform(r, n)
	sort.Slice(seq, func(i, j int) bool { return seq[i] < seq[j] })
	return seq
}

// CaseDescending is sorted backwards.
func CaseDescending(r *rand.Rand, n int) []int64 {
	seq := CaseUniform(r, n)
	sort.Slice(seq, func(i, j int) bool { return seq[i] > seq[j] })
	return seq
}

func makePercents(length int, prefix ...float64) []float64 {
	percents := make([]float64, 0, length)
	percents = append(percents, prefix...)

	var sum float64
	for _, p := range prefix {
		sum += p
	}
	if sum > 1 || len(prefix) > length {
		panic("invalid prefix")
	}

	x := (1 - sum) / float64(length-len(prefix))
	for i := 0; i < length-len(prefix); i++ {
		percents = append(percents, x)
	}
	return percents
}

// percentGen draws from len(percents) distinct values, value i showing up
// with probability percents[i].
func percentGen(r *rand.Rand, n int, percents []float64) []int64 {
	values := randomNValues(r, len(percents))
	accumulate := make([]float64, len(percents)+1)
	for i := range percents {
		accumulate[i+1] = accumulate[i] + percents[i]
	}

	seq := make([]int64, n)
	for i := range seq {
		idx := sort.SearchFloat64s(accumulate, r.Float64())
		if idx != 0 {
			idx--
		}
		if idx >= len(values) {
			idx = len(values) - 1
		}
		seq[i] = values[idx]
	}
	return seq
}

func uniformGen(r *rand.Rand, n, cardinality int) []int64 {
	values := randomNValues(r, cardinality)
	seq := make([]int64, n)
	for i := range seq {
		seq[i] = values[r.Intn(len(values))]
	}
	return seq
}

func randomNValues(r *rand.Rand, n int) []int64 {
	m := make(map[int64]struct{}, n)
	for len(m) < n {
		m[int64(r.Uint64())] = struct{}{}
	}
	values := make([]int64, 0, len(m))
	for v := range m {
		values = append(values, v)
	}
	// map order is random; keep output reproducible for a seeded r.
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	return values
}
