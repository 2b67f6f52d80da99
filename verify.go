package twowaysort

import (
	"encoding/binary"

	"github.com/pingcap/tidb/util/mvmap"
	"github.com/pkg/errors"
)

// Verify checks that out is in ascending order and holds exactly the values
// of in, each as many times as in has it.
func Verify(in, out []int64) error {
	if len(in) != len(out) {
		return errors.Wrapf(ErrInvariant, "output has %d elements, input has %d", len(out), len(in))
	}
	for i := 1; i < len(out); i++ {
		if out[i-1] > out[i] {
			return errors.Wrapf(ErrInvariant, "output not sorted at %d: %d > %d", i, out[i-1], out[i])
		}
	}

	hashtable := buildCountTable(in)
	var keyBuffer [8]byte
	var vals [][]byte
	// out is sorted, so equal values form runs.
	for i := 0; i < len(out); {
		j := i + 1
		for j < len(out) && out[j] == out[i] {
			j++
		}
		binary.BigEndian.PutUint64(keyBuffer[:], uint64(out[i]))
		vals = hashtable.Get(keyBuffer[:], vals[:0])
		if len(vals) != j-i {
			return errors.Wrapf(ErrInvariant, "value %d appears %d times in output, %d in input", out[i], j-i, len(vals))
		}
		i = j
	}
	return nil
}

// buildCountTable stores every position of in under its value, so Get on a
// value returns one entry per occurrence.
func buildCountTable(in []int64) *mvmap.MVMap {
	var keyBuffer, valBuffer [8]byte
	hashtable := mvmap.NewMVMap()
	for i, v := range in {
		binary.BigEndian.PutUint64(keyBuffer[:], uint64(v))
		binary.BigEndian.PutUint64(valBuffer[:], uint64(i))
		hashtable.Put(keyBuffer[:], valBuffer[:])
	}
	return hashtable
}
