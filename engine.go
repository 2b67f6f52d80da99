package twowaysort

// mergeFunc merges the sorted runs arr[start:mid+1] and arr[mid+1:end+1] into
// scratch[start:end+1]. When two elements compare equal the right run is taken
// first, so the merge is not stable across the two runs. Leftovers of whichever
// run is not exhausted are copied in order.
func mergeFunc[E any](arr, scratch []E, start, mid, end int, less func(a, b E) bool) {
	i, j, k := start, mid+1, start
	for i <= mid && j <= end {
		if less(arr[i], arr[j]) {
			scratch[k] = arr[i]
			i++
		} else {
			scratch[k] = arr[j]
			j++
		}
		k++
	}
	for i <= mid {
		scratch[k] = arr[i]
		i++
		k++
	}
	for j <= end {
		scratch[k] = arr[j]
		j++
		k++
	}
}

// mergeSortFunc sorts arr[start:end+1] in place. scratch must be at least
// end+1 long; only scratch[start:end+1] is written.
func mergeSortFunc[E any](arr, scratch []E, start, end int, less func(a, b E) bool) {
	if start >= end {
		return
	}
	mid := start + (end-start)/2
	mergeSortFunc(arr, scratch, start, mid, less)
	mergeSortFunc(arr, scratch, mid+1, end, less)
	mergeFunc(arr, scratch, start, mid, end, less)
	copy(arr[start:end+1], scratch[start:end+1])
}

func lessInt64(a, b int64) bool { return a < b }

// Merge merges the sorted halves arr[start:mid+1] and arr[mid+1:end+1] into
// scratch over the same indices.
func Merge(arr, scratch []int64, start, mid, end int) {
	mergeFunc(arr, scratch, start, mid, end, lessInt64)
}

// MergeSortRange sorts arr[start:end+1] into ascending order using scratch
// as merge space. It is the sequential engine every worker runs.
func MergeSortRange(arr, scratch []int64, start, end int) {
	mergeSortFunc(arr, scratch, start, end, lessInt64)
}
