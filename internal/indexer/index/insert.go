package index

import "slices"

// InsertLast moves the final element of occs into its place among the
// already sorted elements before it, locating the spot by binary search.
// It returns the reordered list and the midpoints probed, in probe order.
// A list of length one (or zero) is returned as is with no probes.
//
// A new occurrence whose frequency equals a probed entry is inserted at that
// probe, so among equal frequencies the new entry's position depends on the
// search path rather than on arrival order.
func InsertLast(occs OccurrenceList) (OccurrenceList, []int) {
	if len(occs) <= 1 {
		return occs, nil
	}
	val := occs[len(occs)-1]
	occs = occs[:len(occs)-1]

	begin, end := 0, len(occs)-1
	probes := make([]int, 0, 8)
	for begin <= end {
		mid := (begin + end) / 2
		probes = append(probes, mid)
		switch {
		case val.Frequency == occs[mid].Frequency:
			return slices.Insert(occs, mid, val), probes
		case val.Frequency > occs[mid].Frequency:
			end = mid - 1
		default:
			begin = mid + 1
		}
	}
	return slices.Insert(occs, begin, val), probes
}
