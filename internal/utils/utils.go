package utils

import "cmp"

func Argmax[T cmp.Ordered](arr []T) (argmax int) {
	for i := range arr {
		if cmp.Compare(arr[i], arr[argmax]) == 1 {
			argmax = i
		}
	}
	return
}

// IsSorted reports whether arr is non-decreasing.
func IsSorted[T cmp.Ordered](arr []T) bool {
	for i := 1; i < len(arr); i++ {
		if cmp.Less(arr[i], arr[i-1]) {
			return false
		}
	}
	return true
}
