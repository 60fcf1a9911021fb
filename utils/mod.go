package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove returns slice without the first occurrence of item, preserving order.
// The backing array is reused.
func Remove[T comparable](slice []T, item T) []T {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice
	}
	return append(slice[:i], slice[i+1:]...)
}

// AppendUnique appends items not already present in slice.
func AppendUnique[T comparable](slice []T, items ...T) []T {
	for _, item := range items {
		if FindIndex(slice, item) < 0 {
			slice = append(slice, item)
		}
	}
	return slice
}
