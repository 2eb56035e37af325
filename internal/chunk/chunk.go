// Package chunk splits slices into fixed size groups.
package chunk

import "errors"

// ErrInvalidSize is returned when the requested group size is not positive.
var ErrInvalidSize = errors.New("chunk: size must be positive")

// Chunk splits items into consecutive groups of size elements. The last group
// holds the remainder. Each group is a capped sub-slice of items.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	groups := make([][]T, 0, Count(len(items), size))
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		groups = append(groups, items[start:end:end])
	}
	return groups, nil
}

// Count returns the number of groups Chunk would produce.
func Count(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	count := n / size
	if n%size != 0 {
		count++
	}
	return count
}
