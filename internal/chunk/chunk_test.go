package chunk

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		size     int
		expected [][]int
	}{
		{
			name:     "seven into fives",
			items:    []int{1, 2, 3, 4, 5, 6, 7},
			size:     5,
			expected: [][]int{{1, 2, 3, 4, 5}, {6, 7}},
		},
		{
			name:     "evenly divisible",
			items:    []int{1, 2, 3, 4},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:     "size larger than input",
			items:    []int{1, 2},
			size:     5,
			expected: [][]int{{1, 2}},
		},
		{
			name:     "empty input",
			items:    []int{},
			size:     5,
			expected: [][]int{},
		},
		{
			name:     "maximum size",
			items:    []int{1, 2, 3},
			size:     math.MaxInt,
			expected: [][]int{{1, 2, 3}},
		},
		{
			name:     "nil input",
			items:    nil,
			size:     3,
			expected: [][]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Chunk(tt.items, tt.size)
			if err != nil {
				t.Fatalf("Chunk failed: %v", err)
			}
			if got == nil {
				t.Fatal("Expected non-nil outer slice")
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestChunkIsLosslessPartition(t *testing.T) {
	items := make([]int, 23)
	for i := range items {
		items[i] = i
	}

	for size := 1; size <= 25; size++ {
		groups, err := Chunk(items, size)
		if err != nil {
			t.Fatalf("Chunk(size=%d) failed: %v", size, err)
		}
		if len(groups) != Count(len(items), size) {
			t.Errorf("size %d: expected %d groups, got %d", size, Count(len(items), size), len(groups))
		}

		var flat []int
		for i, g := range groups {
			if i < len(groups)-1 && len(g) != size {
				t.Errorf("size %d: group %d has length %d", size, i, len(g))
			}
			flat = append(flat, g...)
		}
		if !reflect.DeepEqual(flat, items) {
			t.Errorf("size %d: concatenation differs from input", size)
		}
	}
}

func TestChunkGroupsDoNotAlias(t *testing.T) {
	groups, err := Chunk([]string{"a", "b", "c", "d"}, 2)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	_ = append(groups[0], "x")
	if groups[1][0] != "c" {
		t.Errorf("Expected second group to be untouched, got %v", groups[1])
	}
}

func TestChunkInvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		_, err := Chunk([]int{1}, size)
		if !errors.Is(err, ErrInvalidSize) {
			t.Errorf("size %d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		n, size  int
		expected int
	}{
		{n: 7, size: 5, expected: 2},
		{n: 10, size: 5, expected: 2},
		{n: 0, size: 5, expected: 0},
		{n: 3, size: 0, expected: 0},
		{n: 3, size: math.MaxInt, expected: 1},
		{n: math.MaxInt, size: math.MaxInt, expected: 1},
		{n: math.MaxInt, size: 2, expected: math.MaxInt/2 + 1},
	}

	for _, tt := range tests {
		if got := Count(tt.n, tt.size); got != tt.expected {
			t.Errorf("Count(%d, %d) = %d, expected %d", tt.n, tt.size, got, tt.expected)
		}
	}
}
