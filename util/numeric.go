package util

import (
	"github.com/samber/lo"
	"golang.org/x/exp/constraints"
)

// Max is the largest of items, or the zero value when there are none.
func Max[T constraints.Ordered](items ...T) T {
	return lo.Max(items)
}

// Min is the smallest of items, or the zero value when there are none.
func Min[T constraints.Ordered](items ...T) T {
	return lo.Min(items)
}

// Clamp bounds v to [low, high].
func Clamp[T constraints.Ordered](v, low, high T) T {
	return Max(low, Min(v, high))
}
