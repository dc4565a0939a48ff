package mathx

import "golang.org/x/exp/constraints"

// Clamp bounds v to the closed range spanned by a and b, in either order.
func Clamp[T constraints.Ordered](v, a, b T) T {
	lo, hi := Min(a, b), Max(a, b)
	return Min(Max(v, lo), hi)
}

// Between reports whether v lies in the closed range spanned by a and b.
func Between[T constraints.Ordered](v, a, b T) bool {
	return Clamp(v, a, b) == v
}

func Min[T constraints.Ordered](a, b T) T {
	if b < a {
		return b
	}
	return a
}

func Max[T constraints.Ordered](a, b T) T {
	if b > a {
		return b
	}
	return a
}
