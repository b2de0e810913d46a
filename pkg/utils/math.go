package utils

import "golang.org/x/exp/constraints"

// HalfCarryAdd reports whether a + b carries out of bit 3.
func HalfCarryAdd(a, b uint8) bool {
	return (a&0xF)+(b&0xF) > 0xF
}

// HalfCarrySub reports whether a - b borrows from bit 4.
func HalfCarrySub(a, b uint8) bool {
	return (b & 0xF) > (a & 0xF)
}

// OverflowAdd reports whether a + b overflows T. The check is done
// against the maximum of T rather than in a wider type, so it holds
// for uint8 and uint16 alike.
func OverflowAdd[T constraints.Unsigned](a, b T) bool {
	return a > (^T(0) - b)
}

// UnderflowSub reports whether a - b underflows T.
func UnderflowSub[T constraints.Unsigned](a, b T) bool {
	return b > a
}
