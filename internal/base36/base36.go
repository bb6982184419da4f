// Package base36 decodes the digit encoding shared by the SUS and UGC chart
// formats: 0-9 then a-z (either case), most significant digit first.
package base36

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Digit returns the value of a single base-36 digit.
func Digit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Decode parses s as a base-36 number into T, failing on an empty string,
// a non-digit or overflow of T.
func Decode[T constraints.Unsigned](s string) (T, error) {
	if s == "" {
		return 0, fmt.Errorf("empty base-36 number")
	}
	limit := maxOf[T]()
	var n uint64
	for i := 0; i < len(s); i++ {
		d, ok := Digit(s[i])
		if !ok {
			return 0, fmt.Errorf("invalid base-36 digit %q at position %d", s[i], i)
		}
		if n > (limit-uint64(d))/36 {
			return 0, fmt.Errorf("base-36 number %q overflows", s)
		}
		n = n*36 + uint64(d)
	}
	return T(n), nil
}

func maxOf[T constraints.Unsigned]() uint64 {
	var zero T
	return uint64(^zero)
}
