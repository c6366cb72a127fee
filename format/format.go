// Package format implements printf-style integer rendering for the
// runtime's sprintf support. It covers the numeric conversions d/i/u, o,
// x and X with space and zero padding; everything else lives in the
// surrounding formatting pipeline.
package format

import (
	"fmt"
	"math/big"
	"strings"
)

// NoPadding marks an unset padding argument.
const NoPadding = -1

// Integer renders value for the conversion character conv. spacePadding is
// the minimum total width, filled with leading spaces; zeroPadding is the
// minimum digit count, filled with leading zeros. Zero padding applies
// inside space padding. The result is ASCII bytes.
func Integer(conv byte, spacePadding, zeroPadding int, value int64) ([]byte, error) {
	digits, err := render(conv, big.NewInt(value))
	if err != nil {
		return nil, err
	}
	return pad(digits, spacePadding, zeroPadding), nil
}

// BigInteger renders an arbitrary-precision value like Integer.
func BigInteger(conv byte, spacePadding, zeroPadding int, value *big.Int) ([]byte, error) {
	digits, err := render(conv, value)
	if err != nil {
		return nil, err
	}
	return pad(digits, spacePadding, zeroPadding), nil
}

func render(conv byte, value *big.Int) (string, error) {
	switch conv {
	case 'd', 'i', 'u':
		return value.Text(10), nil
	case 'o':
		return value.Text(8), nil
	case 'x':
		return value.Text(16), nil
	case 'X':
		return strings.ToUpper(value.Text(16)), nil
	default:
		return "", fmt.Errorf("format: unsupported integer conversion %q", conv)
	}
}

func pad(digits string, spacePadding, zeroPadding int) []byte {
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	if zeroPadding != NoPadding {
		width := zeroPadding
		if neg {
			width-- // the sign counts against the digit field
		}
		for len(digits) < width {
			digits = "0" + digits
		}
	}
	if neg {
		digits = "-" + digits
	}
	if spacePadding != NoPadding {
		for len(digits) < spacePadding {
			digits = " " + digits
		}
	}
	return []byte(digits)
}
