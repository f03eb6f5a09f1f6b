package utils

import (
	"math"
	"strconv"
)

// FormatThousands renders a distance or amount with dot thousand separators,
// e.g. 1234567 -> "1.234.567". Fractions are rounded away.
func FormatThousands(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "." + s[i:]
	}

	if neg {
		return "-" + s
	}
	return s
}
