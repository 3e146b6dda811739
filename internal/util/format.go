package util

import (
	"fmt"
	"math"
	"strconv"
)

// FormatTiles formats a mesh resolution as XxY.
func FormatTiles(x, y int) string {
	return fmt.Sprintf("%d×%d", x, y)
}

// FormatFloat formats a tuning value rounded to two decimals, without
// trailing zeros.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
