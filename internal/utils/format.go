package utils

import (
	"fmt"
	"math"
)

// roundFloat rounds a float64 to a specified number of decimal places.
func roundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// FormatFileSize renders a byte count for display, stepping through
// B/KB/MB/GB with two decimals.
func FormatFileSize(sizeBytes int64) string {
	size := float64(sizeBytes)
	for _, unit := range []string{"B", "KB", "MB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%g %s", roundFloat(size, 2), unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%g GB", roundFloat(size, 2))
}
