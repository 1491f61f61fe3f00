package session

import (
	"fmt"
	"math"
)

// ZeroTime is shown when no valid time is available.
const ZeroTime = "00:00"

// FormatTime formats seconds as mm:ss. Fractions are truncated, and invalid
// or negative values fall back to ZeroTime.
func FormatTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return ZeroTime
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
