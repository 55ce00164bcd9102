package value

import "strconv"

// formatNumber renders a float64 the way Dioscript's textual output should:
// integral values print without a trailing ".0" (matching the original
// Rust implementation's `Display` for f64, which relies on Rust's own
// shortest round-trip formatting and happens to drop the fractional part
// for whole numbers in that formatter's chosen precision).
func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
