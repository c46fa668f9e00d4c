package loop

import (
	"math"
	"strconv"
	"strings"
)

// cutTolerance is the absolute window (seconds) around zero inside which a
// normalized cut is treated as "no rotation needed".
const cutTolerance = 1e-6

// NormalizeCut maps a raw cut value onto [0, duration) using floored modulo,
// so negative values count back from the end (-2 with duration 10 yields 8).
// The second return value reports the no-op case: duration is not positive,
// or the normalized offset sits within cutTolerance of zero. Non-finite raw
// values fail with ErrInvalidCut.
func NormalizeCut(raw, duration float64) (float64, bool, error) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false, Wrap(ErrInvalidCut, "normalize", "cut seconds must be a finite number", nil)
	}
	if duration <= 0 {
		return 0, true, nil
	}
	cut := math.Mod(raw, duration)
	if cut < 0 {
		cut += duration
	}
	if cut <= cutTolerance {
		return 0, true, nil
	}
	return cut, false, nil
}

// formatSeconds renders a timestamp for ffmpeg arguments: six decimal places
// with trailing zeros and a dangling decimal point stripped.
func formatSeconds(value float64) string {
	text := strconv.FormatFloat(value, 'f', 6, 64)
	text = strings.TrimRight(text, "0")
	text = strings.TrimRight(text, ".")
	if text == "" {
		return "0"
	}
	return text
}
