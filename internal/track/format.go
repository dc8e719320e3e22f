package track

import (
	"fmt"
	"strings"
)

// DefaultFormat is the duration template used when none is given.
const DefaultFormat = "{hh}:{mm}:{ss}"

// FormatDuration substitutes the hour/minute/second placeholders into the
// template. {hh} {mm} {ss} are zero-padded to two digits, {h} {m} {s} are
// not.
func FormatDuration(format string, hours, minutes, seconds int64) string {
	replacer := strings.NewReplacer(
		"{hh}", fmt.Sprintf("%02d", hours),
		"{mm}", fmt.Sprintf("%02d", minutes),
		"{ss}", fmt.Sprintf("%02d", seconds),
		"{h}", fmt.Sprintf("%d", hours),
		"{m}", fmt.Sprintf("%d", minutes),
		"{s}", fmt.Sprintf("%d", seconds),
	)
	return replacer.Replace(format)
}
