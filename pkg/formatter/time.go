package formatter

import (
	"fmt"
	"time"
)

// nowFunc is swapped by tests
var nowFunc = time.Now

// TimeAgo converts a nanosecond-resolution backend timestamp into a
// human-readable relative string
func TimeAgo(timestampNanos int64) string {
	seconds := int64(nowFunc().Sub(time.Unix(0, timestampNanos)).Seconds())

	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		m := seconds / 60
		return fmt.Sprintf("%d %s ago", m, plural(m, "min", "mins"))
	case seconds < 86400:
		h := seconds / 3600
		return fmt.Sprintf("%d %s ago", h, plural(h, "hour", "hours"))
	case seconds < 86400*7:
		d := seconds / 86400
		return fmt.Sprintf("%d %s ago", d, plural(d, "day", "days"))
	case seconds < 86400*30:
		w := seconds / (86400 * 7)
		return fmt.Sprintf("%d %s ago", w, plural(w, "week", "weeks"))
	default:
		mo := seconds / (86400 * 30)
		return fmt.Sprintf("%d %s ago", mo, plural(mo, "month", "months"))
	}
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
