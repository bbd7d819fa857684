package llm2

import "time"

// unixMillis returns t expressed as milliseconds since the Unix epoch, the
// granularity used throughout the wire formats this package parses.
func unixMillis(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}
