package scene

import "sync/atomic"

var lastInstanceID atomic.Int64

// nextInstanceID hands out process-unique ids. They are not stable across runs.
func nextInstanceID() int64 {
	return lastInstanceID.Add(1)
}
