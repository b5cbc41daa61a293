package utils

import (
	"runtime"
)

// Stack returns a formatted stack trace of the calling goroutine, skipping
// nothing on its own; skip only bounds the buffer growth loop.
func Stack(skip int) []byte {
	buf := make([]byte, 1024)
	for i := 0; i < skip+8; i++ {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			return buf[:n]
		}
		buf = make([]byte, 2*len(buf))
	}
	return buf
}
