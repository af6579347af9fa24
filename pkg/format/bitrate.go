package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Bitrate formats a stream bitrate for display.
// Both bits per second and kilobits per second are accepted, since servers
// disagree on what icy-br means.
// Example: "128000" -> "128 kbps", "128" -> "128 kbps"
func Bitrate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if i := strings.IndexByte(raw, ','); i >= 0 {
		// some servers send "128,128"
		raw = raw[:i]
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return raw
	}
	if n >= 1000 {
		n = (n + 500) / 1000
	}
	return fmt.Sprintf("%d kbps", n)
}
