package protocol

import (
	"bytes"
	"strings"
)

// CString extracts a trimmed, null-terminated string from a fixed-size
// wire field. It returns ("", false) for an empty or all-whitespace field
// — beacons commonly zero-pad unused name/model fields.
func CString(b []byte) (string, bool) {
	nullPos := bytes.IndexByte(b, 0)
	if nullPos < 0 {
		nullPos = len(b)
	}
	s := strings.TrimSpace(string(b[:nullPos]))
	if s == "" {
		return "", false
	}
	return s, true
}
