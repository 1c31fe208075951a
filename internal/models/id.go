package models

import (
	"fmt"
	"math/rand"
	"time"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}

// NewID returns a fresh entity identifier. The millisecond prefix keeps ids
// roughly ordered by creation time; the suffix breaks ties within the same
// millisecond.
func NewID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), randomString(6))
}

// stampLayout is RFC 3339 with a fixed-width fraction. RFC3339Nano trims
// trailing zeros, which breaks lexicographic ordering of stamps; this
// layout keeps string comparison consistent with time order.
const stampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Timestamp returns the current instant as an ISO-8601 string. Nanosecond
// precision so that two consecutive mutations never share a stamp.
func Timestamp() string {
	return time.Now().UTC().Format(stampLayout)
}
