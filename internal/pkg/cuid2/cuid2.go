// Package cuid2 generates short, time-sortable, URL-safe identifiers used as
// request IDs.
package cuid2

import (
	"crypto/rand"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultRandomLength is the random suffix length of New.
const DefaultRandomLength = 16

// EncodeTimestamp encodes Unix seconds as a 6-character base62 string.
// Output sorts lexically in time order up to roughly the year 3700.
func EncodeTimestamp(seconds int64) string {
	out := make([]byte, 6)
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = alphabet[seconds%62]
		seconds /= 62
	}
	return string(out)
}

// RandomString returns n uniformly distributed base62 characters from
// crypto/rand. Bytes >= 248 are rejected so that modulo 62 stays uniform.
func RandomString(n int) string {
	var b strings.Builder
	b.Grow(n)

	buf := make([]byte, n+n/8+4)
	for b.Len() < n {
		if _, err := rand.Read(buf); err != nil {
			panic("cuid2: failed to read random bytes: " + err.Error())
		}
		for _, c := range buf {
			if c >= 248 {
				continue
			}
			b.WriteByte(alphabet[c%62])
			if b.Len() == n {
				break
			}
		}
	}
	return b.String()
}

// New returns prefix + "_" + a timestamp + DefaultRandomLength random characters.
// An empty prefix omits the separator.
func New(prefix string) string {
	return NewAt(prefix, time.Now())
}

// NewAt is New with an explicit clock reading.
func NewAt(prefix string, t time.Time) string {
	id := EncodeTimestamp(t.Unix()) + RandomString(DefaultRandomLength)
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}
