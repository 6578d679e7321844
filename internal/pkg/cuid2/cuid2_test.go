package cuid2

import (
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int64
		expected string
	}{
		{"Zero timestamp", 0, "000000"},
		{"One second", 1, "000001"},
		{"62 seconds", 62, "000010"},
		{"One minute", 60, "00000y"},
		{"One hour", 3600, "0000w4"},
		{"One day", 86400, "000MTY"},
		{"2024-01-01", 1704067200, "1rK5iq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EncodeTimestamp(tt.seconds))
		})
	}
}

func TestRandomString(t *testing.T) {
	valid := regexp.MustCompile(`^[0-9A-Za-z]+$`)

	for _, n := range []int{1, 8, 16, 64} {
		s := RandomString(n)
		assert.Len(t, s, n)
		assert.Regexp(t, valid, s)
	}

	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		s := RandomString(DefaultRandomLength)
		_, dup := seen[s]
		require.False(t, dup, "duplicate id %s", s)
		seen[s] = struct{}{}
	}
}

func TestNew(t *testing.T) {
	id := New("req")
	assert.Regexp(t, regexp.MustCompile(`^req_[0-9A-Za-z]{22}$`), id)

	assert.Len(t, New(""), 6+DefaultRandomLength)
}

func TestNewAtSortsByTime(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ids := []string{
		NewAt("req", base.Add(2*time.Hour)),
		NewAt("req", base),
		NewAt("req", base.Add(time.Minute)),
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, sorted)
}
