package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var reference = time.Date(2024, 7, 10, 15, 30, 0, 0, time.UTC)

func TestResolve(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2024-12-31", "2024-12-31"},
		{"today", "2024-07-10"},
		{"Tomorrow", "2024-07-11"},
		{"yesterday", "2024-07-09"},
		{"in 3 days", "2024-07-13"},
		{"friday", "2024-07-12"},
		{"next friday", "2024-07-12"},
		{"next wednesday", "2024-07-17"}, // same weekday rolls a full week
		{"  Monday ", "2024-07-15"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Resolve(tc.in, reference)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Format("2006-01-02"))
		})
	}
}

func TestResolveUsesFixedReference(t *testing.T) {
	first, err := Resolve("tomorrow", reference)
	require.NoError(t, err)
	second, err := Resolve("tomorrow", reference)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolveRejectsNoise(t *testing.T) {
	for _, in := range []string{"", "soonish", "in -2 days", "nextday", "32/13/2024"} {
		_, err := Resolve(in, reference)
		assert.ErrorIs(t, err, ErrUnrecognized, in)
	}
}
