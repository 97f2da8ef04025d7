package scrub

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripRanges(t *testing.T) {
	t.Parallel()

	text := "0123456789"

	tests := []struct {
		name   string
		ranges []Range
		want   string
	}{
		{name: "none", ranges: nil, want: text},
		{name: "prefix", ranges: []Range{{0, 3}}, want: "3456789"},
		{name: "suffix", ranges: []Range{{7, 10}}, want: "0123456"},
		{name: "several", ranges: []Range{{1, 2}, {4, 6}, {8, 9}}, want: "03679"},
		{name: "everything", ranges: []Range{{0, 10}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := StripRanges(text, NewRangeSet(tt.ranges...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripRanges_OutOfBounds(t *testing.T) {
	t.Parallel()

	for _, r := range []Range{{-1, 2}, {5, 11}} {
		_, err := StripRanges("0123456789", NewRangeSet(r))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidRange))

		var rerr *InvalidRangeError
		require.True(t, errors.As(err, &rerr))
		assert.Equal(t, r, rerr.Range)
		assert.Equal(t, 10, rerr.TextLen)
	}
}

func TestStripRanges_NilSet(t *testing.T) {
	t.Parallel()

	got, err := StripRanges("abc", nil)
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}
