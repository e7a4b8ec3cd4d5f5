package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStampRoundtrip(t *testing.T) {
	in := time.Date(2026, 2, 1, 10, 30, 0, 0, oslo)

	s := Stamp(in)
	assert.Equal(t, "01.02.2026 10:30", s)

	out, err := ParseStamp(s)
	require.NoError(t, err)
	assert.True(t, in.Equal(out))
}

func TestStampDropsSeconds(t *testing.T) {
	in := time.Date(2026, 2, 1, 10, 30, 59, 0, oslo)
	assert.Equal(t, "01.02.2026 10:30", Stamp(in))
}
