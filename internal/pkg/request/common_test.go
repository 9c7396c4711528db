package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	t.Run("date only", func(t *testing.T) {
		got, err := ParseDate("2026-03-15")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rfc3339 truncated to day", func(t *testing.T) {
		got, err := ParseDate("2026-03-15T18:45:00Z")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("garbage rejected", func(t *testing.T) {
		_, err := ParseDate("15/03/2026")
		assert.Error(t, err)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, err := ParseDate("")
		assert.Error(t, err)
	})
}
