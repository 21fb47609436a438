package v1

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate_RFC3339(t *testing.T) {
	due := parseDueDate("2024-06-10T09:00:00Z")

	require.NotNil(t, due)
	assert.Equal(t, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), *due)
}

func TestParseDueDate_DateOnly(t *testing.T) {
	due := parseDueDate("2024-06-10")

	require.NotNil(t, due)
	assert.Equal(t, time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), *due)
}

func TestParseDueDate_GarbageDegradesToAbsent(t *testing.T) {
	assert.Nil(t, parseDueDate(""))
	assert.Nil(t, parseDueDate("next tuesday"))
	assert.Nil(t, parseDueDate("10/06/2024"))
	assert.Nil(t, parseDueDate("2024-13-45"))
}
