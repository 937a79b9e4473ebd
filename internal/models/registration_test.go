package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsValidStatus(t *testing.T) {
	for _, status := range AllowedStatuses {
		require.True(t, IsValidStatus(status), string(status))
	}
	require.False(t, IsValidStatus("Bogus"))
	require.False(t, IsValidStatus(""))
	require.False(t, IsValidStatus("payment verified"))
}
