package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/printly/internal/models"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusPaid, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPaid, models.StatusProcessing, true},
		{models.StatusPaid, models.StatusCancelled, true},
		{models.StatusPaid, models.StatusRefunded, true},
		{models.StatusProcessing, models.StatusCompleted, true},
		{models.StatusProcessing, models.StatusRefunded, true},
		{models.StatusCompleted, models.StatusRefunded, true},

		// Lifecycle never moves backwards.
		{models.StatusPaid, models.StatusPending, false},
		{models.StatusProcessing, models.StatusPaid, false},
		{models.StatusCompleted, models.StatusProcessing, false},

		// Terminal states stay terminal.
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusPaid, false},
		{models.StatusRefunded, models.StatusPaid, false},

		// Cancellation is only reachable from pending or paid.
		{models.StatusProcessing, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusCancelled, false},

		{models.StatusPending, models.StatusProcessing, false},
		{models.StatusPending, models.StatusCompleted, false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, CanTransition(tc.from, tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestCanCancel(t *testing.T) {
	require.NoError(t, CanCancel(models.StatusPending))
	require.NoError(t, CanCancel(models.StatusPaid))

	for _, status := range []string{
		models.StatusProcessing,
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusRefunded,
	} {
		err := CanCancel(status)
		require.Error(t, err)
		require.Equal(t, "cannot cancel order with status "+status, err.Error())
	}
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{
		models.StatusPending,
		models.StatusPaid,
		models.StatusProcessing,
		models.StatusCompleted,
		models.StatusCancelled,
		models.StatusRefunded,
	} {
		require.True(t, IsValidStatus(status), status)
	}

	require.False(t, IsValidStatus(""))
	require.False(t, IsValidStatus("shipped"))
	require.False(t, IsValidStatus("Pending"))
}
