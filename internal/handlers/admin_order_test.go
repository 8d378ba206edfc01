package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUpdateStatusRequestValidate(t *testing.T) {
	valid := updateStatusRequest{
		OrderID:       uuid.NewString(),
		NewStatus:     "processing",
		CurrentStatus: "paid",
	}
	require.NoError(t, valid.validate())

	cases := []struct {
		name string
		req  updateStatusRequest
		msg  string
	}{
		{
			name: "bad uuid",
			req:  updateStatusRequest{OrderID: "nope", NewStatus: "paid", CurrentStatus: "pending"},
			msg:  "order_id: must be a valid UUID",
		},
		{
			name: "unknown new status",
			req:  updateStatusRequest{OrderID: uuid.NewString(), NewStatus: "shipped", CurrentStatus: "paid"},
			msg:  "new_status: unknown status",
		},
		{
			name: "unknown current status",
			req:  updateStatusRequest{OrderID: uuid.NewString(), NewStatus: "paid", CurrentStatus: ""},
			msg:  "current_status: unknown status",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.validate()
			require.Error(t, err)

			var fiberErr *fiber.Error
			require.ErrorAs(t, err, &fiberErr)
			require.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
			require.Contains(t, fiberErr.Message, tc.msg)
		})
	}
}

func TestUpdateStatusRequestValidateJoinsProblems(t *testing.T) {
	req := updateStatusRequest{OrderID: "nope", NewStatus: "x", CurrentStatus: "y"}
	err := req.validate()
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	require.Contains(t, fiberErr.Message, "order_id")
	require.Contains(t, fiberErr.Message, "new_status")
	require.Contains(t, fiberErr.Message, "current_status")
}
