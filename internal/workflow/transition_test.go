package workflow_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/greenharvest/marketplace/internal/workflow"
)

func TestCheckRequestTransition(t *testing.T) {
	t.Run("approve pending", func(t *testing.T) {
		target, err := workflow.CheckRequestTransition(workflow.RequestPending, workflow.TransitionApprove)
		assert.NoError(t, err)
		assert.Equal(t, workflow.RequestApproved, target)
	})

	t.Run("reject pending", func(t *testing.T) {
		target, err := workflow.CheckRequestTransition(workflow.RequestPending, workflow.TransitionReject)
		assert.NoError(t, err)
		assert.Equal(t, workflow.RequestRejected, target)
	})

	t.Run("approved is terminal", func(t *testing.T) {
		_, err := workflow.CheckRequestTransition(workflow.RequestApproved, workflow.TransitionReject)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		_, err := workflow.CheckRequestTransition(workflow.RequestRejected, workflow.TransitionApprove)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("unknown transition", func(t *testing.T) {
		_, err := workflow.CheckRequestTransition(workflow.RequestPending, workflow.TransitionShip)
		assert.ErrorIs(t, err, workflow.ErrUnknownTransition)
	})
}

func TestCheckOrderTransition(t *testing.T) {
	cases := []struct {
		name    string
		current workflow.OrderStatus
		target  workflow.OrderStatus
		wantErr bool
	}{
		{"pending to confirmed", workflow.OrderPending, workflow.OrderConfirmed, false},
		{"pending to cancelled", workflow.OrderPending, workflow.OrderCancelled, false},
		{"confirmed to shipped", workflow.OrderConfirmed, workflow.OrderShipped, false},
		{"confirmed to cancelled", workflow.OrderConfirmed, workflow.OrderCancelled, false},
		{"shipped to delivered", workflow.OrderShipped, workflow.OrderDelivered, false},
		{"pending cannot skip to shipped", workflow.OrderPending, workflow.OrderShipped, true},
		{"pending cannot skip to delivered", workflow.OrderPending, workflow.OrderDelivered, true},
		{"shipped cannot be cancelled", workflow.OrderShipped, workflow.OrderCancelled, true},
		{"delivered is terminal", workflow.OrderDelivered, workflow.OrderCancelled, true},
		{"cancelled is terminal", workflow.OrderCancelled, workflow.OrderConfirmed, true},
		{"no reverse moves", workflow.OrderConfirmed, workflow.OrderPending, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := workflow.CheckOrderTransition(tc.current, tc.target)
			if tc.wantErr {
				assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckFarmerOrderTransition(t *testing.T) {
	t.Run("linear pipeline", func(t *testing.T) {
		steps := []struct {
			current workflow.FarmerOrderStatus
			t       workflow.Transition
			want    workflow.FarmerOrderStatus
		}{
			{workflow.FarmerOrderPending, workflow.TransitionConfirm, workflow.FarmerOrderConfirmed},
			{workflow.FarmerOrderConfirmed, workflow.TransitionPack, workflow.FarmerOrderPacked},
			{workflow.FarmerOrderPacked, workflow.TransitionShip, workflow.FarmerOrderShipped},
			{workflow.FarmerOrderShipped, workflow.TransitionDeliver, workflow.FarmerOrderDelivered},
		}
		for _, step := range steps {
			target, err := workflow.CheckFarmerOrderTransition(step.current, step.t)
			assert.NoError(t, err)
			assert.Equal(t, step.want, target)
		}
	})

	t.Run("no skipping steps", func(t *testing.T) {
		_, err := workflow.CheckFarmerOrderTransition(workflow.FarmerOrderPending, workflow.TransitionShip)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("no repeating steps", func(t *testing.T) {
		_, err := workflow.CheckFarmerOrderTransition(workflow.FarmerOrderConfirmed, workflow.TransitionConfirm)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("delivered is terminal", func(t *testing.T) {
		_, err := workflow.CheckFarmerOrderTransition(workflow.FarmerOrderDelivered, workflow.TransitionDeliver)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	})

	t.Run("unknown transition", func(t *testing.T) {
		_, err := workflow.CheckFarmerOrderTransition(workflow.FarmerOrderPending, workflow.TransitionApprove)
		assert.ErrorIs(t, err, workflow.ErrUnknownTransition)
	})
}

func TestApplyRequestTransition(t *testing.T) {
	requests := []workflow.ProductRequest{
		{ID: "req-1", FarmerID: "farmer-1", ProductName: "Tomatoes", Status: workflow.RequestPending},
		{ID: "req-2", FarmerID: "farmer-1", ProductName: "Carrots", Status: workflow.RequestPending},
		{ID: "req-3", FarmerID: "farmer-2", ProductName: "Honey", Status: workflow.RequestApproved},
	}

	t.Run("approve with notes", func(t *testing.T) {
		updated, err := workflow.ApplyRequestTransition(requests, "req-1", workflow.TransitionApprove, "Approved, start shipping")
		assert.NoError(t, err)
		assert.Len(t, updated, 3)
		assert.Equal(t, workflow.RequestApproved, updated[0].Status)
		assert.Equal(t, "Approved, start shipping", updated[0].Notes)

		// the others stay untouched, input included
		assert.Equal(t, workflow.RequestPending, updated[1].Status)
		assert.Equal(t, workflow.RequestPending, requests[0].Status)
	})

	t.Run("reject", func(t *testing.T) {
		updated, err := workflow.ApplyRequestTransition(requests, "req-2", workflow.TransitionReject, "out of season")
		assert.NoError(t, err)
		assert.Equal(t, workflow.RequestRejected, updated[1].Status)
		assert.Equal(t, "out of season", updated[1].Notes)
	})

	t.Run("already resolved", func(t *testing.T) {
		updated, err := workflow.ApplyRequestTransition(requests, "req-3", workflow.TransitionApprove, "")
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		assert.Equal(t, requests, updated)
	})

	t.Run("missing id", func(t *testing.T) {
		updated, err := workflow.ApplyRequestTransition(requests, "req-404", workflow.TransitionApprove, "")
		assert.ErrorIs(t, err, workflow.ErrRecordNotFound)
		assert.Equal(t, requests, updated)
	})
}

func TestApplyOrderTransition(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	orders := []workflow.Order{
		{ID: "order-1", CustomerID: "customer-1", Status: workflow.OrderPending},
		{ID: "order-2", CustomerID: "customer-1", Status: workflow.OrderShipped},
	}

	t.Run("confirm pending", func(t *testing.T) {
		updated, err := workflow.ApplyOrderTransition(orders, "order-1", workflow.OrderConfirmed, now)
		assert.NoError(t, err)
		assert.Equal(t, workflow.OrderConfirmed, updated[0].Status)
		assert.Equal(t, now, updated[0].UpdatedDate)
		assert.Equal(t, workflow.OrderPending, orders[0].Status)
	})

	t.Run("cancel shipped rejected", func(t *testing.T) {
		updated, err := workflow.ApplyOrderTransition(orders, "order-2", workflow.OrderCancelled, now)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		assert.Equal(t, orders, updated)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := workflow.ApplyOrderTransition(orders, "order-404", workflow.OrderConfirmed, now)
		assert.ErrorIs(t, err, workflow.ErrRecordNotFound)
	})
}

func TestApplyFarmerOrderTransition(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("full pipeline stamps dates", func(t *testing.T) {
		records := []workflow.FarmerOrder{
			{ID: "fo-1", OrderID: "order-1", FarmerID: "farmer-1", Status: workflow.FarmerOrderPending},
		}

		records, err := workflow.ApplyFarmerOrderTransition(records, "fo-1", workflow.TransitionConfirm, now)
		assert.NoError(t, err)
		assert.Equal(t, workflow.FarmerOrderConfirmed, records[0].Status)
		assert.Equal(t, &now, records[0].ConfirmedDate)

		records, err = workflow.ApplyFarmerOrderTransition(records, "fo-1", workflow.TransitionPack, now)
		assert.NoError(t, err)
		assert.Equal(t, workflow.FarmerOrderPacked, records[0].Status)
		assert.Nil(t, records[0].ShippedDate)

		shipTime := now.Add(time.Hour)
		records, err = workflow.ApplyFarmerOrderTransition(records, "fo-1", workflow.TransitionShip, shipTime)
		assert.NoError(t, err)
		assert.Equal(t, workflow.FarmerOrderShipped, records[0].Status)
		assert.Equal(t, &shipTime, records[0].ShippedDate)

		deliverTime := now.Add(48 * time.Hour)
		records, err = workflow.ApplyFarmerOrderTransition(records, "fo-1", workflow.TransitionDeliver, deliverTime)
		assert.NoError(t, err)
		assert.Equal(t, workflow.FarmerOrderDelivered, records[0].Status)
		assert.Equal(t, &deliverTime, records[0].DeliveredDate)
		assert.Equal(t, &now, records[0].ConfirmedDate)
	})

	t.Run("skipping a step rejected", func(t *testing.T) {
		records := []workflow.FarmerOrder{
			{ID: "fo-1", Status: workflow.FarmerOrderPending},
		}
		updated, err := workflow.ApplyFarmerOrderTransition(records, "fo-1", workflow.TransitionDeliver, now)
		assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
		assert.Equal(t, records, updated)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := workflow.ApplyFarmerOrderTransition(nil, "fo-404", workflow.TransitionConfirm, now)
		assert.ErrorIs(t, err, workflow.ErrRecordNotFound)
	})
}

func TestPatch(t *testing.T) {
	records := []workflow.ProductRequest{
		{ID: "a", Status: workflow.RequestPending},
		{ID: "b", Status: workflow.RequestPending},
	}

	t.Run("replaces only the matching record", func(t *testing.T) {
		out := workflow.Patch(records, "b", func(r workflow.ProductRequest) workflow.ProductRequest {
			r.Status = workflow.RequestApproved
			return r
		})
		assert.Len(t, out, 2)
		assert.Equal(t, workflow.RequestPending, out[0].Status)
		assert.Equal(t, workflow.RequestApproved, out[1].Status)
		assert.Equal(t, workflow.RequestPending, records[1].Status)
	})

	t.Run("absent id returns input as-is", func(t *testing.T) {
		called := false
		out := workflow.Patch(records, "missing", func(r workflow.ProductRequest) workflow.ProductRequest {
			called = true
			return r
		})
		assert.False(t, called)
		assert.Equal(t, records, out)
	})
}

func TestAvailabilityStatusFor(t *testing.T) {
	cases := []struct {
		quantity int
		want     workflow.AvailabilityStatus
	}{
		{100, workflow.Available},
		{11, workflow.Available},
		{10, workflow.LowStock},
		{1, workflow.LowStock},
		{0, workflow.OutOfStock},
		{-5, workflow.OutOfStock},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, workflow.AvailabilityStatusFor(tc.quantity), "quantity %d", tc.quantity)
	}
}
