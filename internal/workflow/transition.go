package workflow

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownTransition = errors.New("unknown transition")
	ErrRecordNotFound    = errors.New("record not found")
)

type Transition string

const (
	TransitionApprove Transition = "approve"
	TransitionReject  Transition = "reject"
	TransitionConfirm Transition = "confirm"
	TransitionPack    Transition = "pack"
	TransitionShip    Transition = "ship"
	TransitionDeliver Transition = "deliver"
	TransitionCancel  Transition = "cancel"
)

// Record is anything addressable by id inside a collection snapshot.
type Record interface {
	RecordID() string
}

// Patch returns a copy of records where the record with the given id has been
// replaced by mutate's result. Every other record is carried over untouched.
// An absent id leaves the collection as-is.
func Patch[T Record](records []T, id string, mutate func(T) T) []T {
	for i := range records {
		if records[i].RecordID() != id {
			continue
		}
		out := make([]T, len(records))
		copy(out, records)
		out[i] = mutate(records[i])
		return out
	}
	return records
}

// requestTransitions: a request is resolved exactly once, out of pending.
var requestTransitions = map[Transition]RequestStatus{
	TransitionApprove: RequestApproved,
	TransitionReject:  RequestRejected,
}

// orderNext restricts customer-order moves; delivered and cancelled are terminal.
var orderNext = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

// farmerOrderNext is strictly linear: no skips, no reverse moves.
var farmerOrderNext = map[FarmerOrderStatus]FarmerOrderStatus{
	FarmerOrderPending:   FarmerOrderConfirmed,
	FarmerOrderConfirmed: FarmerOrderPacked,
	FarmerOrderPacked:    FarmerOrderShipped,
	FarmerOrderShipped:   FarmerOrderDelivered,
}

var farmerOrderTransitions = map[Transition]FarmerOrderStatus{
	TransitionConfirm: FarmerOrderConfirmed,
	TransitionPack:    FarmerOrderPacked,
	TransitionShip:    FarmerOrderShipped,
	TransitionDeliver: FarmerOrderDelivered,
}

// RequestStatusFor resolves an admin decision to its resulting status.
func RequestStatusFor(t Transition) (RequestStatus, error) {
	status, ok := requestTransitions[t]
	if !ok {
		return "", fmt.Errorf("%w: %q is not a request transition", ErrUnknownTransition, t)
	}
	return status, nil
}

// CheckRequestTransition validates that a request in the given status may be
// resolved at all. Approved and rejected are terminal.
func CheckRequestTransition(current RequestStatus, t Transition) (RequestStatus, error) {
	target, err := RequestStatusFor(t)
	if err != nil {
		return "", err
	}
	if current != RequestPending {
		return "", fmt.Errorf("%w: request is %s, only pending requests can be resolved", ErrInvalidTransition, current)
	}
	return target, nil
}

// CheckOrderTransition validates a customer-order move against the allowed-next table.
func CheckOrderTransition(current, target OrderStatus) error {
	next, ok := orderNext[current]
	if !ok {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidTransition, current)
	}
	for _, s := range next {
		if s == target {
			return nil
		}
	}
	return fmt.Errorf("%w: order cannot move from %s to %s", ErrInvalidTransition, current, target)
}

// CheckFarmerOrderTransition validates a fulfillment step and returns the
// resulting status. Only the immediate successor of the current status is legal.
func CheckFarmerOrderTransition(current FarmerOrderStatus, t Transition) (FarmerOrderStatus, error) {
	target, ok := farmerOrderTransitions[t]
	if !ok {
		return "", fmt.Errorf("%w: %q is not a fulfillment transition", ErrUnknownTransition, t)
	}
	if farmerOrderNext[current] != target {
		return "", fmt.Errorf("%w: farmer order cannot move from %s to %s", ErrInvalidTransition, current, target)
	}
	return target, nil
}

// ApplyRequestTransition resolves the request with the given id inside a
// collection snapshot, stamping the decision notes. The returned collection
// shares no backing array with the input.
func ApplyRequestTransition(records []ProductRequest, id string, t Transition, notes string) ([]ProductRequest, error) {
	var applyErr error
	found := false
	out := Patch(records, id, func(r ProductRequest) ProductRequest {
		found = true
		target, err := CheckRequestTransition(r.Status, t)
		if err != nil {
			applyErr = err
			return r
		}
		r.Status = target
		r.Notes = notes
		return r
	})
	if applyErr != nil {
		return records, applyErr
	}
	if !found {
		return records, fmt.Errorf("%w: request %s", ErrRecordNotFound, id)
	}
	return out, nil
}

// ApplyOrderTransition moves the order with the given id to the target status.
func ApplyOrderTransition(records []Order, id string, target OrderStatus, now time.Time) ([]Order, error) {
	var applyErr error
	found := false
	out := Patch(records, id, func(o Order) Order {
		found = true
		if err := CheckOrderTransition(o.Status, target); err != nil {
			applyErr = err
			return o
		}
		o.Status = target
		o.UpdatedDate = now
		return o
	})
	if applyErr != nil {
		return records, applyErr
	}
	if !found {
		return records, fmt.Errorf("%w: order %s", ErrRecordNotFound, id)
	}
	return out, nil
}

// ApplyFarmerOrderTransition advances the farmer order with the given id one
// step along the fulfillment pipeline, stamping the date field that belongs
// to the step. Packing stamps no date.
func ApplyFarmerOrderTransition(records []FarmerOrder, id string, t Transition, now time.Time) ([]FarmerOrder, error) {
	var applyErr error
	found := false
	out := Patch(records, id, func(f FarmerOrder) FarmerOrder {
		found = true
		target, err := CheckFarmerOrderTransition(f.Status, t)
		if err != nil {
			applyErr = err
			return f
		}
		f.Status = target
		StampFarmerOrderDate(&f, target, now)
		return f
	})
	if applyErr != nil {
		return records, applyErr
	}
	if !found {
		return records, fmt.Errorf("%w: farmer order %s", ErrRecordNotFound, id)
	}
	return out, nil
}

// StampFarmerOrderDate records when a fulfillment step happened.
func StampFarmerOrderDate(f *FarmerOrder, status FarmerOrderStatus, now time.Time) {
	switch status {
	case FarmerOrderConfirmed:
		f.ConfirmedDate = &now
	case FarmerOrderShipped:
		f.ShippedDate = &now
	case FarmerOrderDelivered:
		f.DeliveredDate = &now
	}
}
