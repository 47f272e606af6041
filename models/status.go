package models

import "fmt"

// OrderStatus is the closed set of order lifecycle states used by the
// storefront API.
type OrderStatus string

const (
	StatusPending       OrderStatus = "pending"
	StatusAccepted      OrderStatus = "accepted"
	StatusAssigned      OrderStatus = "assigned"
	StatusRiderAccepted OrderStatus = "rider_accept_order"
	StatusRiderPickedUp OrderStatus = "rider_pickedup"
	StatusInProgress    OrderStatus = "in_progress"
	StatusCompleted     OrderStatus = "completed"
	StatusCancelled     OrderStatus = "cancelled"
)

// Actor is the role attempting an order transition.
type Actor string

const (
	ActorAdmin Actor = "admin"
	ActorRider Actor = "rider"
)

// Transition action names, as surfaced to the admin and rider apps.
const (
	ActionAccept          = "accept"
	ActionAssignRider     = "assign_rider"
	ActionAcceptDelivery  = "accept_delivery"
	ActionConfirmPickup   = "confirm_pickup"
	ActionStartTransit    = "start_transit"
	ActionConfirmDelivery = "confirm_delivery"
	ActionCancel          = "cancel"
)

// Transition is one forward edge of the order lifecycle.
type Transition struct {
	Action string      `json:"action"`
	To     OrderStatus `json:"to"`
}

// forward maps every non-terminal status to its single legal forward
// transition and the actor who may trigger it. The lifecycle is a
// strict line: the admin owns the two steps up to rider assignment and
// the rider owns everything after. No state may be skipped.
var forward = map[OrderStatus]struct {
	Actor      Actor
	Transition Transition
}{
	StatusPending:       {ActorAdmin, Transition{ActionAccept, StatusAccepted}},
	StatusAccepted:      {ActorAdmin, Transition{ActionAssignRider, StatusAssigned}},
	StatusAssigned:      {ActorRider, Transition{ActionAcceptDelivery, StatusRiderAccepted}},
	StatusRiderAccepted: {ActorRider, Transition{ActionConfirmPickup, StatusRiderPickedUp}},
	StatusRiderPickedUp: {ActorRider, Transition{ActionStartTransit, StatusInProgress}},
	StatusInProgress:    {ActorRider, Transition{ActionConfirmDelivery, StatusCompleted}},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	if _, ok := forward[s]; ok {
		return true
	}
	return s == StatusCompleted || s == StatusCancelled
}

// IsTerminal reports whether no further transitions exist for s.
func IsTerminal(s OrderStatus) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// NextTransition returns the single legal forward transition for the
// actor at the given status. The second return is false when the status
// is terminal, unknown, or currently belongs to the other actor's phase
// of the lifecycle. Pure lookup, no hidden state.
func NextTransition(status OrderStatus, actor Actor) (Transition, bool) {
	edge, ok := forward[status]
	if !ok || edge.Actor != actor {
		return Transition{}, false
	}
	return edge.Transition, true
}

// Advance is NextTransition with a descriptive error explaining why no
// transition is available. The order itself is never mutated here;
// callers re-fetch the (unchanged) order when an attempt is rejected.
func Advance(status OrderStatus, actor Actor) (Transition, error) {
	if !ValidStatus(status) {
		return Transition{}, fmt.Errorf("unknown order status %q", status)
	}
	if IsTerminal(status) {
		return Transition{}, fmt.Errorf("order is already %s", status)
	}
	edge := forward[status]
	if edge.Actor != actor {
		return Transition{}, fmt.Errorf("%ss cannot act on an order that is %s", actor, status)
	}
	return edge.Transition, nil
}

// CanCancel reports whether an admin may cancel an order in the given
// status. Only terminal orders are off limits.
func CanCancel(status OrderStatus) error {
	if !ValidStatus(status) {
		return fmt.Errorf("unknown order status %q", status)
	}
	if IsTerminal(status) {
		return fmt.Errorf("cannot cancel an order that is already %s", status)
	}
	return nil
}
