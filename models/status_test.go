package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryNonTerminalStatusHasExactlyOneTransition(t *testing.T) {
	nonTerminal := []OrderStatus{
		StatusPending, StatusAccepted, StatusAssigned,
		StatusRiderAccepted, StatusRiderPickedUp, StatusInProgress,
	}
	for _, status := range nonTerminal {
		adminNext, adminOK := NextTransition(status, ActorAdmin)
		riderNext, riderOK := NextTransition(status, ActorRider)
		assert.True(t, adminOK != riderOK, "exactly one actor should own %s", status)
		if adminOK {
			assert.NotEmpty(t, adminNext.Action)
			assert.True(t, ValidStatus(adminNext.To))
		} else {
			assert.NotEmpty(t, riderNext.Action)
			assert.True(t, ValidStatus(riderNext.To))
		}
	}
}

func TestTerminalStatusesHaveNoTransition(t *testing.T) {
	for _, status := range []OrderStatus{StatusCompleted, StatusCancelled} {
		_, ok := NextTransition(status, ActorAdmin)
		assert.False(t, ok)
		_, ok = NextTransition(status, ActorRider)
		assert.False(t, ok)

		_, err := Advance(status, ActorAdmin)
		assert.EqualError(t, err, "order is already "+string(status))
	}
}

func TestAdminOwnsTheFirstTwoSteps(t *testing.T) {
	next, err := Advance(StatusPending, ActorAdmin)
	assert.NoError(t, err)
	assert.Equal(t, ActionAccept, next.Action)
	assert.Equal(t, StatusAccepted, next.To)

	next, err = Advance(StatusAccepted, ActorAdmin)
	assert.NoError(t, err)
	assert.Equal(t, ActionAssignRider, next.Action)
	assert.Equal(t, StatusAssigned, next.To)
}

func TestRiderOwnsTheDeliveryLeg(t *testing.T) {
	want := []Transition{
		{ActionAcceptDelivery, StatusRiderAccepted},
		{ActionConfirmPickup, StatusRiderPickedUp},
		{ActionStartTransit, StatusInProgress},
		{ActionConfirmDelivery, StatusCompleted},
	}
	status := StatusAssigned
	for _, expected := range want {
		next, err := Advance(status, ActorRider)
		assert.NoError(t, err)
		assert.Equal(t, expected, next)
		status = next.To
	}
	assert.True(t, IsTerminal(status))
}

func TestWrongActorIsRejected(t *testing.T) {
	_, err := Advance(StatusAssigned, ActorAdmin)
	assert.EqualError(t, err, "admins cannot act on an order that is assigned")

	_, err = Advance(StatusPending, ActorRider)
	assert.EqualError(t, err, "riders cannot act on an order that is pending")
}

func TestAdvanceRejectsUnknownStatus(t *testing.T) {
	_, err := Advance("shipped", ActorAdmin)
	assert.EqualError(t, err, `unknown order status "shipped"`)
}

func TestCanCancel(t *testing.T) {
	for _, status := range []OrderStatus{
		StatusPending, StatusAccepted, StatusAssigned,
		StatusRiderAccepted, StatusRiderPickedUp, StatusInProgress,
	} {
		assert.NoError(t, CanCancel(status), "should be cancellable while %s", status)
	}

	assert.EqualError(t, CanCancel(StatusCompleted), "cannot cancel an order that is already completed")
	assert.EqualError(t, CanCancel(StatusCancelled), "cannot cancel an order that is already cancelled")
	assert.Error(t, CanCancel("shipped"))
}
