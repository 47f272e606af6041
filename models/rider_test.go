package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibleForAssignment(t *testing.T) {
	rider := Rider{FirstName: "Ada", LastName: "Obi", Status: RiderApproved, IsAvailable: RiderAvailable}
	assert.NoError(t, rider.EligibleForAssignment())

	rider.Status = RiderPending
	assert.EqualError(t, rider.EligibleForAssignment(), "rider Ada Obi has not been approved")

	rider.Status = RiderApproved
	rider.IsAvailable = RiderBusy
	assert.EqualError(t, rider.EligibleForAssignment(), "rider Ada Obi is currently busy")
}

func TestRiderMayAct(t *testing.T) {
	order := Order{Reference: "FS-1001", RiderID: "rider-1"}
	assert.NoError(t, order.RiderMayAct("rider-1"))
	assert.EqualError(t, order.RiderMayAct("rider-2"), "order FS-1001 is assigned to a different rider")

	unassigned := Order{Reference: "FS-1002"}
	assert.EqualError(t, unassigned.RiderMayAct("rider-1"), "order FS-1002 has no rider assigned yet")
}
