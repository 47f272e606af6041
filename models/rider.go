package models

import "fmt"

// Rider approval states, as issued by the dashboard API.
const (
	RiderPending  = "PENDING"
	RiderApproved = "APPROVED"
	RiderRejected = "REJECTED"
)

// Rider availability values.
const (
	RiderAvailable = "available"
	RiderBusy      = "busy"
)

// Rider is a delivery partner as returned by the dashboard API.
type Rider struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Status      string `json:"status"`
	IsAvailable string `json:"isAvailable"`
}

// EligibleForAssignment reports whether the rider may be attached to an
// order. Only approved and currently available riders qualify.
func (r Rider) EligibleForAssignment() error {
	if r.Status != RiderApproved {
		return fmt.Errorf("rider %s %s has not been approved", r.FirstName, r.LastName)
	}
	if r.IsAvailable != RiderAvailable {
		return fmt.Errorf("rider %s %s is currently busy", r.FirstName, r.LastName)
	}
	return nil
}
