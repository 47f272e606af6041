package checkout

import (
	"regexp"
	"strings"
	"time"

	"github.com/flowerstalk/storefront-gateway/models"
)

// The store's fixed pickup point. Pickup orders carry it verbatim; the
// shopper never enters an address for pickup.
const StorePickupAddress = "123 Flower Street, Lagos"

// defaultPickupNote fills the note field when a pickup order is
// submitted without one.
const defaultPickupNote = "No additional notes"

// Contact is the shopper's contact block, required for every order.
type Contact struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// DeliveryInput is the raw form input for door-delivery orders.
type DeliveryInput struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

// PickupInput is the raw form input for in-store pickup orders.
type PickupInput struct {
	Notes string `json:"notes"`
}

// Rules carries the validation policy knobs. Whether delivery notes are
// mandatory differs between storefront variants, so it is configuration
// rather than a hardcoded rule.
type Rules struct {
	RequireDeliveryNotes bool
}

// Payload is the validated order-creation request sent upstream. Item
// lines carry ids and quantities only; the API re-resolves prices.
// Treat a built payload as immutable.
type Payload struct {
	Items        []models.OrderItem   `json:"items"`
	DeliveryType string               `json:"deliveryType"`
	LocationID   string               `json:"locationId,omitempty"`
	DeliveryData *models.DeliveryData `json:"deliveryData,omitempty"`
	PickupData   *models.PickupData   `json:"pickupData,omitempty"`
}

// ValidationError collects every failed rule from one Build attempt so
// the shopper can fix the whole form in one pass.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Deliberately loose: one local part, one @, one domain part. Anything
// stricter rejects addresses that real mail servers accept.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Build validates the checkout form and shapes the upstream request. It
// performs no network calls and mutates nothing; submission and the
// subsequent cart clear are the caller's job, and only after the API
// confirms the order with a payment link.
func Build(cart *models.Cart, method string, contact Contact, delivery DeliveryInput, pickup PickupInput, locations []models.DeliveryLocation, rules Rules) (*Payload, error) {
	var problems []string

	if method != models.DeliveryTypeDelivery && method != models.DeliveryTypePickup {
		problems = append(problems, "choose either delivery or pickup")
	}
	if cart == nil || cart.IsEmpty() {
		problems = append(problems, "your cart is empty")
	}
	if strings.TrimSpace(contact.FirstName) == "" {
		problems = append(problems, "first name is required")
	}
	if strings.TrimSpace(contact.LastName) == "" {
		problems = append(problems, "last name is required")
	}
	if strings.TrimSpace(contact.Email) == "" {
		problems = append(problems, "email is required")
	} else if !emailPattern.MatchString(strings.TrimSpace(contact.Email)) {
		problems = append(problems, "enter a valid email address")
	}
	if strings.TrimSpace(contact.Phone) == "" {
		problems = append(problems, "phone number is required")
	}

	var location models.DeliveryLocation
	if method == models.DeliveryTypeDelivery {
		if strings.TrimSpace(delivery.Address) == "" {
			problems = append(problems, "delivery address is required")
		}
		var ok bool
		location, ok = models.FindDeliveryLocation(locations, delivery.City)
		if !ok {
			problems = append(problems, "select a delivery city we currently serve")
		}
		if rules.RequireDeliveryNotes && strings.TrimSpace(delivery.Notes) == "" {
			problems = append(problems, "delivery notes are required")
		}
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Messages: problems}
	}

	fullName := strings.TrimSpace(contact.FirstName) + " " + strings.TrimSpace(contact.LastName)
	now := time.Now().UTC().Format(time.RFC3339)

	items := make([]models.OrderItem, 0, len(cart.Lines()))
	for _, line := range cart.Lines() {
		items = append(items, models.OrderItem{ItemID: line.ItemID, Quantity: line.Quantity})
	}

	payload := &Payload{
		Items:        items,
		DeliveryType: method,
	}

	switch method {
	case models.DeliveryTypeDelivery:
		payload.LocationID = location.ID
		payload.DeliveryData = &models.DeliveryData{
			SenderName:      fullName,
			SenderPhone:     contact.Phone,
			SenderEmail:     contact.Email,
			ReceiversName:   fullName,
			ReceiversPhone:  contact.Phone,
			Location:        delivery.City,
			DeliveryDate:    now,
			DeliveryAddress: delivery.Address,
			Note:            strings.TrimSpace(delivery.Notes),
		}
	case models.DeliveryTypePickup:
		note := strings.TrimSpace(pickup.Notes)
		if note == "" {
			note = defaultPickupNote
		}
		payload.PickupData = &models.PickupData{
			Fullname:      fullName,
			Phone:         contact.Phone,
			Email:         contact.Email,
			PickupName:    fullName,
			PickupPhone:   contact.Phone,
			PickupDate:    now,
			PickupAddress: StorePickupAddress,
			Note:          note,
		}
	}

	return payload, nil
}
