package models

import "fmt"

// Fulfillment methods accepted by the storefront API.
const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypePickup   = "pickup"
)

// OrderItem is one line of an order as submitted upstream: the item id
// and quantity only. Prices are resolved server-side.
type OrderItem struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// DeliveryData is the fulfillment block for door-delivery orders.
type DeliveryData struct {
	SenderName      string `json:"senderName"`
	SenderPhone     string `json:"senderPhone"`
	SenderEmail     string `json:"senderEmail"`
	ReceiversName   string `json:"receiversName"`
	ReceiversPhone  string `json:"receiversPhone"`
	Location        string `json:"location"`
	DeliveryDate    string `json:"deliveryDate"`
	DeliveryAddress string `json:"deliveryAddress"`
	Note            string `json:"note"`
}

// PickupData is the fulfillment block for in-store pickup orders.
type PickupData struct {
	Fullname      string `json:"fullname"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	PickupName    string `json:"pickupName"`
	PickupPhone   string `json:"pickupPhone"`
	PickupDate    string `json:"pickupDate"`
	PickupAddress string `json:"pickupAddress"`
	Note          string `json:"note"`
}

// Order is an order as returned by the storefront API. Amounts are
// whole Naira.
type Order struct {
	ID            string        `json:"_id"`
	Reference     string        `json:"reference"`
	Status        OrderStatus   `json:"status"`
	PaymentStatus string        `json:"paymentStatus"`
	DeliveryType  string        `json:"deliveryType"`
	Items         []OrderItem   `json:"items"`
	DeliveryData  *DeliveryData `json:"deliveryData,omitempty"`
	PickupData    *PickupData   `json:"pickupData,omitempty"`
	TotalAmount   int           `json:"totalAmount"`
	DeliveryFee   int           `json:"deliveryFee"`
	Tax           int           `json:"tax"`
	RiderID       string        `json:"riderId,omitempty"`
	CreatedAt     string        `json:"createdAt"`
}

// RiderMayAct reports whether the given rider is the one assigned to
// this order. Riders can only move orders that carry their own id.
func (o Order) RiderMayAct(riderID string) error {
	if o.RiderID == "" {
		return fmt.Errorf("order %s has no rider assigned yet", o.Reference)
	}
	if o.RiderID != riderID {
		return fmt.Errorf("order %s is assigned to a different rider", o.Reference)
	}
	return nil
}
