package models

// Location kinds. Older API payloads omit the kind field entirely, in
// which case the location is treated as a delivery location.
const (
	LocationKindDelivery = "delivery"
	LocationKindPickup   = "pickup"
)

// DeliveryLocation is a serviced city with its per-order delivery fee.
type DeliveryLocation struct {
	ID   string `json:"_id"`
	Name string `json:"location"`
	Fee  int    `json:"amount"`
	Kind string `json:"kind,omitempty"`
}

// IsDelivery reports whether this location participates in the
// delivery-fee lookup.
func (l DeliveryLocation) IsDelivery() bool {
	return l.Kind == "" || l.Kind == LocationKindDelivery
}

// FindDeliveryLocation matches a user-entered city against the serviced
// delivery locations. Pickup points never match.
func FindDeliveryLocation(locations []DeliveryLocation, city string) (DeliveryLocation, bool) {
	for _, l := range locations {
		if l.IsDelivery() && l.Name == city {
			return l, true
		}
	}
	return DeliveryLocation{}, false
}

// DeliveryFeeFor returns the per-order fee for a city, or 0 when the
// city is not serviced or the order is picked up in store.
func DeliveryFeeFor(locations []DeliveryLocation, city string) int {
	if l, ok := FindDeliveryLocation(locations, city); ok {
		return l.Fee
	}
	return 0
}
