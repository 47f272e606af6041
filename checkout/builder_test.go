package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowerstalk/storefront-gateway/models"
)

var testLocations = []models.DeliveryLocation{
	{ID: "loc-1", Name: "Ikeja", Fee: 1500},
	{ID: "loc-2", Name: "Lekki", Fee: 2500},
}

func fullCart() *models.Cart {
	cart := &models.Cart{}
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 1)
	cart.AddItem("rose-1", "Red Roses", 5000, "roses.jpg", 1)
	cart.AddItem("lily-2", "White Lilies", 2500, "lilies.jpg", 1)
	return cart
}

func validContact() Contact {
	return Contact{FirstName: "Ada", LastName: "Obi", Email: "ada@example.com", Phone: "08012345678"}
}

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Messages
}

func TestBuildDeliveryPayload(t *testing.T) {
	payload, err := Build(fullCart(), models.DeliveryTypeDelivery, validContact(),
		DeliveryInput{Address: "5 Allen Avenue", City: "Ikeja", Notes: "Call on arrival"},
		PickupInput{}, testLocations, Rules{RequireDeliveryNotes: true})
	require.NoError(t, err)

	assert.Equal(t, models.DeliveryTypeDelivery, payload.DeliveryType)
	assert.Equal(t, "loc-1", payload.LocationID)
	assert.Nil(t, payload.PickupData)

	require.NotNil(t, payload.DeliveryData)
	assert.Equal(t, "Ada Obi", payload.DeliveryData.SenderName)
	assert.Equal(t, "Ada Obi", payload.DeliveryData.ReceiversName)
	assert.Equal(t, "Ikeja", payload.DeliveryData.Location)
	assert.Equal(t, "5 Allen Avenue", payload.DeliveryData.DeliveryAddress)
	assert.Equal(t, "Call on arrival", payload.DeliveryData.Note)
	assert.NotEmpty(t, payload.DeliveryData.DeliveryDate)
}

func TestBuildStripsPricesFromItems(t *testing.T) {
	payload, err := Build(fullCart(), models.DeliveryTypePickup, validContact(),
		DeliveryInput{}, PickupInput{}, nil, Rules{})
	require.NoError(t, err)

	assert.Equal(t, []models.OrderItem{
		{ItemID: "rose-1", Quantity: 2},
		{ItemID: "lily-2", Quantity: 1},
	}, payload.Items)
}

func TestBuildPickupNeedsOnlyContact(t *testing.T) {
	payload, err := Build(fullCart(), models.DeliveryTypePickup, validContact(),
		DeliveryInput{}, PickupInput{}, nil, Rules{RequireDeliveryNotes: true})
	require.NoError(t, err)

	assert.Empty(t, payload.LocationID)
	assert.Nil(t, payload.DeliveryData)
	require.NotNil(t, payload.PickupData)
	assert.Equal(t, StorePickupAddress, payload.PickupData.PickupAddress)
	assert.Equal(t, "No additional notes", payload.PickupData.Note)
}

func TestBuildKeepsPickupNoteWhenGiven(t *testing.T) {
	payload, err := Build(fullCart(), models.DeliveryTypePickup, validContact(),
		DeliveryInput{}, PickupInput{Notes: "Gift wrap please"}, nil, Rules{})
	require.NoError(t, err)
	assert.Equal(t, "Gift wrap please", payload.PickupData.Note)
}

func TestBuildRejectsEmptyCart(t *testing.T) {
	for _, method := range []string{models.DeliveryTypeDelivery, models.DeliveryTypePickup} {
		_, err := Build(&models.Cart{}, method, validContact(),
			DeliveryInput{Address: "5 Allen Avenue", City: "Ikeja", Notes: "x"},
			PickupInput{}, testLocations, Rules{})
		assert.Contains(t, validationMessages(t, err), "your cart is empty")
	}
}

func TestBuildRejectsUnknownMethod(t *testing.T) {
	_, err := Build(fullCart(), "courier", validContact(), DeliveryInput{}, PickupInput{}, nil, Rules{})
	assert.Contains(t, validationMessages(t, err), "choose either delivery or pickup")
}

func TestBuildRejectsUnservicedCity(t *testing.T) {
	_, err := Build(fullCart(), models.DeliveryTypeDelivery, validContact(),
		DeliveryInput{Address: "1 Main Street", City: "Abuja", Notes: "x"},
		PickupInput{}, testLocations, Rules{})
	assert.Contains(t, validationMessages(t, err), "select a delivery city we currently serve")
}

func TestBuildCollectsAllProblemsAtOnce(t *testing.T) {
	_, err := Build(&models.Cart{}, models.DeliveryTypeDelivery, Contact{},
		DeliveryInput{}, PickupInput{}, testLocations, Rules{RequireDeliveryNotes: true})

	messages := validationMessages(t, err)
	assert.Contains(t, messages, "your cart is empty")
	assert.Contains(t, messages, "first name is required")
	assert.Contains(t, messages, "last name is required")
	assert.Contains(t, messages, "email is required")
	assert.Contains(t, messages, "phone number is required")
	assert.Contains(t, messages, "delivery address is required")
	assert.Contains(t, messages, "delivery notes are required")
}

func TestBuildRejectsMalformedEmail(t *testing.T) {
	contact := validContact()
	contact.Email = "not-an-email"
	_, err := Build(fullCart(), models.DeliveryTypePickup, contact, DeliveryInput{}, PickupInput{}, nil, Rules{})
	assert.Contains(t, validationMessages(t, err), "enter a valid email address")
}

func TestBuildDeliveryNotesRule(t *testing.T) {
	input := DeliveryInput{Address: "5 Allen Avenue", City: "Ikeja"}

	_, err := Build(fullCart(), models.DeliveryTypeDelivery, validContact(),
		input, PickupInput{}, testLocations, Rules{RequireDeliveryNotes: true})
	assert.Contains(t, validationMessages(t, err), "delivery notes are required")

	payload, err := Build(fullCart(), models.DeliveryTypeDelivery, validContact(),
		input, PickupInput{}, testLocations, Rules{RequireDeliveryNotes: false})
	require.NoError(t, err)
	assert.Empty(t, payload.DeliveryData.Note)
}
