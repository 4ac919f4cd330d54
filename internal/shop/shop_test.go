package shop

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_UnmarshalJSON(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","title":"Mug","price":750}`), &p))
	assert.True(t, p.Purchasable())
	assert.True(t, p.Price.Amount().Equal(decimal.NewFromInt(750)))

	var free Product
	require.NoError(t, json.Unmarshal([]byte(`{"id":"b","title":"Secret","price":null}`), &free))
	assert.False(t, free.Purchasable())
	assert.True(t, free.Price.Amount().IsZero())
	assert.Equal(t, "null", free.Price.String())

	var bad Product
	assert.Error(t, json.Unmarshal([]byte(`{"id":"c","price":"abc"}`), &bad))
}

func TestPrice_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Product{ID: "a", Price: PriceFromInt(1450)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":1450`)

	data, err = json.Marshal(Product{ID: "b", Price: Priceless})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"price":null`)
}

func TestPrice_Equal(t *testing.T) {
	assert.True(t, PriceFromInt(5).Equal(NewPrice(decimal.RequireFromString("5.00"))))
	assert.False(t, PriceFromInt(5).Equal(Priceless))
	assert.True(t, Priceless.Equal(Price{}))
}

func TestTotal(t *testing.T) {
	products := []Product{
		{ID: "a", Price: PriceFromInt(100)},
		{ID: "b", Price: Priceless},
		{ID: "c", Price: NewPrice(decimal.RequireFromString("2.5"))},
	}
	assert.Equal(t, "102.5", Total(products).String())
	assert.True(t, Total(nil).IsZero())
}

func TestBuildOrder(t *testing.T) {
	basket := []Product{
		{ID: "x", Price: PriceFromInt(300)},
		{ID: "y", Price: PriceFromInt(200)},
	}
	order := BuildOrder(basket,
		ContactDetails{Email: "a@b.co", Phone: "+12345678901"},
		DeliveryDetails{Payment: PaymentCash, Address: "1 Main St"},
	)

	assert.Equal(t, []string{"x", "y"}, order.Items)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, PaymentCash, order.Payment)
	assert.Equal(t, "1 Main St", order.Address)
	assert.Equal(t, "a@b.co", order.Email)
	assert.Equal(t, "+12345678901", order.Phone)
}

func TestOrder_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(NewOrder())
	require.NoError(t, err)
	assert.JSONEq(t, `{"payment":"card","email":"","phone":"","address":"","total":0,"items":[]}`, string(data))

	order := BuildOrder([]Product{{ID: "x", Price: PriceFromInt(10)}}, ContactDetails{}, DeliveryDetails{Payment: PaymentCard})
	data, err = json.Marshal(order)
	require.NoError(t, err)
	assert.JSONEq(t, `{"payment":"card","email":"","phone":"","address":"","total":10,"items":["x"]}`, string(data))
}

func TestOrder_Clone(t *testing.T) {
	order := Order{Items: []string{"a"}}
	c := order.Clone()
	c.Items[0] = "b"
	assert.Equal(t, "a", order.Items[0])

	assert.NotNil(t, Order{}.Clone().Items)
}

func TestOrderResult_UnmarshalJSON(t *testing.T) {
	var res OrderResult
	require.NoError(t, json.Unmarshal([]byte(`{"id":"28c57cb4","total":2200}`), &res))
	assert.Equal(t, "28c57cb4", res.ID)
	assert.True(t, res.Total.Equal(decimal.NewFromInt(2200)))
}

func TestField(t *testing.T) {
	tests := []struct {
		field    Field
		delivery bool
		contact  bool
	}{
		{FieldPayment, true, false},
		{FieldAddress, true, false},
		{FieldEmail, false, true},
		{FieldPhone, false, true},
		{Field("total"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.field), func(t *testing.T) {
			assert.Equal(t, tt.delivery, tt.field.IsDelivery())
			assert.Equal(t, tt.contact, tt.field.IsContact())
			assert.Equal(t, tt.delivery || tt.contact, tt.field.Valid())
		})
	}
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentCard.Valid())
	assert.True(t, PaymentCash.Valid())
	assert.False(t, PaymentMethod("").Valid())
	assert.False(t, PaymentMethod("crypto").Valid())
	assert.Equal(t, []PaymentMethod{PaymentCard, PaymentCash}, PaymentMethods())
}

func TestFormErrors_Join(t *testing.T) {
	errs := FormErrors{
		FieldEmail: "Invalid email format",
		FieldPhone: "Enter a phone number",
	}

	assert.Equal(t, "Enter a phone number; Invalid email format", errs.Join(FieldPhone, FieldEmail))
	assert.Equal(t, "Invalid email format", errs.Join(FieldEmail, FieldAddress))
	assert.Equal(t, "", FormErrors{}.Join(ContactFields...))
	assert.False(t, errs.Valid())
	assert.True(t, FormErrors(nil).Valid())

	c := errs.Clone()
	delete(c, FieldEmail)
	assert.Len(t, errs, 2)
}
