package shop

import (
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	// PaymentCard pays online by card.
	PaymentCard PaymentMethod = "card"

	// PaymentCash pays in cash on delivery.
	PaymentCash PaymentMethod = "cash"
)

// DefaultPayment is the payment method of a fresh order draft.
const DefaultPayment = PaymentCard

// PaymentMethods lists the accepted payment methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentCash}
}

// Valid reports whether m is an accepted payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

// String returns the wire name of the method.
func (m PaymentMethod) String() string {
	return string(m)
}

// Field names an editable order field.
type Field string

const (
	FieldPayment Field = "payment"
	FieldAddress Field = "address"
	FieldEmail   Field = "email"
	FieldPhone   Field = "phone"
)

// DeliveryFields are the fields of the delivery step, in display order.
var DeliveryFields = []Field{FieldPayment, FieldAddress}

// ContactFields are the fields of the contacts step, in display order.
var ContactFields = []Field{FieldEmail, FieldPhone}

// IsDelivery reports whether the field belongs to the delivery step.
func (f Field) IsDelivery() bool {
	return slices.Contains(DeliveryFields, f)
}

// IsContact reports whether the field belongs to the contacts step.
func (f Field) IsContact() bool {
	return slices.Contains(ContactFields, f)
}

// Valid reports whether f names a known field.
func (f Field) Valid() bool {
	return f.IsDelivery() || f.IsContact()
}

// DeliveryDetails are the values collected by the delivery step.
type DeliveryDetails struct {
	Payment PaymentMethod
	Address string
}

// ContactDetails are the values collected by the contacts step.
type ContactDetails struct {
	Email string
	Phone string
}

// Order is the order draft and the body sent to the order API.
// Items and Total are only filled in by BuildOrder.
type Order struct {
	Payment PaymentMethod
	Email   string
	Phone   string
	Address string
	Total   decimal.Decimal
	Items   []string
}

// NewOrder returns an empty order draft paying by card.
func NewOrder() Order {
	return Order{
		Payment: DefaultPayment,
		Total:   decimal.Zero,
		Items:   []string{},
	}
}

// Delivery returns the delivery step values of the draft.
func (o Order) Delivery() DeliveryDetails {
	return DeliveryDetails{Payment: o.Payment, Address: o.Address}
}

// Contacts returns the contacts step values of the draft.
func (o Order) Contacts() ContactDetails {
	return ContactDetails{Email: o.Email, Phone: o.Phone}
}

// Clone returns a copy that shares no memory with o.
func (o Order) Clone() Order {
	c := o
	c.Items = slices.Clone(o.Items)
	if c.Items == nil {
		c.Items = []string{}
	}
	return c
}

type orderWire struct {
	Payment PaymentMethod `json:"payment"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Address string        `json:"address"`
	Total   json.Number   `json:"total"`
	Items   []string      `json:"items"`
}

// MarshalJSON encodes the order in the shape the order API expects, with
// the total as a JSON number.
func (o Order) MarshalJSON() ([]byte, error) {
	items := o.Items
	if items == nil {
		items = []string{}
	}
	return json.Marshal(orderWire{
		Payment: o.Payment,
		Email:   o.Email,
		Phone:   o.Phone,
		Address: o.Address,
		Total:   json.Number(o.Total.String()),
		Items:   items,
	})
}

// BuildOrder assembles a submittable order from the basket and both form
// steps. Items keep basket order.
func BuildOrder(basket []Product, contacts ContactDetails, delivery DeliveryDetails) Order {
	items := make([]string, 0, len(basket))
	for _, p := range basket {
		items = append(items, p.ID)
	}
	return Order{
		Payment: delivery.Payment,
		Address: delivery.Address,
		Email:   contacts.Email,
		Phone:   contacts.Phone,
		Total:   Total(basket),
		Items:   items,
	}
}

// OrderResult is the order API's answer to a successful submission.
type OrderResult struct {
	ID    string          `json:"id"`
	Total decimal.Decimal `json:"total"`
}
