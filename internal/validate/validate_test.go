package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/storefront/internal/shop"
)

func TestContacts(t *testing.T) {
	tests := []struct {
		name  string
		email string
		phone string
		want  shop.FormErrors
	}{
		{
			name:  "valid",
			email: "a@b.co",
			phone: "+12345678901",
			want:  shop.FormErrors{},
		},
		{
			name:  "bad email",
			email: "bad",
			phone: "+12345678901",
			want:  shop.FormErrors{shop.FieldEmail: MsgEmailFormat},
		},
		{
			name:  "short phone",
			email: "a@b.co",
			phone: "123",
			want:  shop.FormErrors{shop.FieldPhone: MsgPhoneFormat},
		},
		{
			name: "both empty",
			want: shop.FormErrors{
				shop.FieldEmail: MsgEmailRequired,
				shop.FieldPhone: MsgPhoneRequired,
			},
		},
		{
			name:  "leading zero",
			email: "user@mail.example",
			phone: "+0123456789",
			want:  shop.FormErrors{shop.FieldPhone: MsgPhoneFormat},
		},
		{
			name:  "phone without plus",
			email: "user@mail.example",
			phone: "79991234567",
			want:  shop.FormErrors{},
		},
		{
			name:  "email with space",
			email: "a b@c.de",
			phone: "",
			want: shop.FormErrors{
				shop.FieldEmail: MsgEmailFormat,
				shop.FieldPhone: MsgPhoneRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contacts(tt.email, tt.phone))
		})
	}
}

func TestDelivery(t *testing.T) {
	tests := []struct {
		name    string
		payment shop.PaymentMethod
		address string
		want    shop.FormErrors
	}{
		{
			name:    "card with address",
			payment: shop.PaymentCard,
			address: "1 Main St",
			want:    shop.FormErrors{},
		},
		{
			name:    "cash without address",
			payment: shop.PaymentCash,
			want:    shop.FormErrors{shop.FieldAddress: MsgAddressRequired},
		},
		{
			name:    "no payment",
			address: "1 Main St",
			want:    shop.FormErrors{shop.FieldPayment: MsgPaymentRequired},
		},
		{
			name:    "unknown payment",
			payment: shop.PaymentMethod("crypto"),
			address: "1 Main St",
			want:    shop.FormErrors{shop.FieldPayment: MsgPaymentRequired},
		},
		{
			name: "nothing",
			want: shop.FormErrors{
				shop.FieldPayment: MsgPaymentRequired,
				shop.FieldAddress: MsgAddressRequired,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delivery(tt.payment, tt.address))
		})
	}
}

func TestPhone(t *testing.T) {
	assert.True(t, Phone("+1234"))
	assert.True(t, Phone("1234"))
	assert.True(t, Phone("+1234567"))
	assert.True(t, Phone("+123456789012345"))
	assert.False(t, Phone("+1234567890123456"))
	assert.False(t, Phone("+123"))
	assert.False(t, Phone("123"))
	assert.False(t, Phone("+7 999 123 45 67"))
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("a@b.co"))
	assert.False(t, Email("a@b"))
	assert.False(t, Email("@b.co"))
	assert.False(t, Email("a@@b.co"))
}
