// Package validate checks the checkout forms.
//
// Both passes are pure: they take field values and return the complete error
// mapping for their form. An empty mapping means the form is valid.
package validate

import (
	"errors"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/dshills/storefront/internal/shop"
)

// Messages shown for failed fields.
const (
	MsgPaymentRequired = "Select a payment method"
	MsgAddressRequired = "Enter a delivery address"
	MsgEmailRequired   = "Enter an email"
	MsgEmailFormat     = "Invalid email format"
	MsgPhoneRequired   = "Enter a phone number"
	MsgPhoneFormat     = "Invalid phone format"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// International dialing shape: optional "+", no leading zero, 4 to 15 digits.
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{3,14}$`)
)

type deliveryForm struct {
	Payment string `form:"payment" validate:"required,oneof=card cash"`
	Address string `form:"address" validate:"required"`
}

type contactsForm struct {
	Email string `form:"email" validate:"required,shop_email"`
	Phone string `form:"phone" validate:"required,shop_phone"`
}

// messages maps a field and the failed tag to a message. A missing tag
// entry falls back to the field's "" entry.
var messages = map[shop.Field]map[string]string{
	shop.FieldPayment: {"": MsgPaymentRequired},
	shop.FieldAddress: {"": MsgAddressRequired},
	shop.FieldEmail:   {"required": MsgEmailRequired, "": MsgEmailFormat},
	shop.FieldPhone:   {"required": MsgPhoneRequired, "": MsgPhoneFormat},
}

var engine = newEngine()

func newEngine() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	mustRegister(v, "shop_email", func(fl validator.FieldLevel) bool {
		return Email(fl.Field().String())
	})
	mustRegister(v, "shop_phone", func(fl validator.FieldLevel) bool {
		return Phone(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validate: register " + tag + ": " + err.Error())
	}
}

// Email reports whether s has the shape of an email address.
func Email(s string) bool {
	return emailPattern.MatchString(s)
}

// Phone reports whether s has the shape of an international phone number.
func Phone(s string) bool {
	return phonePattern.MatchString(s)
}

// Delivery validates the delivery step.
func Delivery(payment shop.PaymentMethod, address string) shop.FormErrors {
	return check(deliveryForm{
		Payment: string(payment),
		Address: address,
	})
}

// Contacts validates the contacts step. Presence and format failures have
// distinct messages.
func Contacts(email, phone string) shop.FormErrors {
	return check(contactsForm{
		Email: email,
		Phone: phone,
	})
}

func check(form any) shop.FormErrors {
	result := shop.FormErrors{}

	err := engine.Struct(form)
	if err == nil {
		return result
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return result
	}

	for _, fe := range fieldErrs {
		field := shop.Field(fe.Field())
		if _, seen := result[field]; seen {
			continue
		}
		result[field] = message(field, fe.Tag())
	}
	return result
}

func message(field shop.Field, tag string) string {
	byTag, ok := messages[field]
	if !ok {
		return "Invalid " + string(field)
	}
	if msg, ok := byTag[tag]; ok {
		return msg
	}
	return byTag[""]
}
