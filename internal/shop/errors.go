package shop

import (
	"errors"
	"maps"
	"strings"
)

var (
	// ErrUnknownField is returned when a write names a field the order does not have.
	ErrUnknownField = errors.New("unknown order field")

	// ErrInvalidPayment is returned when a payment value is neither card nor cash.
	ErrInvalidPayment = errors.New("invalid payment method")
)

// FormErrors maps a field to its current validation message.
// A field is present only while its value fails validation.
type FormErrors map[Field]string

// Valid reports whether no field has an error.
func (e FormErrors) Valid() bool {
	return len(e) == 0
}

// Clone returns a copy of the mapping. A nil mapping clones to an empty one.
func (e FormErrors) Clone() FormErrors {
	c := make(FormErrors, len(e))
	maps.Copy(c, e)
	return c
}

// Join returns the messages of the given fields, in that order, separated
// by "; ". Fields without an error are skipped.
func (e FormErrors) Join(order ...Field) string {
	msgs := make([]string, 0, len(order))
	for _, f := range order {
		if msg, ok := e[f]; ok && msg != "" {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}
