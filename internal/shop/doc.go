// Package shop holds the storefront domain model: products and their prices,
// the order draft, payment methods, form fields and form error mappings.
//
// Values in this package carry no behavior beyond their own invariants.
// Mutation and change notification live in the state package.
package shop
