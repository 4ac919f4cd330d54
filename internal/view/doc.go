// Package view contains the storefront's terminal views.
//
// Every view owns a region of the screen and draws only from its own
// fields, which the orchestrator fills in through setters. User input
// arrives through HandleKey and leaves as intent events on the bus. Views
// never read or write application state directly.
//
// Views:
//   - Page: catalog grid, basket counter, status line
//   - PreviewCard: product detail with the add/remove button
//   - Basket: basket items, total, checkout button
//   - DeliveryForm: payment method and address
//   - ContactsForm: email and phone
//   - SuccessPanel: order confirmation
//   - Modal: overlay host for the views above
package view
