// Package app hosts the storefront: it wires the event bus, state store,
// API client and views together, runs the terminal event loop and routes
// background work back onto it.
//
// # Data flow
//
//	view ──intent──▶ bus ──▶ Orchestrator ──mutation──▶ state.Store
//	                                  ▲                      │
//	                                  └──── change event ◀───┘
//	                                  │
//	                                  └──setter──▶ view
//
// Views never see the store and the store never sees a view. The
// Orchestrator is the only component that knows both.
//
// # Threading
//
// The bus, the store and the views are single-threaded. Network calls run
// on background goroutines started through a Scheduler; their results are
// posted back to the event loop and re-published as bus events there.
package app
