// Package api wires HTTP routes to their handlers.
//
// It translates HTTP requests into service calls and service results
// back into HTTP responses. The websocket upgrade endpoint lives here
// too, on a path outside the /api tree.
package api
