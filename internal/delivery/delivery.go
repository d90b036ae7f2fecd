// Package delivery defines the contract every transport surface satisfies.
package delivery

import "context"

// Delivery is one serving surface (HTTP today). Serve blocks until the
// surface stops; shutdown happens through the fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
