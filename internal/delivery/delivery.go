// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running server started by the application container.
type Delivery interface {
	Serve(ctx context.Context) error
}
