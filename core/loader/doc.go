// Package loader provides the plugin-like feature loading system.
//
// Each feature implements the Feature interface and is registered with a
// Manager, which loads the enabled ones onto the Fiber router in
// registration order.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Features such as 'compare' and 'servers' are developed and tested in isolation.
package loader
