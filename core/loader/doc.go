// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and registers its own routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Register adds a feature, LoadAll loads the enabled
// ones in registration order and stops at the first failure. Features such as
// records, agent, session or integrity can therefore be developed and tested in
// isolation.
package loader
