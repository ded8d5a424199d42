package reconcile

// Config holds reconcile configuration.
type Config struct {
	// OptimisticLocking rejects updates to rows changed since the snapshot was taken.
	OptimisticLocking bool `mapstructure:"optimistic_locking" default:"false"`
	// BumpOnNoop forces a cache refresh when a save carries no change.
	BumpOnNoop bool `mapstructure:"bump_on_noop" default:"false"`
}

// Options converts the configuration into engine options.
func (c Config) Options() Options {
	return Options{OptimisticLocking: c.OptimisticLocking, BumpOnNoop: c.BumpOnNoop}
}
