package query

// Config holds cache settings for the query layer.
type Config struct {
	// CountTTLSeconds is how long a table's row count stays cached. Zero disables caching.
	CountTTLSeconds int `mapstructure:"count_ttl_seconds" default:"600"`
	// PageTTLSeconds is how long a fetched page stays cached. Zero disables caching.
	PageTTLSeconds int `mapstructure:"page_ttl_seconds" default:"600"`
}
