package agent

// Config holds the remote agent (LangGraph deployment) settings.
type Config struct {
	// URL is the base URL of the deployment.
	URL string `mapstructure:"url" default:""`
	// APIKey is sent as X-Api-Key.
	APIKey string `mapstructure:"api_key" default:""`
	// Graph is the assistant id to run.
	Graph string `mapstructure:"graph" default:"esg_search_agent"`
	// TimeoutSeconds bounds one run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"300"`
}
