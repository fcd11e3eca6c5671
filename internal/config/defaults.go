package config

// DefaultPageSize matches the page size the Rebrickable API defaults to.
const DefaultPageSize = 20

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BaseDir: DefaultBaseDir(),

		Rebrickable: RebrickableConfig{
			RateLimit: 1, // Rebrickable throttles at ~1 req/s per key
		},

		PageSize: DefaultPageSize,
	}
}
