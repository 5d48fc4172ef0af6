package config

const (
	defaultServerPort = 8080

	defaultDBMaxConns = 10
	defaultDBMinConns = 2

	defaultBreakerMaxFailures = 5
	defaultBreakerHalfOpen    = 1
)

// defaults returns the default configuration values. These are loaded first
// and can be overridden by base.yaml, profile YAML, and env vars.
func defaults() map[string]any {
	return map[string]any{
		"server.host":          "0.0.0.0",
		"server.port":          defaultServerPort,
		"server.read_timeout":  "5s",
		"server.write_timeout": "10s",
		"server.idle_timeout":  "120s",

		"log.level":  "info",
		"log.format": "json",

		"database.driver":             "postgres",
		"database.dsn":                "",
		"database.max_conns":          defaultDBMaxConns,
		"database.min_conns":          defaultDBMinConns,
		"database.max_conn_idle_time": "5m",
		"database.max_conn_lifetime":  "30m",
		"database.migrate":            true,

		"cache.enabled":  false,
		"cache.addr":     "localhost:6379",
		"cache.password": "",
		"cache.db":       0,
		"cache.ttl":      "30s",

		"breaker.enabled":         true,
		"breaker.max_failures":    defaultBreakerMaxFailures,
		"breaker.timeout":         "30s",
		"breaker.half_open_limit": defaultBreakerHalfOpen,

		"telemetry.enabled":  false,
		"telemetry.exporter": "stdout",
		"telemetry.endpoint": "",
	}
}
