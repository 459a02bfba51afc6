package config

const (
	defaultServerURL      = "https://www.plantuml.com/plantuml"
	defaultFormat         = "png"
	defaultTimeoutSeconds = 15
	defaultMaxRetries     = 3
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults. HTTP 400
// responses are retried by default for compatibility with the historical
// behavior; set transport.retry_invalid_syntax = false to abort on the
// first syntax rejection.
func Default() Config {
	return Config{
		Server: Server{
			URL:    defaultServerURL,
			Format: defaultFormat,
		},
		Transport: Transport{
			TimeoutSeconds:     defaultTimeoutSeconds,
			MaxRetries:         defaultMaxRetries,
			RetryInvalidSyntax: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
