package pipeline

import "time"

// Log prefixes
const (
	LogPrefixHandle   = "internal.pipeline.Handle"
	LogPrefixRegistry = "internal.pipeline.Registry"
	LogPrefixArchiver = "internal.pipeline.Archiver"
	LogPrefixComplete = "internal.pipeline.LLMCompleter.Complete"
	LogPrefixHost     = "internal.pipeline.NewHost"
)

const (
	MsgPipelineError = "Error procesando solicitud: %v"

	DefaultMaxSessions     = 1000
	DefaultSessionTTL      = 30 * time.Minute
	DefaultRateLimitPerMin = 30
	DefaultBurst           = 5
	DefaultArchiveBuffer   = 64
	DefaultArchiveTimeout  = 5 * time.Second
)
