package log

// ZapConfig configures the zap-backed logger.
type ZapConfig struct {
	Level        string // debug, info, warn, error
	Mode         string // debug (development) or production
	Encoding     string // console or json
	ColorEnabled bool
}

// Modes
const (
	ModeDebug      = "debug"
	ModeProduction = "production"
)

// Encodings
const (
	EncodingConsole = "console"
	EncodingJSON    = "json"
)

type ctxKey string

// Context keys picked up as structured fields when present.
const (
	SessionIDKey ctxKey = "session_id"
	RequestIDKey ctxKey = "request_id"
)
