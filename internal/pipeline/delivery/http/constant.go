package http

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 200

	historySourceLive    = "live"
	historySourceArchive = "archive"
)
