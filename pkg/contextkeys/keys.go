package contextkeys

type contextKey string

const (
	SessionKey contextKey = "Session"
	RequestID  contextKey = "RequestID"
)
