package common

type contextKey string

const (
	UserIDContextKey    contextKey = "user_id"
	UserEmailContextKey contextKey = "user_email"
	LatencyContextKey   contextKey = "__execution_time"
)
