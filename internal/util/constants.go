package util

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ContextUserKey is where AuthMiddleware stores the token claims.
const ContextUserKey = "user"
