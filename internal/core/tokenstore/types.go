package tokenstore

// Type represents the backing implementation of a token store.
type Type string

const (
	// TypeRedis persists tokens in Redis.
	TypeRedis Type = "redis"
	// TypeSQLite persists tokens in a local SQLite file.
	TypeSQLite Type = "sqlite"
	// TypeMemory keeps tokens in process memory only.
	TypeMemory Type = "memory"
)
