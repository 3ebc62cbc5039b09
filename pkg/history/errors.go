package history

import "errors"

var (
	ErrNilStorage          = errors.New("history: storage cannot be nil")
	ErrNilEntityIDFunc     = errors.New("history: entity id function cannot be nil")
	ErrEmptyEntityID       = errors.New("history: entity id cannot be empty")
	ErrFailedToStoreRecord = errors.New("history: failed to store record")
	ErrFailedToListRecords = errors.New("history: failed to list records")

	ErrFailedToParseRedisURL    = errors.New("history: failed to parse redis connection string")
	ErrRedisNotReady            = errors.New("history: redis did not become ready within the given time period")
	ErrFailedToParseDBConfig    = errors.New("history: failed to parse postgres config")
	ErrFailedToOpenDBConnection = errors.New("history: failed to open postgres connection")
	ErrFailedToApplyMigrations  = errors.New("history: failed to apply migrations")
)
