package models

// ModelRegistry lists every model handled by AutoMigrate.
var ModelRegistry = []any{
	&WaitlistDocument{},
}
