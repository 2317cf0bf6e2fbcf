package log

const (
	ModeProduction  = "production"
	ModeDevelopment = "development"

	EncodingJSON    = "json"
	EncodingConsole = "console"

	// FieldRunID is the structured field carrying the per-turn correlation id.
	FieldRunID = "run_id"
)
