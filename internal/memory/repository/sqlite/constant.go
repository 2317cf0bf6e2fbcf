package sqlite

const (
	LogPrefixNew    = "internal.memory.repository.sqlite.New"
	LogPrefixSearch = "internal.memory.repository.sqlite.Search"

	schema = `
	CREATE TABLE IF NOT EXISTS memory_records (
		id        TEXT PRIMARY KEY,
		user_id   TEXT NOT NULL,
		content   TEXT NOT NULL,
		role      TEXT NOT NULL DEFAULT 'user',
		ts        INTEGER NOT NULL DEFAULT 0,
		embedding BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memory_records_user ON memory_records(user_id);
	`
)
