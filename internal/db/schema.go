package db

// SchemaSQL is the complete schema for the issue cache. It is the single
// source of truth; tests build their databases from it.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS issues (
	key TEXT PRIMARY KEY,
	summary TEXT NOT NULL,
	epic_key TEXT,
	fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
