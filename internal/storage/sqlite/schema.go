package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session_kv (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	resource      TEXT NOT NULL,
	id            TEXT NOT NULL,
	category      TEXT NOT NULL,
	rank          INTEGER NOT NULL CHECK (rank >= 1),
	previous_rank INTEGER NOT NULL DEFAULT 0,
	title         TEXT NOT NULL DEFAULT '',
	updated_at    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (resource, id)
);

CREATE INDEX IF NOT EXISTS idx_items_resource_category_rank
	ON items (resource, category, rank);
`
