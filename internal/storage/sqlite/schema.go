// ABOUTME: SQLite database schema for the knowledge store
// ABOUTME: seq preserves insertion order for similarity tie-breaks
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
CREATE TABLE IF NOT EXISTS knowledge_documents (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    text TEXT NOT NULL,
    source_tag TEXT NOT NULL DEFAULT 'manual',
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_knowledge_source ON knowledge_documents(source_tag);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
