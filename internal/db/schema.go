package db

import "database/sql"

const schemaSQL = `
-- Messages the bot sent to the channel
CREATE TABLE IF NOT EXISTS initbot_messages (
  guid TEXT PRIMARY KEY,         -- e.g., "msg-5f0c..."
  ts INTEGER NOT NULL,           -- unix timestamp (ms)
  channel TEXT NOT NULL,
  kind TEXT NOT NULL,            -- table, narrative, relay, error
  body TEXT NOT NULL             -- plain text, no control codes
);

CREATE INDEX IF NOT EXISTS idx_initbot_messages_ts ON initbot_messages(ts);
CREATE INDEX IF NOT EXISTS idx_initbot_messages_channel ON initbot_messages(channel);
`

// DBTX represents shared methods across sql.DB and sql.Tx.
type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// InitSchema initializes the journal schema.
func InitSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(schemaSQL); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

