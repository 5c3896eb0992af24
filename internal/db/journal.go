package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adamavenir/initbot/internal/types"
)

// Journal kinds.
const (
	KindTable     = "table"
	KindNarrative = "narrative"
	KindRelay     = "relay"
	KindError     = "error"
)

const journalColumns = `guid, ts, channel, kind, body`

// AppendEntry records a sent message and returns it with ID and TS set.
func AppendEntry(db DBTX, entry types.JournalEntry) (types.JournalEntry, error) {
	if entry.TS == 0 {
		entry.TS = time.Now().UnixMilli()
	}
	if entry.ID == "" {
		entry.ID = "msg-" + uuid.NewString()
	}
	_, err := db.Exec(`
		INSERT INTO initbot_messages (guid, ts, channel, kind, body)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, entry.TS, entry.Channel, entry.Kind, entry.Body)
	if err != nil {
		return types.JournalEntry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

// GetEntries returns journal entries oldest first. With a limit, the most
// recent entries are returned.
func GetEntries(db DBTX, options *types.JournalQueryOptions) ([]types.JournalEntry, error) {
	var conditions []string
	var params []any
	limit := 0
	if options != nil {
		if options.Channel != "" {
			conditions = append(conditions, "channel = ?")
			params = append(params, options.Channel)
		}
		if options.Since > 0 {
			conditions = append(conditions, "ts >= ?")
			params = append(params, options.Since)
		}
		limit = options.Limit
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM initbot_messages%s ORDER BY ts ASC, rowid ASC`, journalColumns, whereClause)
	if limit > 0 {
		query = fmt.Sprintf(`
			SELECT %s FROM (
				SELECT %s, rowid AS rid FROM initbot_messages%s
				ORDER BY ts DESC, rowid DESC
				LIMIT ?
			) ORDER BY ts ASC, rid ASC
		`, journalColumns, journalColumns, whereClause)
		params = append(params, limit)
	}

	rows, err := db.Query(query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []types.JournalEntry
	for rows.Next() {
		var entry types.JournalEntry
		if err := rows.Scan(&entry.ID, &entry.TS, &entry.Channel, &entry.Kind, &entry.Body); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CountEntries returns the number of journal entries.
func CountEntries(db DBTX) (int, error) {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM initbot_messages").Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// Journal appends entries to an open connection.
type Journal struct {
	Conn *sql.DB
}

// Append records entry.
func (j Journal) Append(entry types.JournalEntry) error {
	_, err := AppendEntry(j.Conn, entry)
	return err
}
