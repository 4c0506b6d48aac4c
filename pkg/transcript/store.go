package transcript

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/boristopalov/agentlab/pkg/messaging"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS transcript_log (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	agent_id   TEXT NOT NULL,
	agent_name TEXT NOT NULL,
	kind       TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// Store keeps transcript entries in the transcript_log table.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite transcript database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open transcript db: %w", err)
	}
	s, err := NewStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore prepares the schema on an existing connection.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create transcript_log: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO transcript_log (session, agent_id, agent_name, kind, content, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Session,
		e.AgentID,
		e.AgentName,
		string(e.Kind),
		e.Content,
		e.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record transcript entry: %w", err)
	}
	return nil
}

// Entries returns the entries of session in the order they were recorded.
// An empty session returns every entry.
func (s *Store) Entries(session string) ([]Entry, error) {
	query := `SELECT session, agent_id, agent_name, kind, content, created_at FROM transcript_log`
	var args []any
	if session != "" {
		query += ` WHERE session = ?`
		args = append(args, session)
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transcript_log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, createdAt string
		if err := rows.Scan(&e.Session, &e.AgentID, &e.AgentName, &kind, &e.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan transcript entry: %w", err)
		}
		e.Kind = messaging.Kind(kind)
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
