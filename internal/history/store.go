// Package history records past earshot runs in a local SQLite database so
// users can see what was built, when, and with what result.
package history

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration
)

// ErrNotFound is returned when a build record doesn't exist.
var ErrNotFound = errors.New("build not found")

// Build is one recorded earshot run.
type Build struct {
	ID         int64
	Timestamp  time.Time
	Command    []string
	Directory  string
	Revision   string
	ExitCode   int
	EntryCount int
	Output     string
}

// Store persists build records in SQLite.
type Store struct {
	db *sql.DB
}

// OpenStore opens or creates the history database at the given path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS builds (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			ts          TEXT NOT NULL,
			command     TEXT NOT NULL,
			directory   TEXT NOT NULL,
			revision    TEXT NOT NULL DEFAULT '',
			exit_code   INTEGER NOT NULL,
			entry_count INTEGER NOT NULL,
			output      TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_builds_ts ON builds(ts);
	`)
	if err != nil {
		return fmt.Errorf("creating history schema: %w", err)
	}
	return nil
}

// Record appends a build and returns its assigned id.
func (s *Store) Record(b Build) (int64, error) {
	cmdJSON, err := json.Marshal(b.Command)
	if err != nil {
		return 0, fmt.Errorf("marshaling command: %w", err)
	}
	if b.Timestamp.IsZero() {
		b.Timestamp = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO builds (ts, command, directory, revision, exit_code, entry_count, output)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, b.Timestamp.Format(time.RFC3339Nano), string(cmdJSON), b.Directory,
		b.Revision, b.ExitCode, b.EntryCount, b.Output)
	if err != nil {
		return 0, fmt.Errorf("inserting build: %w", err)
	}
	return res.LastInsertId()
}

// Get retrieves one build by id.
func (s *Store) Get(id int64) (*Build, error) {
	row := s.db.QueryRow(`
		SELECT id, ts, command, directory, revision, exit_code, entry_count, output
		FROM builds WHERE id = ?
	`, id)
	b, err := scanBuild(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return b, err
}

// Recent returns the latest n builds, newest first.
func (s *Store) Recent(n int) ([]*Build, error) {
	rows, err := s.db.Query(`
		SELECT id, ts, command, directory, revision, exit_code, entry_count, output
		FROM builds ORDER BY id DESC LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var builds []*Build
	for rows.Next() {
		b, err := scanBuild(rows.Scan)
		if err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// Count returns the total number of recorded builds.
func (s *Store) Count() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM builds`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting builds: %w", err)
	}
	return count, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func scanBuild(scan func(...any) error) (*Build, error) {
	var b Build
	var tsStr, cmdStr string
	if err := scan(&b.ID, &tsStr, &cmdStr, &b.Directory, &b.Revision,
		&b.ExitCode, &b.EntryCount, &b.Output); err != nil {
		return nil, err
	}
	b.Timestamp, _ = time.Parse(time.RFC3339Nano, tsStr)
	if err := json.Unmarshal([]byte(cmdStr), &b.Command); err != nil {
		return nil, fmt.Errorf("unmarshaling command: %w", err)
	}
	return &b, nil
}
