package store

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/hardliner66/timetracking/internal/event"
)

// SQLiteStore keeps the log in a single events table. Replace runs inside
// one transaction, which gives the same no-partial-write guarantee as the
// file store's rename.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

const createEventsTable = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	description TEXT,
	time INTEGER NOT NULL
)
`

func openSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	if _, err := db.Exec(createEventsTable); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "could not initialize %s", path)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Load() ([]event.TrackingEvent, error) {
	rows, err := s.db.Query("SELECT kind, description, time FROM events ORDER BY time, id")
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", s.path)
	}
	defer rows.Close()

	var events []event.TrackingEvent
	for rows.Next() {
		var kind string
		var description sql.NullString
		var unix int64
		if err := rows.Scan(&kind, &description, &unix); err != nil {
			return nil, errors.Wrapf(err, "could not read %s", s.path)
		}
		data := event.TrackingData{Time: time.Unix(unix, 0).UTC()}
		if description.Valid {
			data.Description = &description.String
		}
		switch kind {
		case "start":
			events = append(events, event.Start(data))
		case "stop":
			events = append(events, event.Stop(data))
		default:
			return nil, errors.Errorf("unknown event kind %q in %s", kind, s.path)
		}
	}
	return events, rows.Err()
}

func (s *SQLiteStore) Replace(events []event.TrackingEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrapf(err, "could not replace %s", s.path)
	}
	if _, err := tx.Exec("DELETE FROM events"); err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "could not replace %s", s.path)
	}
	for _, e := range events {
		var description any
		if d, ok := e.Description(); ok {
			description = d
		}
		if _, err := tx.Exec(
			"INSERT INTO events (kind, description, time) VALUES (?, ?, ?)",
			e.Kind(), description, e.Time(true).Unix(),
		); err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "could not replace %s", s.path)
		}
	}
	return errors.Wrapf(tx.Commit(), "could not replace %s", s.path)
}

func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Close() error { return s.db.Close() }
