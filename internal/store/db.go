package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ratforge/ratforge/internal/debug"
)

// Event types written by the exercise screen.
const (
	ExerciseStarted = "exercise_started"
	KittensDropped  = "kittens_dropped"
	KittenRemoved   = "kitten_removed"
	AnswerSubmitted = "answer_submitted"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02 15:04:05.000000"

type OpType int

const (
	AppendEvent OpType = iota
	FetchEvents
	FetchLatest
)

type Request struct {
	Op      OpType
	Type    string
	Payload map[string]any
	Filter  Filter
}

type Response struct {
	Op     OpType
	ID     int64   // Row id of an appended event
	Events []Event // Fetched events, oldest first
	Err    error
}

// Event is one row of the attempt log.
type Event struct {
	ID        int64
	Timestamp time.Time
	Type      string
	Payload   map[string]any
	Version   int
}

// Filter narrows FetchEvents. Zero fields are ignored.
type Filter struct {
	Since time.Time
	Type  string
	Limit int
}

type DB struct {
	conn         *sql.DB
	now          func() time.Time
	RequestChan  chan Request
	ResponseChan chan Response

	done chan struct{} // closed when Start returns
}

func NewDB() *DB {
	return &DB{
		now:          time.Now,
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
		done:         make(chan struct{}),
	}
}

// UserDBPath is the per-user database location below dataDir.
func UserDBPath(dataDir, userID string) string {
	return filepath.Join(dataDir, userID, "events.db")
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}

	// WAL lets the UI read while the worker writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return err
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return err
	}

	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1
	);
	CREATE INDEX IF NOT EXISTS idx_events_type ON events(event_type);
	CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("create schema: %w", err)
	}

	debug.Log(debug.STORE, "opened %s", dbPath)
	d.conn = db
	return nil
}

// Start serves RequestChan until it is closed, then closes ResponseChan.
func (d *DB) Start() {
	defer close(d.done)
	defer close(d.ResponseChan)
	for req := range d.RequestChan {
		switch req.Op {
		case AppendEvent:
			id, err := d.LogEvent(req.Type, req.Payload)
			if err != nil {
				log.Printf("Store Error: %v", err)
			}
			d.ResponseChan <- Response{Op: AppendEvent, ID: id, Err: err}
		case FetchEvents:
			events, err := d.Events(req.Filter)
			d.ResponseChan <- Response{Op: FetchEvents, Events: events, Err: err}
		case FetchLatest:
			var events []Event
			ev, err := d.LatestEvent(req.Type)
			if ev != nil {
				events = []Event{*ev}
			}
			d.ResponseChan <- Response{Op: FetchLatest, Events: events, Err: err}
		}
	}
}

// LogEvent appends an event and returns its row id.
func (d *DB) LogEvent(eventType string, payload map[string]any) (int64, error) {
	if d.conn == nil {
		return 0, fmt.Errorf("store not open")
	}
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	res, err := d.conn.Exec(
		"INSERT INTO events (timestamp, event_type, payload) VALUES (?, ?, ?)",
		d.now().UTC().Format(timeLayout), eventType, string(data),
	)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", eventType, err)
	}
	debug.Log(debug.STORE, "logged %s %s", eventType, data)
	return res.LastInsertId()
}

// Events returns matching events, oldest first.
func (d *DB) Events(f Filter) ([]Event, error) {
	if d.conn == nil {
		return nil, fmt.Errorf("store not open")
	}
	query := "SELECT id, timestamp, event_type, payload, version FROM events WHERE 1=1"
	var args []any
	if !f.Since.IsZero() {
		query += " AND timestamp > ?"
		args = append(args, f.Since.UTC().Format(timeLayout))
	}
	if f.Type != "" {
		query += " AND event_type = ?"
		args = append(args, f.Type)
	}
	query += " ORDER BY timestamp ASC, id ASC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := d.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// LatestEvent returns the newest event of a type, or nil if there is none.
func (d *DB) LatestEvent(eventType string) (*Event, error) {
	if d.conn == nil {
		return nil, fmt.Errorf("store not open")
	}
	rows, err := d.conn.Query(
		"SELECT id, timestamp, event_type, payload, version FROM events WHERE event_type = ? ORDER BY timestamp DESC, id DESC LIMIT 1",
		eventType,
	)
	if err != nil {
		return nil, fmt.Errorf("query latest %s: %w", eventType, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	ev, err := scanEvent(rows)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		ev      Event
		ts, raw string
	)
	if err := rows.Scan(&ev.ID, &ts, &ev.Type, &raw, &ev.Version); err != nil {
		return Event{}, fmt.Errorf("scan event: %w", err)
	}
	t, err := time.Parse(timeLayout, ts)
	if err != nil {
		return Event{}, fmt.Errorf("event %d timestamp %q: %w", ev.ID, ts, err)
	}
	ev.Timestamp = t
	if err := json.Unmarshal([]byte(raw), &ev.Payload); err != nil {
		return Event{}, fmt.Errorf("event %d payload: %w", ev.ID, err)
	}
	return ev, nil
}

// Shutdown closes RequestChan, waits for Start to finish every queued
// request and then closes the database. ResponseChan must keep being drained
// until it is closed.
func (d *DB) Shutdown() {
	close(d.RequestChan)
	<-d.done
	d.Close()
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
