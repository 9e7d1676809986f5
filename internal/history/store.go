package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"eventmod/internal/domain"
	"eventmod/internal/eventbus"
)

// Entry is one journaled bulk action
type Entry struct {
	ID       string
	Action   domain.Action
	EventIDs []string
	View     domain.ViewMode
	Outcome  string
	OK       bool
	Error    string
	At       time.Time
}

// Store provides access to the action journal
type Store interface {
	Record(ctx context.Context, e Entry) (Entry, error)
	List(ctx context.Context, limit int) ([]Entry, error)
	Close() error
}

const schema = `
CREATE TABLE IF NOT EXISTS batches (
	id         TEXT PRIMARY KEY,
	action     TEXT NOT NULL,
	event_ids  TEXT NOT NULL,
	view       TEXT NOT NULL,
	outcome    TEXT NOT NULL DEFAULT '',
	ok         INTEGER NOT NULL,
	error      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at);
`

// storedTimeLayout is fixed width so created_at sorts lexically
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteStore keeps the journal in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal at path
func Open(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Record appends an entry, assigning an id and timestamp when missing
func (s *SQLiteStore) Record(ctx context.Context, e Entry) (Entry, error) {
	e = stamp(e)

	ids, err := json.Marshal(e.EventIDs)
	if err != nil {
		return Entry{}, fmt.Errorf("encode event ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO batches (id, action, event_ids, view, outcome, ok, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		e.ID, string(e.Action), string(ids), string(e.View), e.Outcome, e.OK, e.Error,
		e.At.UTC().Format(storedTimeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record batch: %w", err)
	}
	return e, nil
}

// List returns the newest entries first. A limit <= 0 returns everything.
func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, action, event_ids, view, outcome, ok, error, created_at FROM batches ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e          Entry
			action     string
			view       string
			ids        string
			createdStr string
		)
		if err := rows.Scan(&e.ID, &action, &ids, &view, &e.Outcome, &e.OK, &e.Error, &createdStr); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		e.Action = domain.Action(action)
		e.View = domain.ViewMode(view)
		if err := json.Unmarshal([]byte(ids), &e.EventIDs); err != nil {
			return nil, fmt.Errorf("batch %s: decode event ids: %w", e.ID, err)
		}
		e.At, err = time.Parse(storedTimeLayout, createdStr)
		if err != nil {
			return nil, fmt.Errorf("batch %s: parse time: %w", e.ID, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MemoryStore is an in-memory journal used when history is disabled
type MemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewMemoryStore creates an empty in-memory journal
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(_ context.Context, e Entry) (Entry, error) {
	e = stamp(e)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return e, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, 0, len(s.entries))
	for i := len(s.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

func stamp(e Entry) Entry {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if e.EventIDs == nil {
		e.EventIDs = []string{}
	}
	return e
}

// Subscribe journals completed and failed actions published on the bus.
// The returned function removes the subscriptions.
func Subscribe(bus eventbus.EventBus, store Store) func() {
	record := func(e Entry) {
		if _, err := store.Record(context.Background(), e); err != nil {
			log.Printf("History: %v", err)
		}
	}

	offDone := bus.Subscribe(eventbus.EventActionCompleted, func(ev eventbus.DomainEvent) {
		done, ok := ev.(eventbus.ActionCompletedEvent)
		if !ok {
			return
		}
		record(Entry{
			Action:   done.Action,
			EventIDs: done.EventIDs,
			View:     done.View,
			Outcome:  done.Outcome.String(),
			OK:       true,
		})
	})
	offFailed := bus.Subscribe(eventbus.EventActionFailed, func(ev eventbus.DomainEvent) {
		failed, ok := ev.(eventbus.ActionFailedEvent)
		if !ok {
			return
		}
		e := Entry{Action: failed.Action, EventIDs: failed.EventIDs, View: failed.View}
		if failed.Err != nil {
			e.Error = failed.Err.Error()
		}
		record(e)
	})

	return func() {
		offDone()
		offFailed()
	}
}
