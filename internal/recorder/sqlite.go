package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const refreshTable = "refresh_events"

var refreshColumns = []string{
	"id", "started_at", "duration_ms", "source", "articles", "signals",
	"news_fallback", "signals_fallback", "superseded", "error",
}

// SQLiteRecorder persists refresh history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS refresh_events (
			id               TEXT PRIMARY KEY,
			started_at       INTEGER NOT NULL,
			duration_ms      INTEGER,
			source           TEXT,
			articles         INTEGER,
			signals          INTEGER,
			news_fallback    INTEGER,
			signals_fallback INTEGER,
			superseded       INTEGER,
			error            TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_started ON refresh_events(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRefresh(evt *RefreshEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := evt.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	_, err := sq.Insert(refreshTable).
		Columns(refreshColumns...).
		Values(
			id.String(), evt.StartedAt.UnixMilli(), evt.Duration.Milliseconds(),
			evt.Source, evt.Articles, evt.Signals,
			evt.NewsFallback, evt.SignalsFallback, evt.Superseded, evt.Error,
		).
		RunWith(r.db).
		Exec()
	return err
}

func (r *SQLiteRecorder) History(limit int) ([]RefreshEvent, error) {
	q := sq.Select(refreshColumns...).
		From(refreshTable).
		OrderBy("started_at DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	rows, err := q.RunWith(r.db).Query()
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	events := []RefreshEvent{}
	for rows.Next() {
		var (
			evt        RefreshEvent
			id         string
			startedAt  int64
			durationMS int64
			errText    sql.NullString
		)
		if err := rows.Scan(&id, &startedAt, &durationMS, &evt.Source, &evt.Articles, &evt.Signals,
			&evt.NewsFallback, &evt.SignalsFallback, &evt.Superseded, &errText); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if evt.ID, err = uuid.Parse(id); err != nil {
			r.logger.Warn("refresh event has malformed id", zap.String("id", id), zap.Error(err))
		}
		evt.StartedAt = time.UnixMilli(startedAt)
		evt.Duration = time.Duration(durationMS) * time.Millisecond
		evt.Error = errText.String
		events = append(events, evt)
	}
	return events, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
