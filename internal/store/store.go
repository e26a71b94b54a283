// Package store persists parse results in an embedded SQLite database.
// Columns carry the fields recruiters filter on; the full result rides along
// as a JSON payload.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/recruitflow/resume-parser/internal/common"
	"github.com/recruitflow/resume-parser/internal/entity"
)

const schema = `
CREATE TABLE IF NOT EXISTS parse_results (
	id TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL,
	strategy TEXT NOT NULL,
	mode TEXT NOT NULL,
	source TEXT NOT NULL,
	subject TEXT,
	position TEXT,
	file_url TEXT,
	full_name TEXT,
	email TEXT,
	phone TEXT,
	quality REAL NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_parse_results_created ON parse_results(created_at);
CREATE INDEX IF NOT EXISTS idx_parse_results_email ON parse_results(email) WHERE email != '';
`

// Record is one persisted parse: routing metadata plus the full result.
type Record struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Strategy  string              `json:"strategy"`
	Mode      string              `json:"mode"`
	Source    string              `json:"source"`
	Subject   string              `json:"subject,omitempty"`
	Position  string              `json:"position,omitempty"`
	FileURL   string              `json:"file_url,omitempty"`
	Result    *entity.ParseResult `json:"result"`
}

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the results database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	// modernc's driver is single-writer; one connection sidesteps
	// SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db, log: logger}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save persists one record, assigning its id and timestamp.
func (s *Store) Save(ctx context.Context, rec *Record) error {
	if rec.Result == nil {
		return common.NewAppError("STORE_ERROR", "record has no result", common.ErrInvalidInput)
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("marshal result payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO parse_results
			(id, created_at, strategy, mode, source, subject, position, file_url,
			 full_name, email, phone, quality, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.Unix(), rec.Strategy, rec.Mode, rec.Source,
		rec.Subject, rec.Position, rec.FileURL,
		rec.Result.Candidate.FullName, rec.Result.Candidate.Email,
		rec.Result.Candidate.Phone, rec.Result.Candidate.QualityScore,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert parse result: %w", err)
	}
	s.log.Debug("store.save.ok", "id", rec.ID, "strategy", rec.Strategy)
	return nil
}

// Get returns one record by id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, strategy, mode, source, subject, position, file_url, payload
		FROM parse_results WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.NewAppError("NOT_FOUND", "parse result not found", common.ErrNotFound)
	}
	return rec, err
}

// List returns the newest records first.
func (s *Store) List(ctx context.Context, limit, offset int) ([]*Record, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, strategy, mode, source, subject, position, file_url, payload
		FROM parse_results ORDER BY created_at DESC, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parse results: %w", err)
	}
	defer rows.Close()

	out := []*Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec     Record
		created int64
		payload string
	)
	if err := row.Scan(&rec.ID, &created, &rec.Strategy, &rec.Mode, &rec.Source,
		&rec.Subject, &rec.Position, &rec.FileURL, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan parse result: %w", err)
	}
	rec.CreatedAt = time.Unix(created, 0).UTC()
	rec.Result = entity.NewParseResult()
	if err := json.Unmarshal([]byte(payload), rec.Result); err != nil {
		return nil, fmt.Errorf("decode result payload: %w", err)
	}
	return &rec, nil
}
