// Package store persists submitted cases and their prediction results. The
// visualization graph itself is transient and is never stored here.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/icdkit/icdgraph/internal/model"
)

// ErrNotFound is returned when a case id doesn't exist.
var ErrNotFound = errors.New("case not found")

// Case is a stored case text plus the prediction run it produced.
type Case struct {
	ID        int64                  `json:"id"`
	Title     string                 `json:"title"`
	Text      string                 `json:"text"`
	CreatedAt time.Time              `json:"createdAt"`
	Result    model.PredictionResult `json:"result"`
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the case database and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS cases (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT,
			case_text TEXT NOT NULL,
			result_json TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS predictions (
			case_id INTEGER NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
			rank INTEGER NOT NULL,
			code TEXT NOT NULL,
			description TEXT,
			probability REAL,
			PRIMARY KEY (case_id, rank)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_predictions_code ON predictions(code);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveCase stores a case and its prediction result, returning the new id. The
// ranked predictions are additionally broken out into rows so codes can be
// queried across cases.
func (s *Store) SaveCase(title, text string, result model.PredictionResult) (int64, error) {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO cases (title, case_text, result_json, created_at) VALUES (?, ?, ?, ?)`,
		title, text, string(resultJSON), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for rank, p := range result.ICDPredictions {
		_, err := tx.Exec(
			`INSERT INTO predictions (case_id, rank, code, description, probability) VALUES (?, ?, ?, ?, ?)`,
			id, rank+1, p.Code, p.Description, p.Probability,
		)
		if err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetCase loads a single stored case with its full prediction result.
func (s *Store) GetCase(id int64) (Case, error) {
	row := s.db.QueryRow(
		`SELECT id, title, case_text, result_json, created_at FROM cases WHERE id = ?`, id,
	)
	return scanCase(row)
}

// ListCases returns the most recent cases, newest first.
func (s *Store) ListCases(limit int) ([]Case, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, title, case_text, result_json, created_at FROM cases ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// DeleteCase removes a case and its prediction rows.
func (s *Store) DeleteCase(id int64) error {
	res, err := s.db.Exec(`DELETE FROM cases WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(`DELETE FROM predictions WHERE case_id = ?`, id); err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CasesForCode returns ids of cases whose predictions include the given code.
func (s *Store) CasesForCode(code string) ([]int64, error) {
	rows, err := s.db.Query(`SELECT DISTINCT case_id FROM predictions WHERE code = ? ORDER BY case_id`, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCase(row rowScanner) (Case, error) {
	var c Case
	var resultJSON, createdAt string
	err := row.Scan(&c.ID, &c.Title, &c.Text, &resultJSON, &createdAt)
	if err == sql.ErrNoRows {
		return Case{}, ErrNotFound
	}
	if err != nil {
		return Case{}, err
	}
	if err := json.Unmarshal([]byte(resultJSON), &c.Result); err != nil {
		return Case{}, fmt.Errorf("corrupt result for case %d: %w", c.ID, err)
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return c, nil
}
