package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	sess "github.com/lumikids/lumi/internal/session"
)

// Store persists completed session results. Partial sessions never
// reach it; an early exit discards everything.
type Store struct {
	db *sql.DB
}

// DefaultDBPath resolves the history database location. LUMI_DB wins,
// then XDG_DATA_HOME, then ~/.local/share.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LUMI_DB"); p != "" {
		return p, nil
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "lumi", "lumi.db"), nil
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS session_results (
	session_id    TEXT PRIMARY KEY,
	learner_id    TEXT NOT NULL,
	started_at    INTEGER NOT NULL,
	duration_ms   INTEGER NOT NULL,
	attempted     INTEGER NOT NULL,
	correct       INTEGER NOT NULL,
	hinted        INTEGER NOT NULL,
	skill_tags    TEXT NOT NULL DEFAULT '[]',
	effort        TEXT NOT NULL,
	bonus_offered INTEGER NOT NULL DEFAULT 0,
	bonus_used    INTEGER NOT NULL DEFAULT 0,
	used_fallback INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_results_started ON session_results(started_at DESC);
`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Append records a completed session result.
func (s *Store) Append(ctx context.Context, r sess.Result) error {
	tags, err := json.Marshal(r.SkillTags)
	if err != nil {
		return fmt.Errorf("encode skill tags: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO session_results
	(session_id, learner_id, started_at, duration_ms, attempted, correct,
	 hinted, skill_tags, effort, bonus_offered, bonus_used, used_fallback)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.LearnerID, r.StartedAt.UnixMilli(), r.Duration.Milliseconds(),
		r.Attempted, r.Correct, r.Hinted, string(tags), string(r.Effort),
		boolInt(r.BonusOffered), boolInt(r.BonusUsed), boolInt(r.UsedFallback))
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// MarkBonusUsed flags a stored result after the learner takes the
// bonus offer.
func (s *Store) MarkBonusUsed(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE session_results SET bonus_used = 1 WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("mark bonus used: %w", err)
	}
	return nil
}

// List returns the most recent results, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]sess.Result, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, learner_id, started_at, duration_ms, attempted, correct,
       hinted, skill_tags, effort, bonus_offered, bonus_used, used_fallback
FROM session_results ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []sess.Result
	for rows.Next() {
		var (
			r                            sess.Result
			startedMs, durationMs        int64
			tagsJSON, effort             string
			bonusOff, bonusUsed, fellbck int
		)
		if err := rows.Scan(&r.SessionID, &r.LearnerID, &startedMs, &durationMs,
			&r.Attempted, &r.Correct, &r.Hinted, &tagsJSON, &effort,
			&bonusOff, &bonusUsed, &fellbck); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		if err := json.Unmarshal([]byte(tagsJSON), &r.SkillTags); err != nil {
			return nil, fmt.Errorf("decode skill tags: %w", err)
		}
		r.Effort = sess.EffortLabel(effort)
		r.BonusOffered = bonusOff != 0
		r.BonusUsed = bonusUsed != 0
		r.UsedFallback = fellbck != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

// Reset drops all stored history.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_results`); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
