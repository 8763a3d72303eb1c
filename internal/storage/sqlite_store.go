package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ritmoapp/ritmo/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	icon TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	bg_color TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT 'other',
	frequency TEXT NOT NULL DEFAULT 'daily',
	type TEXT NOT NULL DEFAULT 'counter',
	target_count INTEGER NOT NULL DEFAULT 0,
	target_minutes INTEGER NOT NULL DEFAULT 0,
	pomodoro_work INTEGER NOT NULL DEFAULT 0,
	pomodoro_break INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	sort_order INTEGER NOT NULL DEFAULT 0,
	group_id TEXT
);
CREATE TABLE IF NOT EXISTS habit_groups (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	icon TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	sort_order INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS progress (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	day TEXT NOT NULL,
	count INTEGER NOT NULL DEFAULT 0,
	completed INTEGER NOT NULL DEFAULT 0,
	completed_at TEXT,
	minutes_spent INTEGER NOT NULL DEFAULT 0,
	pomodoro_sessions INTEGER NOT NULL DEFAULT 0,
	UNIQUE(habit_id, day)
);
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore is the database-backed persistence adapter. Save replaces the
// whole snapshot inside one transaction so that load always observes a
// consistent committed shape, mirroring the JSON store's whole-file writes.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}
	return s.open()
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *SQLiteStore) Load() (Snapshot, error) {
	if err := s.open(); err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot

	rows, err := s.db.Query(`SELECT id, title, icon, color, bg_color, category, frequency, type,
		target_count, target_minutes, pomodoro_work, pomodoro_break, created_at, sort_order, group_id
		FROM habits ORDER BY sort_order`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load habits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var h models.Habit
		var createdAt string
		var groupID sql.NullString
		if err := rows.Scan(&h.ID, &h.Title, &h.Icon, &h.Color, &h.BgColor, &h.Category, &h.Frequency,
			&h.Type, &h.TargetCount, &h.TargetMinutes, &h.PomodoroWork, &h.PomodoroBreak,
			&createdAt, &h.Order, &groupID); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan habit: %w", err)
		}
		if h.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return Snapshot{}, err
		}
		if groupID.Valid {
			g := groupID.String
			h.GroupID = &g
		}
		snap.Habits = append(snap.Habits, h)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}

	groupRows, err := s.db.Query(`SELECT id, name, icon, color, sort_order FROM habit_groups ORDER BY sort_order`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load groups: %w", err)
	}
	defer groupRows.Close()
	for groupRows.Next() {
		var g models.HabitGroup
		if err := groupRows.Scan(&g.ID, &g.Name, &g.Icon, &g.Color, &g.Order); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan group: %w", err)
		}
		snap.Groups = append(snap.Groups, g)
	}
	if err := groupRows.Err(); err != nil {
		return Snapshot{}, err
	}

	progRows, err := s.db.Query(`SELECT id, habit_id, day, count, completed, completed_at,
		minutes_spent, pomodoro_sessions FROM progress ORDER BY day`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load progress: %w", err)
	}
	defer progRows.Close()
	for progRows.Next() {
		var p models.Progress
		var completed int
		var completedAt sql.NullString
		if err := progRows.Scan(&p.ID, &p.HabitID, &p.Date, &p.Count, &completed, &completedAt,
			&p.MinutesSpent, &p.PomodoroSessions); err != nil {
			return Snapshot{}, fmt.Errorf("failed to scan progress: %w", err)
		}
		p.Completed = completed != 0
		if completedAt.Valid && completedAt.String != "" {
			t, err := parseTimestamp(completedAt.String)
			if err != nil {
				return Snapshot{}, err
			}
			p.CompletedAt = &t
		}
		snap.Progress = append(snap.Progress, p)
	}
	if err := progRows.Err(); err != nil {
		return Snapshot{}, err
	}

	var currentDate string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'current_date'`).Scan(&currentDate); err == nil {
		if snap.CurrentDate, err = parseTimestamp(currentDate); err != nil {
			return Snapshot{}, err
		}
	}
	var skip string
	if err := s.db.QueryRow(`SELECT value FROM meta WHERE key = 'skip_auto_load'`).Scan(&skip); err == nil {
		snap.SkipAutoLoad = skip == "true"
	}

	return snap, nil
}

func (s *SQLiteStore) Save(snap Snapshot) error {
	if err := s.open(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"habits", "habit_groups", "progress"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, h := range snap.Habits {
		var groupID any
		if h.GroupID != nil {
			groupID = *h.GroupID
		}
		if _, err := tx.Exec(`INSERT INTO habits (id, title, icon, color, bg_color, category, frequency,
			type, target_count, target_minutes, pomodoro_work, pomodoro_break, created_at, sort_order, group_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.Title, h.Icon, h.Color, h.BgColor, string(h.Category), string(h.Frequency),
			string(h.Type), h.TargetCount, h.TargetMinutes, h.PomodoroWork, h.PomodoroBreak,
			h.CreatedAt.Format(time.RFC3339), h.Order, groupID); err != nil {
			return fmt.Errorf("failed to insert habit: %w", err)
		}
	}

	for _, g := range snap.Groups {
		if _, err := tx.Exec(`INSERT INTO habit_groups (id, name, icon, color, sort_order) VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.Name, g.Icon, g.Color, g.Order); err != nil {
			return fmt.Errorf("failed to insert group: %w", err)
		}
	}

	for _, p := range snap.Progress {
		var completedAt any
		if p.CompletedAt != nil {
			completedAt = p.CompletedAt.Format(time.RFC3339)
		}
		completed := 0
		if p.Completed {
			completed = 1
		}
		if _, err := tx.Exec(`INSERT INTO progress (id, habit_id, day, count, completed, completed_at,
			minutes_spent, pomodoro_sessions) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.HabitID, p.Date, p.Count, completed, completedAt,
			p.MinutesSpent, p.PomodoroSessions); err != nil {
			return fmt.Errorf("failed to insert progress: %w", err)
		}
	}

	skip := "false"
	if snap.SkipAutoLoad {
		skip = "true"
	}
	for key, value := range map[string]string{
		"current_date":   snap.CurrentDate.Format(time.RFC3339),
		"skip_auto_load": skip,
	} {
		if _, err := tx.Exec(`INSERT INTO meta (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("failed to save meta %s: %w", key, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Path() string {
	return s.path
}
