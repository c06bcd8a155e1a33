// Package storage provides the SQLite-backed leaderboard of notable pulls.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the leaderboard.
type Store struct {
	db *sql.DB
}

// Pull is one notable roll recorded on the leaderboard.
type Pull struct {
	ID        int64
	SessionID string
	Player    string
	Aura      string
	Rarity    int
	Shiny     bool
	RollIndex int
	Biome     string
	CreatedAt time.Time
}

// DisplayName returns the aura name with the shiny prefix when shiny.
func (p Pull) DisplayName() string {
	if p.Shiny {
		return "Shiny " + p.Aura
	}
	return p.Aura
}

// PlayerStats is the per-player summary refreshed on every save.
type PlayerStats struct {
	Player      string
	TotalRolls  int
	UniqueAuras int
	ShinyTotal  int
	BestAura    string
	BestRarity  int
	Titles      int
	UpdatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pulls (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			player TEXT NOT NULL,
			aura TEXT NOT NULL,
			rarity INTEGER NOT NULL,
			shiny INTEGER NOT NULL DEFAULT 0,
			roll_index INTEGER NOT NULL,
			biome TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pulls_top ON pulls(rarity DESC, shiny DESC);
		CREATE INDEX IF NOT EXISTS idx_pulls_player ON pulls(player);

		CREATE TABLE IF NOT EXISTS players (
			player TEXT PRIMARY KEY,
			total_rolls INTEGER NOT NULL DEFAULT 0,
			unique_auras INTEGER NOT NULL DEFAULT 0,
			shiny_total INTEGER NOT NULL DEFAULT 0,
			best_aura TEXT NOT NULL DEFAULT '',
			best_rarity INTEGER NOT NULL DEFAULT 0,
			titles INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordPull stores a notable pull and returns its ID.
func (s *Store) RecordPull(p Pull) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO pulls (session_id, player, aura, rarity, shiny, roll_index, biome)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.SessionID, p.Player, p.Aura, p.Rarity, p.Shiny, p.RollIndex, p.Biome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record pull: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopPulls returns the rarest pulls across all players.
// Shiny pulls rank above normal pulls of the same rarity; ties go to the
// earliest pull.
func (s *Store) TopPulls(limit int) ([]Pull, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, aura, rarity, shiny, roll_index, biome, created_at
		 FROM pulls
		 ORDER BY rarity DESC, shiny DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pulls: %w", err)
	}
	defer rows.Close()

	return scanPulls(rows)
}

// PlayerPulls returns a player's most recent notable pulls.
func (s *Store) PlayerPulls(player string, limit int) ([]Pull, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, player, aura, rarity, shiny, roll_index, biome, created_at
		 FROM pulls
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player pulls: %w", err)
	}
	defer rows.Close()

	return scanPulls(rows)
}

func scanPulls(rows *sql.Rows) ([]Pull, error) {
	var pulls []Pull
	for rows.Next() {
		var p Pull
		var createdAt any
		if err := rows.Scan(&p.ID, &p.SessionID, &p.Player, &p.Aura, &p.Rarity, &p.Shiny, &p.RollIndex, &p.Biome, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		pulls = append(pulls, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return pulls, nil
}

// UpsertPlayer inserts or replaces a player's summary.
func (s *Store) UpsertPlayer(st PlayerStats) error {
	_, err := s.db.Exec(
		`INSERT INTO players (player, total_rolls, unique_auras, shiny_total, best_aura, best_rarity, titles, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
			total_rolls = excluded.total_rolls,
			unique_auras = excluded.unique_auras,
			shiny_total = excluded.shiny_total,
			best_aura = excluded.best_aura,
			best_rarity = excluded.best_rarity,
			titles = excluded.titles,
			updated_at = CURRENT_TIMESTAMP`,
		st.Player, st.TotalRolls, st.UniqueAuras, st.ShinyTotal, st.BestAura, st.BestRarity, st.Titles,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot upsert player: %w", err)
	}
	return nil
}

// Player returns one player's summary, or nil if the player is unknown.
func (s *Store) Player(player string) (*PlayerStats, error) {
	var st PlayerStats
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT player, total_rolls, unique_auras, shiny_total, best_aura, best_rarity, titles, updated_at
		 FROM players WHERE player = ?`,
		player,
	).Scan(&st.Player, &st.TotalRolls, &st.UniqueAuras, &st.ShinyTotal, &st.BestAura, &st.BestRarity, &st.Titles, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player: %w", err)
	}

	st.UpdatedAt = parseTime(updatedAt)
	return &st, nil
}

// TopPlayers ranks players by their best pull, then by total rolls.
func (s *Store) TopPlayers(limit int) ([]PlayerStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player, total_rolls, unique_auras, shiny_total, best_aura, best_rarity, titles, updated_at
		 FROM players
		 ORDER BY best_rarity DESC, total_rolls DESC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerStats
	for rows.Next() {
		var st PlayerStats
		var updatedAt any
		if err := rows.Scan(&st.Player, &st.TotalRolls, &st.UniqueAuras, &st.ShinyTotal, &st.BestAura, &st.BestRarity, &st.Titles, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		st.UpdatedAt = parseTime(updatedAt)
		players = append(players, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return players, nil
}

// ClearPlayer deletes all pulls and the summary of a player.
func (s *Store) ClearPlayer(player string) error {
	if _, err := s.db.Exec("DELETE FROM pulls WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear pulls: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM players WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear player: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
