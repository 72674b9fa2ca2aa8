package leaderboard

import (
	"context"
	"embed"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema embed.FS

// PostgresStore keeps entries in a Postgres table
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn and applies the schema
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to leaderboard database: %w", err)
	}
	s := &PostgresStore{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the table if it does not exist
func (s *PostgresStore) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, string(sqlBytes)); err != nil {
		return fmt.Errorf("failed to migrate leaderboard schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// Add inserts an entry. Re-adding the same tournament replaces it.
func (s *PostgresStore) Add(ctx context.Context, e Entry) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO leaderboard_entries
			(id, player_name, score, difficulty, player_count, played_at, duration_ms, wins, total_games, place)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE
		   SET player_name = EXCLUDED.player_name,
		       score = EXCLUDED.score,
		       difficulty = EXCLUDED.difficulty,
		       player_count = EXCLUDED.player_count,
		       played_at = EXCLUDED.played_at,
		       duration_ms = EXCLUDED.duration_ms,
		       wins = EXCLUDED.wins,
		       total_games = EXCLUDED.total_games,
		       place = EXCLUDED.place
	`, e.ID, e.PlayerName, e.Score, e.Difficulty, e.PlayerCount, e.Date,
		e.Duration.Milliseconds(), e.Wins, e.TotalGames, e.Place)
	if err != nil {
		return fmt.Errorf("failed to add leaderboard entry: %w", err)
	}
	return nil
}

// List returns entries matching f, highest score first
func (s *PostgresStore) List(ctx context.Context, f Filter) ([]Entry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	query, args := listQuery(f)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var (
			e          Entry
			durationMs int64
		)
		err := row.Scan(&e.ID, &e.PlayerName, &e.Score, &e.Difficulty, &e.PlayerCount,
			&e.Date, &durationMs, &e.Wins, &e.TotalGames, &e.Place)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.Date = e.Date.UTC()
		return e, err
	})
}

// listQuery builds the SELECT for a validated filter
func listQuery(f Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if f.Difficulty != "" && f.Difficulty != "all" {
		args = append(args, f.Difficulty)
		where = append(where, "difficulty = $"+strconv.Itoa(len(args)))
	}
	switch f.PlayerCount {
	case "", "all":
	case "5+":
		where = append(where, "player_count >= 5")
	default:
		n, _ := strconv.Atoi(f.PlayerCount)
		args = append(args, n)
		where = append(where, "player_count = $"+strconv.Itoa(len(args)))
	}

	var b strings.Builder
	b.WriteString(`SELECT id, player_name, score, difficulty, player_count, played_at, duration_ms, wins, total_games, place
  FROM leaderboard_entries`)
	if len(where) > 0 {
		b.WriteString("\n WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString("\n ORDER BY score DESC, played_at ASC")
	return b.String(), args
}

// Clear removes every entry
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM leaderboard_entries`); err != nil {
		return fmt.Errorf("failed to clear leaderboard: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
