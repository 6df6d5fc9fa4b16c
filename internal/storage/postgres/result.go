package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// GameResult records one completed game: the generation settings it was
// played with and the finishing order.
type GameResult struct {
	ID             uuid.UUID
	MapWidth       int
	MapHeight      int
	Players        int
	ItemDensity    float64
	TravelDistance int
	// Ranking holds zero-based seat indices in finishing order, all
	// players included.
	Ranking   []int
	Turns     int
	CreatedAt time.Time
}

// ErrResultNotFound is returned when a result lookup yields no rows.
var ErrResultNotFound = errors.New("game result not found")

// ResultRepository provides game-result persistence operations.
type ResultRepository struct {
	db *pgxpool.Pool
}

// NewResultRepository creates a ResultRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewResultRepository(db *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{db: db}
}

// Record inserts a completed game's result. A zero ID is replaced with a
// fresh one.
//
// Precondition: the result must rank every player exactly once.
// Postcondition: Returns the stored GameResult with ID and CreatedAt set.
func (r *ResultRepository) Record(ctx context.Context, result GameResult) (GameResult, error) {
	if len(result.Ranking) != result.Players {
		return GameResult{}, fmt.Errorf("ranking has %d entries for %d players", len(result.Ranking), result.Players)
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}

	err := r.db.QueryRow(ctx,
		`INSERT INTO game_results
		   (id, map_width, map_height, players, item_density, travel_distance, ranking, turns)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		result.ID, result.MapWidth, result.MapHeight, result.Players,
		result.ItemDensity, result.TravelDistance, toInt32s(result.Ranking), result.Turns,
	).Scan(&result.CreatedAt)
	if err != nil {
		return GameResult{}, fmt.Errorf("inserting game result: %w", err)
	}

	return result, nil
}

// Get retrieves a single result by ID.
//
// Postcondition: Returns the GameResult, or ErrResultNotFound.
func (r *ResultRepository) Get(ctx context.Context, id uuid.UUID) (GameResult, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, map_width, map_height, players, item_density, travel_distance, ranking, turns, created_at
		 FROM game_results WHERE id = $1`,
		id,
	)
	result, err := scanResult(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return GameResult{}, ErrResultNotFound
		}
		return GameResult{}, fmt.Errorf("querying game result: %w", err)
	}
	return result, nil
}

// Recent returns the most recently recorded results, newest first.
//
// Precondition: limit must be >= 1.
func (r *ResultRepository) Recent(ctx context.Context, limit int) ([]GameResult, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be >= 1, got %d", limit)
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, map_width, map_height, players, item_density, travel_distance, ranking, turns, created_at
		 FROM game_results ORDER BY created_at DESC, id LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent results: %w", err)
	}
	defer rows.Close()

	var results []GameResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning game result: %w", err)
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return results, nil
}

func scanResult(row pgx.Row) (GameResult, error) {
	var result GameResult
	var ranking []int32
	err := row.Scan(
		&result.ID, &result.MapWidth, &result.MapHeight, &result.Players,
		&result.ItemDensity, &result.TravelDistance, &ranking, &result.Turns,
		&result.CreatedAt,
	)
	if err != nil {
		return GameResult{}, err
	}
	result.Ranking = toInts(ranking)
	return result, nil
}

func toInt32s(in []int) []int32 {
	out := make([]int32, len(in))
	for i, v := range in {
		out[i] = int32(v)
	}
	return out
}

func toInts(in []int32) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}
