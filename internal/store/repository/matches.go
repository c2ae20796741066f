package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/youngbuffalo/scoreline/internal/store"
)

// MatchRepository handles match session data access
type MatchRepository struct {
	db *store.Database
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *store.Database) *MatchRepository {
	return &MatchRepository{db: db}
}

// Upsert inserts a match or refreshes its metadata when it already exists
func (r *MatchRepository) Upsert(ctx context.Context, match *store.Match) error {
	query := `
		INSERT INTO matches (match_id, match_date, notes)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id) DO UPDATE SET
			notes = EXCLUDED.notes,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := r.db.DB().QueryRowContext(ctx, query,
		match.MatchID, match.MatchDate, match.Notes,
	).Scan(&match.CreatedAt, &match.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upserting match: %w", err)
	}

	return nil
}

// GetByID returns a match by its identifier
func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (*store.Match, error) {
	query := `
		SELECT match_id, match_date, notes, created_at, updated_at
		FROM matches
		WHERE match_id = $1
	`

	match := &store.Match{}
	err := r.db.DB().QueryRowContext(ctx, query, matchID).Scan(
		&match.MatchID, &match.MatchDate, &match.Notes,
		&match.CreatedAt, &match.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("match %s not found", matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying match: %w", err)
	}

	return match, nil
}

// List returns the most recent matches, newest first
func (r *MatchRepository) List(ctx context.Context, limit int) ([]*store.Match, error) {
	query := `
		SELECT match_id, match_date, notes, created_at, updated_at
		FROM matches
		ORDER BY match_id DESC
		LIMIT $1
	`

	rows, err := r.db.DB().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	var matches []*store.Match
	for rows.Next() {
		match := &store.Match{}
		err := rows.Scan(
			&match.MatchID, &match.MatchDate, &match.Notes,
			&match.CreatedAt, &match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}

// LatestMatchID returns the identifier of the most recent match, or empty
// when no match has been saved yet
func (r *MatchRepository) LatestMatchID(ctx context.Context) (string, error) {
	var matchID sql.NullString
	err := r.db.DB().QueryRowContext(ctx, `SELECT MAX(match_id) FROM matches`).Scan(&matchID)
	if err != nil {
		return "", fmt.Errorf("querying latest match: %w", err)
	}

	return matchID.String, nil
}
