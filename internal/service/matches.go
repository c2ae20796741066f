package service

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/youngbuffalo/scoreline/internal/store"
	"github.com/youngbuffalo/scoreline/internal/store/repository"
)

var (
	matchDatePattern = regexp.MustCompile(`^\d{8}$`)
	matchTimePattern = regexp.MustCompile(`^\d{6}$`)
)

// MatchSummary is a match plus its stat rows grouped by side
type MatchSummary struct {
	Match *store.Match                                `json:"match"`
	Teams map[store.TeamSide][]*store.PlayerMatchStats `json:"teams"`
}

// MatchService handles match-related business logic
type MatchService struct {
	matchRepo *repository.MatchRepository
	statsRepo *repository.StatsRepository
}

// NewMatchService creates a new match service
func NewMatchService(db *store.Database) *MatchService {
	return &MatchService{
		matchRepo: repository.NewMatchRepository(db),
		statsRepo: repository.NewStatsRepository(db),
	}
}

// CreateMatch registers a match session from its date and time. Saving the
// same date and time again updates the existing match instead of failing.
func (s *MatchService) CreateMatch(ctx context.Context, matchDate, matchTime, notes string) (*store.Match, error) {
	if !matchDatePattern.MatchString(matchDate) {
		return nil, fmt.Errorf("invalid match date %q (want YYYYMMDD)", matchDate)
	}
	if !matchTimePattern.MatchString(matchTime) {
		return nil, fmt.Errorf("invalid match time %q (want HHMMSS)", matchTime)
	}

	match := &store.Match{
		MatchID:   store.NewMatchID(matchDate, matchTime),
		MatchDate: matchDate,
		Notes:     sql.NullString{String: notes, Valid: notes != ""},
	}

	if err := s.matchRepo.Upsert(ctx, match); err != nil {
		return nil, fmt.Errorf("saving match: %w", err)
	}

	return match, nil
}

// EnsureMatch upserts a match inferred from an already-formed match ID, used
// when stats arrive for a match that was never explicitly created.
func (s *MatchService) EnsureMatch(ctx context.Context, matchID string) (*store.Match, error) {
	if len(matchID) != 15 || matchID[8] != '_' {
		return nil, fmt.Errorf("invalid match ID %q (want YYYYMMDD_HHMMSS)", matchID)
	}
	date, clock := matchID[:8], matchID[9:]
	return s.CreateMatch(ctx, date, clock, "")
}

// GetMatch retrieves a match with both sides' stat rows
func (s *MatchService) GetMatch(ctx context.Context, matchID string) (*MatchSummary, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetching match: %w", err)
	}

	stats, err := s.statsRepo.GetMatchStats(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("fetching match stats: %w", err)
	}

	summary := &MatchSummary{
		Match: match,
		Teams: map[store.TeamSide][]*store.PlayerMatchStats{
			store.TeamYoungBuffalo: {},
			store.TeamEnemy:        {},
		},
	}
	for _, row := range stats {
		summary.Teams[row.Team] = append(summary.Teams[row.Team], row)
	}

	return summary, nil
}

// ListMatches retrieves the most recent matches, newest first
func (s *MatchService) ListMatches(ctx context.Context, limit int) ([]*store.Match, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	matches, err := s.matchRepo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	return matches, nil
}

// LatestMatchID returns the newest saved match ID, or empty when none exist
func (s *MatchService) LatestMatchID(ctx context.Context) (string, error) {
	return s.matchRepo.LatestMatchID(ctx)
}
