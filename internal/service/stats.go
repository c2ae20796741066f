package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/youngbuffalo/scoreline/internal/cache"
	"github.com/youngbuffalo/scoreline/internal/extract"
	"github.com/youngbuffalo/scoreline/internal/ingest/csvfile"
	"github.com/youngbuffalo/scoreline/internal/store"
	"github.com/youngbuffalo/scoreline/internal/store/repository"
)

const leaderboardTTL = 5 * time.Minute

// SavedEventPublisher announces persisted stats to downstream consumers.
type SavedEventPublisher interface {
	PublishMatchSaved(ctx context.Context, event interface{}) error
}

// MatchSavedEvent is the payload published after a team's rows are saved
type MatchSavedEvent struct {
	MatchID  string          `json:"match_id"`
	Team     store.TeamSide  `json:"team"`
	Source   store.StatSource `json:"source"`
	RowCount int             `json:"row_count"`
	SavedAt  time.Time       `json:"saved_at"`
}

// StatsService handles stat persistence, aggregates and exports
type StatsService struct {
	statsRepo *repository.StatsRepository
	matches   *MatchService
	cache     *cache.RedisCache
	publisher SavedEventPublisher
	logger    *log.Logger
}

// NewStatsService creates a new stats service. Cache and publisher are
// optional; a nil cache disables leaderboard caching.
func NewStatsService(db *store.Database, c *cache.RedisCache, pub SavedEventPublisher, logger *log.Logger) *StatsService {
	if logger == nil {
		logger = log.New(log.Writer(), "[stats] ", log.LstdFlags)
	}
	return &StatsService{
		statsRepo: repository.NewStatsRepository(db),
		matches:   NewMatchService(db),
		cache:     c,
		publisher: pub,
		logger:    logger,
	}
}

// SaveTeamStats replaces one side's rows for a match. The match is created
// on the fly when it does not exist yet. Returns the number of rows saved.
func (s *StatsService) SaveTeamStats(ctx context.Context, matchID string, team store.TeamSide, source store.StatSource, records []extract.PlayerRecord) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("no rows to save")
	}

	// Overlapping screenshots concatenate into repeated rows; the table
	// allows one row per player per side, so surface the clash here instead
	// of letting the insert fail with a raw constraint error.
	names := make(map[string]bool, len(records))
	for _, rec := range records {
		if names[rec.PlayerName] {
			return 0, fmt.Errorf("player %q appears more than once; remove the duplicate row before saving", rec.PlayerName)
		}
		names[rec.PlayerName] = true
	}

	if _, err := s.matches.EnsureMatch(ctx, matchID); err != nil {
		return 0, err
	}

	rows := make([]*store.PlayerMatchStats, len(records))
	for i, rec := range records {
		rows[i] = store.StatsFromRecord(matchID, team, source, rec)
	}

	if err := s.statsRepo.ReplaceTeamStats(ctx, matchID, team, rows); err != nil {
		return 0, fmt.Errorf("saving %s stats for match %s: %w", team, matchID, err)
	}

	s.invalidateAggregates(ctx)

	if s.publisher != nil {
		event := MatchSavedEvent{
			MatchID:  matchID,
			Team:     team,
			Source:   source,
			RowCount: len(rows),
			SavedAt:  time.Now().UTC(),
		}
		if err := s.publisher.PublishMatchSaved(ctx, event); err != nil {
			s.logger.Printf("publishing match saved event: %v", err)
		}
	}

	return len(rows), nil
}

// GetTeamRecords retrieves one side's rows for a match in tabular form
func (s *StatsService) GetTeamRecords(ctx context.Context, matchID string, team store.TeamSide) ([]extract.PlayerRecord, error) {
	rows, err := s.statsRepo.GetTeamStats(ctx, matchID, team)
	if err != nil {
		return nil, fmt.Errorf("fetching %s stats for match %s: %w", team, matchID, err)
	}

	records := make([]extract.PlayerRecord, len(rows))
	for i, row := range rows {
		records[i] = row.Record()
	}
	return records, nil
}

// GetLeaderboard retrieves per-player career totals ranked by a stat field,
// served from cache when fresh.
func (s *StatsService) GetLeaderboard(ctx context.Context, statField string, team store.TeamSide, limit int) ([]*store.PlayerTotals, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	key := fmt.Sprintf("leaderboard:%s:%s:%d", team, statField, limit)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var totals []*store.PlayerTotals
			if err := json.Unmarshal([]byte(cached), &totals); err == nil {
				return totals, nil
			}
		}
	}

	totals, err := s.statsRepo.GetLeaderboard(ctx, statField, team, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching leaderboard: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(totals); err == nil {
			if err := s.cache.Set(ctx, key, data, leaderboardTTL); err != nil {
				s.logger.Printf("caching leaderboard: %v", err)
			}
		}
	}

	return totals, nil
}

// GetPlayerAverages retrieves a player's per-match stat averages
func (s *StatsService) GetPlayerAverages(ctx context.Context, playerName string) (map[string]float64, error) {
	averages, err := s.statsRepo.GetPlayerAverages(ctx, playerName)
	if err != nil {
		return nil, fmt.Errorf("fetching averages for %s: %w", playerName, err)
	}
	return averages, nil
}

// ExportTeamCSV writes one side's rows for a match as CSV
func (s *StatsService) ExportTeamCSV(ctx context.Context, matchID string, team store.TeamSide, w io.Writer) error {
	records, err := s.GetTeamRecords(ctx, matchID, team)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no %s rows for match %s", team, matchID)
	}
	return csvfile.Write(w, records)
}

// RefreshTotals rebuilds the player_totals view and drops cached aggregates
func (s *StatsService) RefreshTotals(ctx context.Context) error {
	if err := s.statsRepo.RefreshPlayerTotals(ctx); err != nil {
		return fmt.Errorf("refreshing player totals: %w", err)
	}
	s.invalidateAggregates(ctx)
	return nil
}

func (s *StatsService) invalidateAggregates(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, "leaderboard:"); err != nil {
		s.logger.Printf("invalidating leaderboard cache: %v", err)
	}
}
