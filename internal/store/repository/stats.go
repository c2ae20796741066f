package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/youngbuffalo/scoreline/internal/store"
)

// statColumns maps each leaderboard stat field to its aggregate column in
// the player_totals view. Queries interpolate column names, so anything not
// in this map is rejected.
var statColumns = map[string]string{
	"defeated":     "total_defeated",
	"assist":       "total_assist",
	"defeated_2":   "total_defeated_2",
	"fun_coin":     "total_fun_coin",
	"damage":       "total_damage",
	"tank":         "total_tank",
	"heal":         "total_heal",
	"siege_damage": "total_siege_damage",
}

// StatsRepository handles player match stat data access
type StatsRepository struct {
	db *store.Database
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *store.Database) *StatsRepository {
	return &StatsRepository{db: db}
}

// ReplaceTeamStats replaces every stat row for one side of one match.
// Re-saving a reviewed extraction is a full replace, matching the
// review-then-save flow where the operator's latest table wins.
func (r *StatsRepository) ReplaceTeamStats(ctx context.Context, matchID string, team store.TeamSide, stats []*store.PlayerMatchStats) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM player_match_stats WHERE match_id = $1 AND team = $2`,
		matchID, team,
	); err != nil {
		return fmt.Errorf("clearing previous stats: %w", err)
	}

	query := `
		INSERT INTO player_match_stats (match_id, team, player_name, defeated, assist,
			defeated_2, fun_coin, damage, tank, heal, siege_damage, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING stat_id
	`

	for _, stat := range stats {
		err := tx.QueryRowContext(ctx, query,
			stat.MatchID, stat.Team, stat.PlayerName, stat.Defeated, stat.Assist,
			stat.Defeated2, stat.FunCoin, stat.Damage, stat.Tank, stat.Heal,
			stat.SiegeDamage, stat.Source,
		).Scan(&stat.ID)
		if err != nil {
			return fmt.Errorf("inserting stats for %s: %w", stat.PlayerName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stats: %w", err)
	}

	return nil
}

// GetTeamStats returns all stat rows for one side of a match, in saved order
func (r *StatsRepository) GetTeamStats(ctx context.Context, matchID string, team store.TeamSide) ([]*store.PlayerMatchStats, error) {
	query := `
		SELECT stat_id, match_id, team, player_name, defeated, assist, defeated_2,
			fun_coin, damage, tank, heal, siege_damage, source, created_at, updated_at
		FROM player_match_stats
		WHERE match_id = $1 AND team = $2
		ORDER BY stat_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, matchID, team)
	if err != nil {
		return nil, fmt.Errorf("querying team stats: %w", err)
	}
	defer rows.Close()

	return scanStats(rows)
}

// GetMatchStats returns all stat rows for both sides of a match
func (r *StatsRepository) GetMatchStats(ctx context.Context, matchID string) ([]*store.PlayerMatchStats, error) {
	query := `
		SELECT stat_id, match_id, team, player_name, defeated, assist, defeated_2,
			fun_coin, damage, tank, heal, siege_damage, source, created_at, updated_at
		FROM player_match_stats
		WHERE match_id = $1
		ORDER BY team, stat_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying match stats: %w", err)
	}
	defer rows.Close()

	return scanStats(rows)
}

// GetPlayerAverages calculates a player's per-match averages across all
// saved matches
func (r *StatsRepository) GetPlayerAverages(ctx context.Context, playerName string) (map[string]float64, error) {
	query := `
		SELECT
			COUNT(*) as matches_played,
			AVG(defeated) as avg_defeated,
			AVG(assist) as avg_assist,
			AVG(defeated_2) as avg_defeated_2,
			AVG(fun_coin) as avg_fun_coin,
			AVG(damage) as avg_damage,
			AVG(tank) as avg_tank,
			AVG(heal) as avg_heal,
			AVG(siege_damage) as avg_siege_damage
		FROM player_match_stats
		WHERE player_name = $1
	`

	var matchesPlayed int
	var defeated, assist, defeated2, funCoin, damage, tank, heal, siege sql.NullFloat64

	err := r.db.DB().QueryRowContext(ctx, query, playerName).Scan(
		&matchesPlayed, &defeated, &assist, &defeated2, &funCoin,
		&damage, &tank, &heal, &siege,
	)
	if err != nil {
		return nil, fmt.Errorf("calculating player averages: %w", err)
	}

	averages := map[string]float64{
		"matches_played": float64(matchesPlayed),
	}

	put := func(key string, v sql.NullFloat64) {
		if v.Valid {
			averages[key] = v.Float64
		}
	}
	put("avg_defeated", defeated)
	put("avg_assist", assist)
	put("avg_defeated_2", defeated2)
	put("avg_fun_coin", funCoin)
	put("avg_damage", damage)
	put("avg_tank", tank)
	put("avg_heal", heal)
	put("avg_siege_damage", siege)

	return averages, nil
}

// GetLeaderboard returns the top players by total of one stat column
func (r *StatsRepository) GetLeaderboard(ctx context.Context, statField string, team store.TeamSide, limit int) ([]*store.PlayerTotals, error) {
	orderColumn, ok := statColumns[statField]
	if !ok {
		return nil, fmt.Errorf("unknown stat field %q", statField)
	}

	query := fmt.Sprintf(`
		SELECT team, player_name, matches_played, total_defeated, total_assist,
			total_defeated_2, total_fun_coin, total_damage, total_tank, total_heal,
			total_siege_damage, avg_damage
		FROM player_totals
		WHERE ($1 = '' OR team = $1)
		ORDER BY %s DESC
		LIMIT $2
	`, orderColumn)

	rows, err := r.db.DB().QueryContext(ctx, query, string(team), limit)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	var totals []*store.PlayerTotals
	for rows.Next() {
		t := &store.PlayerTotals{}
		err := rows.Scan(
			&t.Team, &t.PlayerName, &t.MatchesPlayed, &t.TotalDefeated, &t.TotalAssist,
			&t.TotalDefeated2, &t.TotalFunCoin, &t.TotalDamage, &t.TotalTank,
			&t.TotalHeal, &t.TotalSiege, &t.AvgDamage,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning leaderboard row: %w", err)
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// RefreshPlayerTotals rebuilds the player_totals materialized view
func (r *StatsRepository) RefreshPlayerTotals(ctx context.Context) error {
	if _, err := r.db.DB().ExecContext(ctx, `REFRESH MATERIALIZED VIEW player_totals`); err != nil {
		return fmt.Errorf("refreshing player totals: %w", err)
	}
	return nil
}

// scanStats scans multiple player stat rows
func scanStats(rows *sql.Rows) ([]*store.PlayerMatchStats, error) {
	var allStats []*store.PlayerMatchStats
	for rows.Next() {
		stat := &store.PlayerMatchStats{}
		err := rows.Scan(
			&stat.ID, &stat.MatchID, &stat.Team, &stat.PlayerName, &stat.Defeated,
			&stat.Assist, &stat.Defeated2, &stat.FunCoin, &stat.Damage, &stat.Tank,
			&stat.Heal, &stat.SiegeDamage, &stat.Source, &stat.CreatedAt, &stat.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning player stats: %w", err)
		}
		allStats = append(allStats, stat)
	}

	return allStats, rows.Err()
}
