package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/youngbuffalo/scoreline/internal/extract"
)

// TeamSide identifies which side of a match a stat row belongs to.
type TeamSide string

const (
	TeamYoungBuffalo TeamSide = "youngbuffalo"
	TeamEnemy        TeamSide = "enemy"
)

// ParseTeamSide validates a team identifier from an API path or CSV.
// "yb" is accepted as shorthand for the home team.
func ParseTeamSide(s string) (TeamSide, error) {
	switch s {
	case "yb", string(TeamYoungBuffalo):
		return TeamYoungBuffalo, nil
	case string(TeamEnemy):
		return TeamEnemy, nil
	default:
		return "", fmt.Errorf("unknown team %q (want youngbuffalo or enemy)", s)
	}
}

// StatSource records where a stat row came from.
type StatSource string

const (
	SourceOCR    StatSource = "ocr"
	SourceCSV    StatSource = "csv"
	SourceManual StatSource = "manual"
)

// Match represents one played match session
type Match struct {
	MatchID   string         `json:"match_id" db:"match_id"`     // YYYYMMDD_HHMMSS
	MatchDate string         `json:"match_date" db:"match_date"` // YYYYMMDD
	Notes     sql.NullString `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"`
}

// NewMatchID normalizes a match date and time into the stable identifier
// used across tables and exports.
func NewMatchID(matchDate, matchTime string) string {
	return fmt.Sprintf("%s_%s", matchDate, matchTime)
}

// PlayerMatchStats is one player's stat row for one side of one match
type PlayerMatchStats struct {
	ID          int        `json:"id" db:"stat_id"`
	MatchID     string     `json:"match_id" db:"match_id"`
	Team        TeamSide   `json:"team" db:"team"`
	PlayerName  string     `json:"player_name" db:"player_name"`
	Defeated    int        `json:"defeated" db:"defeated"`
	Assist      int        `json:"assist" db:"assist"`
	Defeated2   int        `json:"defeated_2" db:"defeated_2"`
	FunCoin     int        `json:"fun_coin" db:"fun_coin"`
	Damage      int        `json:"damage" db:"damage"`
	Tank        int        `json:"tank" db:"tank"`
	Heal        int        `json:"heal" db:"heal"`
	SiegeDamage int        `json:"siege_damage" db:"siege_damage"`
	Source      StatSource `json:"source" db:"source"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// StatsFromRecord converts one reconstructed scoreboard row into its
// persistence model.
func StatsFromRecord(matchID string, team TeamSide, source StatSource, rec extract.PlayerRecord) *PlayerMatchStats {
	return &PlayerMatchStats{
		MatchID:     matchID,
		Team:        team,
		PlayerName:  rec.PlayerName,
		Defeated:    rec.Defeated,
		Assist:      rec.Assist,
		Defeated2:   rec.Defeated2,
		FunCoin:     rec.FunCoin,
		Damage:      rec.Damage,
		Tank:        rec.Tank,
		Heal:        rec.Heal,
		SiegeDamage: rec.SiegeDamage,
		Source:      source,
	}
}

// Record converts a stored stat row back into the tabular record shape used
// by exports and the review flow.
func (s *PlayerMatchStats) Record() extract.PlayerRecord {
	return extract.PlayerRecord{
		PlayerName:  s.PlayerName,
		Defeated:    s.Defeated,
		Assist:      s.Assist,
		Defeated2:   s.Defeated2,
		FunCoin:     s.FunCoin,
		Damage:      s.Damage,
		Tank:        s.Tank,
		Heal:        s.Heal,
		SiegeDamage: s.SiegeDamage,
	}
}

// PlayerTotals is one row of the player_totals materialized view:
// per-player aggregates across every saved match.
type PlayerTotals struct {
	Team           TeamSide `json:"team" db:"team"`
	PlayerName     string   `json:"player_name" db:"player_name"`
	MatchesPlayed  int      `json:"matches_played" db:"matches_played"`
	TotalDefeated  int      `json:"total_defeated" db:"total_defeated"`
	TotalAssist    int      `json:"total_assist" db:"total_assist"`
	TotalDefeated2 int      `json:"total_defeated_2" db:"total_defeated_2"`
	TotalFunCoin   int      `json:"total_fun_coin" db:"total_fun_coin"`
	TotalDamage    int64    `json:"total_damage" db:"total_damage"`
	TotalTank      int64    `json:"total_tank" db:"total_tank"`
	TotalHeal      int64    `json:"total_heal" db:"total_heal"`
	TotalSiege     int64    `json:"total_siege_damage" db:"total_siege_damage"`
	AvgDamage      float64  `json:"avg_damage" db:"avg_damage"`
}
