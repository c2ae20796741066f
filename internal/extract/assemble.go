package extract

import (
	"fmt"
	"strconv"
)

const (
	// statFieldCount is the number of numeric columns on the scoreboard.
	statFieldCount = 8

	// minRowNumbers is the acceptance threshold. A full row carries eight
	// numbers, but partial OCR misses are common; any row with at least
	// half the expected fields is kept and padded rather than discarded.
	minRowNumbers = 4
)

// PlayerRecord is one reconstructed scoreboard row: the player's name plus
// the eight stat columns in on-screen order. Missing trailing fields are 0.
type PlayerRecord struct {
	PlayerName  string `json:"player_name"`
	Defeated    int    `json:"defeated"`
	Assist      int    `json:"assist"`
	Defeated2   int    `json:"defeated_2"`
	FunCoin     int    `json:"fun_coin"`
	Damage      int    `json:"damage"`
	Tank        int    `json:"tank"`
	Heal        int    `json:"heal"`
	SiegeDamage int    `json:"siege_damage"`
}

// RowDiagnostic explains why one row produced no record.
type RowDiagnostic struct {
	RowIndex    int      `json:"row_index"`
	Text        string   `json:"text"`
	Numbers     []string `json:"numbers"`
	NumberCount int      `json:"number_count"`
	Reason      string   `json:"reason"`
}

// assembleRecord validates one tokenized row and builds its PlayerRecord.
// ordinal is the 1-based count of accepted rows including this one; it
// names the player when no name fragment survived OCR.
func assembleRecord(tokens rowTokens, ordinal int) (PlayerRecord, error) {
	numbers := tokens.numbers
	if len(numbers) < minRowNumbers {
		return PlayerRecord{}, fmt.Errorf("found %d numbers, need at least %d", len(numbers), minRowNumbers)
	}

	fields := make([]int, statFieldCount)
	for i := range fields {
		if i >= len(numbers) {
			// Right-pad missing trailing stats with zero.
			fields[i] = 0
			continue
		}
		v, err := strconv.Atoi(numbers[i])
		if err != nil {
			// Should be unreachable: tokens are pre-validated digit runs.
			return PlayerRecord{}, fmt.Errorf("parsing stat %q: %w", numbers[i], err)
		}
		fields[i] = v
	}

	name := tokens.name
	if name == "" {
		name = fmt.Sprintf("Player_%d", ordinal)
	}

	return PlayerRecord{
		PlayerName:  name,
		Defeated:    fields[0],
		Assist:      fields[1],
		Defeated2:   fields[2],
		FunCoin:     fields[3],
		Damage:      fields[4],
		Tank:        fields[5],
		Heal:        fields[6],
		SiegeDamage: fields[7],
	}, nil
}
