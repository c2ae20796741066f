package extract

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleRecordPadding(t *testing.T) {
	// Rows with 4..7 numbers pad the missing trailing fields with zero; a
	// full row of 8 is taken as-is.
	all := []string{"1", "2", "3", "4", "5", "6", "7", "8"}

	for n := minRowNumbers; n <= statFieldCount; n++ {
		t.Run(fmt.Sprintf("%d_numbers", n), func(t *testing.T) {
			record, err := assembleRecord(rowTokens{numbers: all[:n], name: "Ztee"}, 1)
			require.NoError(t, err)

			got := []int{
				record.Defeated, record.Assist, record.Defeated2, record.FunCoin,
				record.Damage, record.Tank, record.Heal, record.SiegeDamage,
			}
			for i, v := range got {
				if i < n {
					assert.Equal(t, i+1, v)
				} else {
					assert.Zero(t, v)
				}
			}
		})
	}
}

func TestAssembleRecordRejectionBoundary(t *testing.T) {
	_, err := assembleRecord(rowTokens{numbers: []string{"1", "2", "3"}}, 1)
	assert.Error(t, err)

	_, err = assembleRecord(rowTokens{numbers: []string{"1", "2", "3", "4"}}, 1)
	assert.NoError(t, err)
}

func TestAssembleRecordFallbackName(t *testing.T) {
	record, err := assembleRecord(rowTokens{numbers: []string{"1", "2", "3", "4"}}, 3)
	require.NoError(t, err)
	assert.Equal(t, "Player_3", record.PlayerName)

	record, err = assembleRecord(rowTokens{numbers: []string{"1", "2", "3", "4"}, name: "Ztee"}, 3)
	require.NoError(t, err)
	assert.Equal(t, "Ztee", record.PlayerName)
}

func TestAssembleRecordMalformedNumber(t *testing.T) {
	// A digit run too long for int is the one reachable malformed case.
	tokens := rowTokens{numbers: []string{"99999999999999999999999", "1", "2", "3"}}

	_, err := assembleRecord(tokens, 1)
	assert.Error(t, err)
}
