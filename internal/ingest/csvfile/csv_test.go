package csvfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngbuffalo/scoreline/internal/extract"
)

func TestReadValidCSV(t *testing.T) {
	input := strings.Join([]string{
		"player_name,defeated,assist,defeated_2,fun_coin,damage,tank,heal,siege_damage",
		"Ztee,16,121,3,0,6896682,2071659,0,773143",
		"Mako,5,40,1,2,120000,90000,350000,0",
	}, "\n")

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Ztee", records[0].PlayerName)
	assert.Equal(t, 6896682, records[0].Damage)
	assert.Equal(t, 350000, records[1].Heal)
}

func TestReadReorderedColumns(t *testing.T) {
	input := strings.Join([]string{
		"damage,player_name,defeated,assist,defeated_2,fun_coin,tank,heal,siege_damage",
		"42,Ztee,1,2,3,4,5,6,7",
	}, "\n")

	records, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 42, records[0].Damage)
	assert.Equal(t, "Ztee", records[0].PlayerName)
}

func TestReadMissingColumns(t *testing.T) {
	input := "player_name,defeated\nZtee,16\n"

	_, err := Read(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required columns")
}

func TestReadEmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadRejectsBadValues(t *testing.T) {
	header := "player_name,defeated,assist,defeated_2,fun_coin,damage,tank,heal,siege_damage\n"

	_, err := Read(strings.NewReader(header + "Ztee,abc,0,0,0,0,0,0,0\n"))
	assert.Error(t, err)

	_, err = Read(strings.NewReader(header + "Ztee,-1,0,0,0,0,0,0,0\n"))
	assert.Error(t, err)
}

func TestWriteRoundTrip(t *testing.T) {
	records := []extract.PlayerRecord{
		{PlayerName: "Ztee", Defeated: 16, Assist: 121, Defeated2: 3, Damage: 6896682, Tank: 2071659, SiegeDamage: 773143},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, records))

	parsed, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, records, parsed)
}
