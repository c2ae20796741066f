package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngbuffalo/scoreline/internal/extract"
	"github.com/youngbuffalo/scoreline/internal/store"
)

func TestSaveTeamStatsRejectsDuplicatePlayers(t *testing.T) {
	svc := NewStatsService(nil, nil, nil, nil)

	records := []extract.PlayerRecord{
		{PlayerName: "Ztee", Damage: 100},
		{PlayerName: "Mako", Damage: 50},
		{PlayerName: "Ztee", Damage: 120},
	}

	_, err := svc.SaveTeamStats(context.Background(), "20260823_190000",
		store.TeamYoungBuffalo, store.SourceOCR, records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ztee")
}

func TestSaveTeamStatsRejectsEmptyBatch(t *testing.T) {
	svc := NewStatsService(nil, nil, nil, nil)

	_, err := svc.SaveTeamStats(context.Background(), "20260823_190000",
		store.TeamYoungBuffalo, store.SourceOCR, nil)
	assert.Error(t, err)
}
