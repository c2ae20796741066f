package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every selectable stat field must rank by its own aggregate column. A field
// silently falling back to another column would return a wrong ranking with
// a 200 response.
func TestLeaderboardFieldsRankByOwnColumn(t *testing.T) {
	seen := make(map[string]string)
	for field, column := range statColumns {
		assert.Equalf(t, "total_"+field, column, "field %s ranks by the wrong column", field)

		prev, dup := seen[column]
		require.Falsef(t, dup, "fields %s and %s rank by the same column %s", prev, field, column)
		seen[column] = field
	}
}

func TestPlayerTotalsViewMaterializesEveryLeaderboardColumn(t *testing.T) {
	path := filepath.Join("..", "..", "..", "migrations", "004_create_player_totals.sql")
	view, err := os.ReadFile(path)
	require.NoError(t, err)

	for field, column := range statColumns {
		assert.Containsf(t, string(view), " AS "+column,
			"player_totals does not materialize %s (needed to rank by %s)", column, field)
	}
}
