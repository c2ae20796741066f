package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youngbuffalo/scoreline/internal/extract"
)

func rec(name string, damage int) extract.PlayerRecord {
	return extract.PlayerRecord{PlayerName: name, Damage: damage}
}

func TestPreferManualOverridesOCR(t *testing.T) {
	r, err := NewReconciler(PreferManual)
	require.NoError(t, err)

	ocr := []extract.PlayerRecord{rec("Ztee", 100), rec("Mako", 200)}
	manual := []extract.PlayerRecord{rec("Ztee", 150)}

	merged := r.Reconcile(ocr, manual)
	require.Len(t, merged, 2)
	assert.Equal(t, 150, merged[0].Damage)
	assert.Equal(t, "Mako", merged[1].PlayerName)

	m := r.Metrics()
	assert.Equal(t, 1, m.Conflicts)
	assert.Equal(t, 1, m.ManualPreferred)
}

func TestPreferOCRKeepsExtractedRows(t *testing.T) {
	r, err := NewReconciler(PreferOCR)
	require.NoError(t, err)

	ocr := []extract.PlayerRecord{rec("Ztee", 100)}
	manual := []extract.PlayerRecord{rec("Ztee", 150), rec("Mako", 200)}

	merged := r.Reconcile(ocr, manual)
	require.Len(t, merged, 2)
	assert.Equal(t, 100, merged[0].Damage)
	assert.Equal(t, "Mako", merged[1].PlayerName)
}

func TestMergeMissingFillsZeroFields(t *testing.T) {
	r, err := NewReconciler(MergeMissing)
	require.NoError(t, err)

	ocr := []extract.PlayerRecord{{PlayerName: "Ztee", Damage: 6896682, Heal: 42}}
	manual := []extract.PlayerRecord{{PlayerName: "Ztee", Defeated: 16}}

	merged := r.Reconcile(ocr, manual)
	require.Len(t, merged, 1)
	assert.Equal(t, 16, merged[0].Defeated)
	assert.Equal(t, 6896682, merged[0].Damage)
	assert.Equal(t, 42, merged[0].Heal)
}

func TestNameMatchingIgnoresCaseAndSpacing(t *testing.T) {
	r, err := NewReconciler(PreferManual)
	require.NoError(t, err)

	ocr := []extract.PlayerRecord{rec("young buffalo", 10)}
	manual := []extract.PlayerRecord{rec("YoungBuffalo", 20)}

	merged := r.Reconcile(ocr, manual)
	require.Len(t, merged, 1)
	assert.Equal(t, 20, merged[0].Damage)
}

func TestEmptySources(t *testing.T) {
	r, err := NewReconciler("")
	require.NoError(t, err)

	ocr := []extract.PlayerRecord{rec("Ztee", 1)}
	assert.Equal(t, ocr, r.Reconcile(ocr, nil))
	assert.Equal(t, ocr, r.Reconcile(nil, ocr))
	assert.Empty(t, r.Reconcile(nil, nil))
}

func TestUnknownStrategyRejected(t *testing.T) {
	_, err := NewReconciler("coin_flip")
	assert.Error(t, err)
}
