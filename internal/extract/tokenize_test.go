package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func row(texts ...string) Row {
	r := make(Row, len(texts))
	for i, text := range texts {
		r[i] = det(text, float64(i*100), 100)
	}
	return r
}

func TestTokenizeRowSeparators(t *testing.T) {
	// Commas and periods are thousands/decimal separators to discard, not
	// precision to keep.
	tokens := tokenizeRow(row("6,896,682", "12.5"))

	assert.Equal(t, []string{"6896682", "125"}, tokens.numbers)
	assert.Empty(t, tokens.name)
}

func TestTokenizeRowFusedToken(t *testing.T) {
	tokens := tokenizeRow(row("Ztee123456", "77"))

	assert.Equal(t, []string{"123456", "77"}, tokens.numbers)
	assert.Equal(t, "Ztee", tokens.name)
}

func TestTokenizeRowMultipleDigitRuns(t *testing.T) {
	tokens := tokenizeRow(row("ab12cd34"))

	assert.Equal(t, []string{"12", "34"}, tokens.numbers)
	assert.Equal(t, "abcd", tokens.name)
}

func TestTokenizeRowShortResidueDropped(t *testing.T) {
	// A single leftover character is OCR noise, not a name fragment.
	tokens := tokenizeRow(row("x5"))

	assert.Equal(t, []string{"5"}, tokens.numbers)
	assert.Empty(t, tokens.name)
}

func TestTokenizeRowJoinsNameFragments(t *testing.T) {
	tokens := tokenizeRow(row("Young", "Buffalo", "42"))

	assert.Equal(t, []string{"42"}, tokens.numbers)
	assert.Equal(t, "Young Buffalo", tokens.name)
}

func TestTokenizeRowRepartitionInvariance(t *testing.T) {
	// Splitting a fused detection at the token boundary must not change the
	// extracted numbers or name.
	fused := tokenizeRow(row("Ztee16", "121"))
	split := tokenizeRow(row("Ztee", "16", "121"))

	assert.Equal(t, fused.numbers, split.numbers)
	assert.Equal(t, fused.name, split.name)
}

func TestTokenizeRowEmptyTexts(t *testing.T) {
	tokens := tokenizeRow(row("", ",", "."))

	assert.Empty(t, tokens.numbers)
	assert.Empty(t, tokens.name)
}
