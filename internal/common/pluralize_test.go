package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPluralizeDays(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{1, "день"},
		{2, "дня"},
		{4, "дня"},
		{5, "дней"},
		{11, "дней"},
		{12, "дней"},
		{14, "дней"},
		{21, "день"},
		{22, "дня"},
		{25, "дней"},
		{100, "дней"},
		{101, "день"},
		{111, "дней"},
		{0, "дней"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PluralizeDays(tt.n), "n=%d", tt.n)
	}
}

func TestPluralizeCoins(t *testing.T) {
	assert.Equal(t, "монета", PluralizeCoins(1))
	assert.Equal(t, "монеты", PluralizeCoins(3))
	assert.Equal(t, "монет", PluralizeCoins(7))
	assert.Equal(t, "монет", PluralizeCoins(111))
	assert.Equal(t, "монета", PluralizeCoins(121))
}

func TestPluralizeTimes(t *testing.T) {
	assert.Equal(t, "раз", PluralizeTimes(1))
	assert.Equal(t, "раза", PluralizeTimes(2))
	assert.Equal(t, "раз", PluralizeTimes(5))
	assert.Equal(t, "раз", PluralizeTimes(13))
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "3 монеты", FormatCoins(3))
	assert.Equal(t, "+5 монет", FormatCoinsAmount(5))
	assert.Equal(t, "-2 монеты", FormatCoinsAmount(-2))
	assert.Equal(t, "+0 монет", FormatCoinsAmount(0))
}

// Свойство: форма определяется только последними двумя цифрами.
func TestPluralFormProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Int64Range(0, 1_000_000).Draw(t, "n")
		got := pluralForm(n, "день", "дня", "дней")
		want := pluralForm(n%100, "день", "дня", "дней")
		assert.Equal(t, want, got)
	})
}
