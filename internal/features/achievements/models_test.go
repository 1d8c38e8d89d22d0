package achievements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreakCode(t *testing.T) {
	tests := []struct {
		streak   int
		wantCode string
		wantOK   bool
	}{
		{5, "streak_5", true},
		{10, "streak_10", true},
		{365, "streak_365", true},
		// Строгое равенство: промежуточные и «перелётные» значения не дают кода.
		{4, "", false},
		{6, "", false},
		{11, "", false},
		{0, "", false},
		{1000, "", false},
	}
	for _, tt := range tests {
		code, ok := StreakCode(tt.streak)
		assert.Equal(t, tt.wantOK, ok, "streak=%d", tt.streak)
		assert.Equal(t, tt.wantCode, code, "streak=%d", tt.streak)
	}
}

func TestTotalCode(t *testing.T) {
	code, ok := TotalCode(1000)
	assert.True(t, ok)
	assert.Equal(t, "total_1000", code)

	code, ok = TotalCode(5000)
	assert.True(t, ok)
	assert.Equal(t, "total_5000", code)

	_, ok = TotalCode(999)
	assert.False(t, ok)
	_, ok = TotalCode(1001)
	assert.False(t, ok)
}

func TestDescriptionsCoverThresholds(t *testing.T) {
	// У каждого порога должен быть текст уведомления.
	for _, streak := range []int{5, 10, 30, 50, 100, 365} {
		code, ok := StreakCode(streak)
		assert.True(t, ok)
		assert.NotEmpty(t, Descriptions[code], "нет текста для %s", code)
	}
	for _, total := range []int{1000, 5000} {
		code, ok := TotalCode(total)
		assert.True(t, ok)
		assert.NotEmpty(t, Descriptions[code], "нет текста для %s", code)
	}
}
