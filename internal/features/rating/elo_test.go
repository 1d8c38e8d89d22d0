package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestExpectedScore(t *testing.T) {
	// Равные рейтинги — ровно пополам.
	assert.InDelta(t, 0.5, ExpectedScore(1000, 1000), 1e-9)

	// Разница в 400 пунктов — ~91% на сильного.
	assert.InDelta(t, 10.0/11.0, ExpectedScore(1400, 1000), 1e-9)

	// Сумма ожиданий двух сторон — единица.
	assert.InDelta(t, 1.0, ExpectedScore(1200, 950)+ExpectedScore(950, 1200), 1e-9)
}

func TestNext(t *testing.T) {
	const k = 32

	// Победа при равных рейтингах: +16 / -16.
	assert.Equal(t, 1016, Next(1000, 1000, ResultWin, k))
	assert.Equal(t, 984, Next(1000, 1000, ResultLoss, k))

	// Ничья при равных рейтингах ничего не меняет.
	assert.Equal(t, 1000, Next(1000, 1000, ResultDraw, k))

	// Победа фаворита стоит меньше, чем победа андердога.
	favGain := Next(1400, 1000, ResultWin, k) - 1400
	dogGain := Next(1000, 1400, ResultWin, k) - 1000
	assert.Less(t, favGain, dogGain)
}

func TestNextProperties(t *testing.T) {
	const k = 32

	rapid.Check(t, func(t *rapid.T) {
		ra := rapid.IntRange(100, 3000).Draw(t, "ra")
		rb := rapid.IntRange(100, 3000).Draw(t, "rb")

		newA := Next(ra, rb, ResultWin, k)
		newB := Next(rb, ra, ResultLoss, k)

		// Победитель не теряет, проигравший не приобретает.
		assert.GreaterOrEqual(t, newA, ra)
		assert.LessOrEqual(t, newB, rb)

		// Система почти нулевой суммы (с точностью до округления).
		drift := (newA - ra) + (newB - rb)
		assert.LessOrEqual(t, drift, 1)
		assert.GreaterOrEqual(t, drift, -1)
	})
}
