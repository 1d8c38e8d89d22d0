// Package rating реализует попарное обновление рейтинга по схеме Эло.
// elo.go — чистая математика, без состояния.
package rating

import "math"

// Результат матча с точки зрения первого игрока.
const (
	ResultWin  = 1.0
	ResultLoss = 0.0
	ResultDraw = 0.5
)

// ExpectedScore возвращает ожидаемый результат игрока с рейтингом ra
// против игрока с рейтингом rb: E = 1/(1+10^((rb-ra)/400)).
func ExpectedScore(ra, rb int) float64 {
	return 1 / (1 + math.Pow(10, float64(rb-ra)/400))
}

// Next вычисляет новый рейтинг: round(ra + K*(result-E)).
func Next(ra, rb int, result float64, k int) int {
	e := ExpectedScore(ra, rb)
	return int(math.Round(float64(ra) + float64(k)*(result-e)))
}
