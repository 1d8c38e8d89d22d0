// Package tictactoe реализует дуэль в крестики-нолики с рейтингом.
// board.go — чистая логика доски 3×3.
package tictactoe

// Содержимое клетки / итог партии.
const (
	Empty = 0
	X     = 1
	O     = 2
	Tie   = 3
)

// Board — доска 3×3 построчно: клетка (r,c) — индекс r*3+c.
type Board [9]int

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // строки
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // столбцы
	{0, 4, 8}, {2, 4, 6}, // диагонали
}

// Winner возвращает X или O при победе, Tie при заполненной доске
// без победителя, иначе Empty (игра продолжается).
func (b Board) Winner() int {
	for _, ln := range lines {
		if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[1]] == b[ln[2]] {
			return b[ln[0]]
		}
	}
	for _, cell := range b {
		if cell == Empty {
			return Empty
		}
	}
	return Tie
}

// Cell возвращает содержимое клетки (r,c).
func (b Board) Cell(row, col int) int {
	return b[row*3+col]
}

// Symbol — отображение клетки на клавиатуре.
func Symbol(cell int) string {
	switch cell {
	case X:
		return "❌"
	case O:
		return "⭕"
	default:
		return " "
	}
}
