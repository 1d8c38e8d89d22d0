package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoardWinner(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  int
	}{
		{"пустая доска — игра идёт", Board{}, Empty},
		{"верхняя строка X", Board{X, X, X, O, O, Empty, Empty, Empty, Empty}, X},
		{"средняя строка O", Board{X, Empty, X, O, O, O, X, Empty, Empty}, O},
		{"левый столбец X", Board{X, O, Empty, X, O, Empty, X, Empty, Empty}, X},
		{"главная диагональ X", Board{X, O, O, Empty, X, Empty, Empty, Empty, X}, X},
		{"побочная диагональ O", Board{X, X, O, Empty, O, Empty, O, X, Empty}, O},
		{"ничья", Board{X, O, X, X, O, O, O, X, X}, Tie},
		{"партия не окончена", Board{X, O, Empty, Empty, Empty, Empty, Empty, Empty, Empty}, Empty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.board.Winner())
		})
	}
}

func TestBoardCell(t *testing.T) {
	b := Board{X, Empty, Empty, Empty, O, Empty, Empty, Empty, Empty}
	assert.Equal(t, X, b.Cell(0, 0))
	assert.Equal(t, O, b.Cell(1, 1))
	assert.Equal(t, Empty, b.Cell(2, 2))
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "❌", Symbol(X))
	assert.Equal(t, "⭕", Symbol(O))
	assert.Equal(t, " ", Symbol(Empty))
}
