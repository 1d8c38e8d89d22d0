package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	msgID   = int64(1001)
	playerX = int64(10)
	playerO = int64(20)
)

func startGame(m *Manager) *Game {
	return m.Start(msgID, playerX, playerO, "Вася", "Петя")
}

func TestMoveTurnOrder(t *testing.T) {
	m := NewManager()
	startGame(m)

	// Первый ход за крестиками.
	_, err := m.Move(msgID, playerO, 0, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	g, err := m.Move(msgID, playerX, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, X, g.Board.Cell(0, 0))
	assert.Equal(t, O, g.Turn)

	// Два хода подряд нельзя.
	_, err = m.Move(msgID, playerX, 1, 1)
	assert.ErrorIs(t, err, ErrNotYourTurn)
}

func TestMoveOccupiedCell(t *testing.T) {
	m := NewManager()
	startGame(m)

	_, err := m.Move(msgID, playerX, 1, 1)
	require.NoError(t, err)

	_, err = m.Move(msgID, playerO, 1, 1)
	assert.ErrorIs(t, err, ErrCellOccupied)
}

func TestMoveStrangers(t *testing.T) {
	m := NewManager()
	startGame(m)

	_, err := m.Move(msgID, int64(777), 0, 0)
	assert.ErrorIs(t, err, ErrNotYourGame)

	_, err = m.Move(int64(9999), playerX, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveToVictory(t *testing.T) {
	m := NewManager()
	startGame(m)

	// X: 0,1,2 (верхняя строка), O: 3,4.
	moves := []struct {
		player   int64
		row, col int
	}{
		{playerX, 0, 0},
		{playerO, 1, 0},
		{playerX, 0, 1},
		{playerO, 1, 1},
	}
	for _, mv := range moves {
		_, err := m.Move(msgID, mv.player, mv.row, mv.col)
		require.NoError(t, err)
	}

	g, err := m.Move(msgID, playerX, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, X, g.Result)

	// Завершённая партия снимается с учёта.
	_, err = m.Move(msgID, playerO, 2, 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAbort(t *testing.T) {
	m := NewManager()
	startGame(m)
	m.Abort(msgID)

	_, err := m.Move(msgID, playerX, 0, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
