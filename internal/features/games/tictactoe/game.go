// Package tictactoe — game.go содержит состояние партий и правила ходов.
// Партии живут в памяти: рестарт процесса просто обрывает незаконченные.
package tictactoe

import (
	"errors"
	"sync"
	"time"
)

// Ошибки хода.
var (
	ErrNotFound     = errors.New("игра не найдена")
	ErrNotYourGame  = errors.New("это не твоя партия")
	ErrNotYourTurn  = errors.New("сейчас не твой ход")
	ErrCellOccupied = errors.New("клетка занята")
	ErrFinished     = errors.New("партия завершена")
)

// Заброшенные партии вычищаются по этому порогу.
const gameTTL = 30 * time.Minute

// Game — одна партия. Крестики — вызвавший, нолики — вызванный.
type Game struct {
	Board     Board
	PlayerX   int64
	PlayerO   int64
	NameX     string
	NameO     string
	Turn      int // X или O
	Result    int // Empty, пока игра идёт
	StartedAt time.Time
}

// CurrentPlayer возвращает пользователя, чей сейчас ход.
func (g *Game) CurrentPlayer() int64 {
	if g.Turn == X {
		return g.PlayerX
	}
	return g.PlayerO
}

// Manager хранит партии по идентификатору сообщения с доской.
type Manager struct {
	mu    sync.Mutex
	games map[int64]*Game // ключ: message_id доски
}

// NewManager создаёт менеджер партий.
func NewManager() *Manager {
	return &Manager{games: make(map[int64]*Game)}
}

// Start создаёт партию между двумя игроками.
func (m *Manager) Start(messageID int64, playerX, playerO int64, nameX, nameO string) *Game {
	g := &Game{
		PlayerX:   playerX,
		PlayerO:   playerO,
		NameX:     nameX,
		NameO:     nameO,
		Turn:      X,
		StartedAt: time.Now(),
	}
	m.mu.Lock()
	m.sweepLocked()
	m.games[messageID] = g
	m.mu.Unlock()
	return g
}

// Move применяет ход игрока. Возвращает снимок партии после хода.
// Завершённая партия удаляется из менеджера.
func (m *Manager) Move(messageID, userID int64, row, col int) (Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[messageID]
	if !ok {
		return Game{}, ErrNotFound
	}
	if userID != g.PlayerX && userID != g.PlayerO {
		return Game{}, ErrNotYourGame
	}
	if g.Result != Empty {
		return Game{}, ErrFinished
	}
	if userID != g.CurrentPlayer() {
		return Game{}, ErrNotYourTurn
	}
	pos := row*3 + col
	if pos < 0 || pos > 8 || g.Board[pos] != Empty {
		return Game{}, ErrCellOccupied
	}

	g.Board[pos] = g.Turn
	g.Result = g.Board.Winner()
	if g.Result == Empty {
		if g.Turn == X {
			g.Turn = O
		} else {
			g.Turn = X
		}
	} else {
		delete(m.games, messageID)
	}
	return *g, nil
}

// Abort снимает партию с учёта (например, по команде отмены).
func (m *Manager) Abort(messageID int64) {
	m.mu.Lock()
	delete(m.games, messageID)
	m.mu.Unlock()
}

func (m *Manager) sweepLocked() {
	cutoff := time.Now().Add(-gameTTL)
	for id, g := range m.games {
		if g.StartedAt.Before(cutoff) {
			delete(m.games, id)
		}
	}
}
