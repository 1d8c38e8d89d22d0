package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Close()

	const userID = int64(42)

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow(userID), "запрос %d должен пройти", i+1)
	}
	assert.False(t, rl.Allow(userID), "четвёртый запрос должен быть отклонён")

	// Лимит считается на пользователя, другой не затронут.
	assert.True(t, rl.Allow(int64(99)))
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Millisecond)
	defer rl.Close()

	const userID = int64(7)

	assert.True(t, rl.Allow(userID))
	assert.False(t, rl.Allow(userID))

	time.Sleep(50 * time.Millisecond)
	assert.True(t, rl.Allow(userID), "после окна лимит должен сброситься")
}
