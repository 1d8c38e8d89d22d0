package fun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRPAction(t *testing.T) {
	assert.True(t, IsRPAction("обнять"))
	assert.True(t, IsRPAction("пукнуть"))
	assert.False(t, IsRPAction("profile"))
	assert.False(t, IsRPAction(""))
}

func TestRPSelfResponse(t *testing.T) {
	assert.Contains(t, RPSelfResponse("пукнуть", "Вася"), "Вася пукнул под себя")
	assert.Contains(t, RPSelfResponse("стукнуть", "Вася"), "сам себя")
	assert.Contains(t, RPSelfResponse("обнять", "Вася"), "партнёр")
}

func TestRPResponses(t *testing.T) {
	got := RPResponses("обнять", "Вася", "Петя")
	assert.Equal(t, []string{"Вася обнял Петя"}, got)

	got = RPResponses("пукнуть", "Вася", "Петя")
	assert.Len(t, got, 3)
	for _, resp := range got {
		assert.Contains(t, resp, "Вася")
		assert.Contains(t, resp, "Петя")
	}
}
