package fun

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesMilana(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Милана помоги с уроками", true},
		{"милана, помоги пожалуйста", true},
		{"МИЛАНА ОБЪЯСНИ теорему", true},
		{"помоги мне, Милана", true},
		{"милане задали домашку", true},
		{"Милана не могу решить пример", true},
		{"просто упоминание миланы без просьбы", false},
		{"помоги мне кто-нибудь", false},
		{"обычное сообщение", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MatchesMilana(tt.text), "text=%q", tt.text)
	}
}

func TestCleanRequest(t *testing.T) {
	assert.Equal(t, "помоги с уроками", CleanRequest("Милана помоги с уроками"))
	assert.Equal(t, "объясни дроби,", CleanRequest("объясни дроби, милана"))
	assert.NotContains(t, CleanRequest("МИЛАНА объясни"), "МИЛАНА")
}

func TestMilanaResponses(t *testing.T) {
	// Ветка домашки.
	got := MilanaResponses("помоги с домашкой")
	assert.Len(t, got, 3)
	assert.Contains(t, got[0], "домашкой")

	// Ветка математики.
	got = MilanaResponses("не понимаю математику")
	assert.Contains(t, got[0], "Математика")

	// Ветка русского языка.
	got = MilanaResponses("помоги с русским")
	assert.Contains(t, got[0], "русским языком")

	// Общая ветка.
	got = MilanaResponses("как жить дальше")
	assert.Equal(t, generalResponses, got)
}
