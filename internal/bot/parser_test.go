package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	tests := []struct {
		name     string
		text     string
		wantCmd  string
		wantArgs []string
		wantOK   bool
	}{
		{"слэш", "/profile", "profile", nil, true},
		{"восклицательный знак", "!ритуал", "ритуал", nil, true},
		{"точка", ".stats", "stats", nil, true},
		{"аргументы", "/equip Легенда", "equip", []string{"Легенда"}, true},
		{"несколько аргументов", "!coins 123 50", "coins", []string{"123", "50"}, true},
		{"упоминание бота отрезается", "/profile@bratva_bot", "profile", nil, true},
		{"регистр команды понижается", "/PROFILE", "profile", nil, true},
		{"пробелы по краям", "  /week  ", "week", nil, true},
		{"без префикса — не команда", "привет всем", "", nil, false},
		{"пустой текст", "", "", nil, false},
		{"голый префикс", "/", "", nil, false},
		{"голый префикс с пробелом", "! ", "", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok := p.ParseCommand(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCmd, cmd)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	known := []string{"profile", "stats", "week", "shop", "recover"}

	got, ok := SuggestCommand("profil", known)
	assert.True(t, ok)
	assert.Equal(t, "profile", got)

	got, ok = SuggestCommand("stat", known)
	assert.True(t, ok)
	assert.Equal(t, "stats", got)

	_, ok = SuggestCommand("qqqqqq", known)
	assert.False(t, ok)
}
