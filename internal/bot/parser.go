// Package bot — parser.go разбирает команды с префиксами !, . и /
// и подсказывает ближайшую команду при опечатке.
package bot

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// CommandParser парсит русские команды с префиксами !, . и /.
type CommandParser struct {
	validPrefixes []string
}

// NewCommandParser создаёт парсер команд.
func NewCommandParser() *CommandParser {
	return &CommandParser{
		validPrefixes: []string{"!", ".", "/"},
	}
}

// ParseCommand разбирает текст на команду и аргументы.
func (p *CommandParser) ParseCommand(text string) (string, []string, bool) {
	text = strings.TrimSpace(text)

	hasPrefix := false
	for _, prefix := range p.validPrefixes {
		if strings.HasPrefix(text, prefix) {
			text = strings.TrimPrefix(text, prefix)
			hasPrefix = true
			break
		}
	}
	if !hasPrefix {
		return "", nil, false
	}

	text = strings.TrimSpace(text)
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil, false
	}

	// Команды вида /profile@botname — отрезаем упоминание
	command := strings.ToLower(parts[0])
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}

	var args []string
	if len(parts) > 1 {
		args = parts[1:]
	}
	return command, args, true
}

// SuggestCommand возвращает ближайшую известную команду для опечатки.
func SuggestCommand(input string, known []string) (string, bool) {
	matches := fuzzy.Find(input, known)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
