// Package fun — rp.go реализует RP-действия в ответ на сообщение.
package fun

import "fmt"

// RPActions — команды действий и их форма прошедшего времени.
var RPActions = map[string]string{
	"поцеловать": "поцеловал",
	"обнять":     "обнял",
	"засосать":   "засосал",
	"пукнуть":    "пукнул на",
	"стукнуть":   "стукнул",
	"погладить":  "погладил",
}

// IsRPAction сообщает, является ли команда RP-действием.
func IsRPAction(command string) bool {
	_, ok := RPActions[command]
	return ok
}

// RPSelfResponse — варианты ответа на действие над самим собой.
func RPSelfResponse(command, initiator string) string {
	switch command {
	case "пукнуть":
		return fmt.Sprintf("%s пукнул под себя. Странный чел", initiator)
	case "стукнуть":
		return fmt.Sprintf("%s стукнул сам себя и ушёл в депрессию", initiator)
	default:
		return fmt.Sprintf("%s не смог себя %s. Ему нужен партнёр!", initiator, command)
	}
}

// RPResponses возвращает варианты ответа на действие над другим участником.
// Обработчик выбирает один случайно.
func RPResponses(command, initiator, target string) []string {
	if command == "пукнуть" {
		return []string{
			fmt.Sprintf("%s пукнул на %s. Воняет же!", initiator, target),
			fmt.Sprintf("%s пукнул прямо в лицо %s. Невыносимо!", initiator, target),
			fmt.Sprintf("%s пукнул, а %s получил дозу газа!", initiator, target),
		}
	}
	past := RPActions[command]
	return []string{fmt.Sprintf("%s %s %s", initiator, past, target)}
}
