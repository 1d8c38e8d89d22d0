// Package fun — ai.go реализует псевдо-ИИ «Милану»: отвечает на просьбы
// о помощи, распознанные по шаблонам. Настоящего API за ней нет, ответы
// имитируются локально.
package fun

import (
	"fmt"
	"regexp"
	"strings"
)

var milanaPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)милан[ауое].*помоги`),
	regexp.MustCompile(`(?i)милан[ауое].*домашк`),
	regexp.MustCompile(`(?i)милан[ауое].*задани`),
	regexp.MustCompile(`(?i)милан[ауое].*учеб`),
	regexp.MustCompile(`(?i)помоги.*милан[ауое]`),
	regexp.MustCompile(`(?i)милан[ауое].*не могу`),
	regexp.MustCompile(`(?i)милан[ауое].*не знаю`),
	regexp.MustCompile(`(?i)милан[ауое].*объясни`),
	regexp.MustCompile(`(?i)объясни.*милан[ауое]`),
}

var milanaMention = regexp.MustCompile(`(?i)милан[ауое]`)

var generalResponses = []string{
	"Я подумаю над этим и дам тебе знать позже",
	"Интересный вопрос! Дай мне немного времени",
	"Я бы с радостью помогла, но сейчас немного занята. Попробуй позже",
	"Хм, неплохой вопрос. Что ты уже знаешь об этом?",
	"Я не эксперт в этом, но могу попробовать помочь. Расскажи подробнее",
	"Отличный вопрос! Я посмотрю, что можно сделать",
	"Я бы хотела помочь, но мне нужно больше информации",
	"Это заставляет задуматься. Что ты хочешь узнать?",
}

// MatchesMilana сообщает, обращено ли сообщение к Милане.
func MatchesMilana(text string) bool {
	for _, p := range milanaPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// CleanRequest убирает упоминание Миланы из текста запроса.
func CleanRequest(text string) string {
	return strings.TrimSpace(milanaMention.ReplaceAllString(text, ""))
}

// MilanaResponses возвращает варианты ответа на запрос.
// Обработчик выбирает один случайно.
func MilanaResponses(request string) []string {
	lower := strings.ToLower(request)
	switch {
	case strings.Contains(lower, "домашк") || strings.Contains(lower, "задани"):
		return []string{
			fmt.Sprintf("С домашкой по «%s»? Давай разберёмся вместе. Что именно непонятно?", request),
			fmt.Sprintf("Домашнее задание по «%s» звучит интересно. С чего хочешь начать?", request),
			fmt.Sprintf("Я могу помочь с «%s». Расскажи, какие темы вызывают трудности?", request),
		}
	case strings.Contains(lower, "матем"):
		return []string{
			"Математика — это моё любимое! Давай посмотрим на задачу.",
			"С математикой я точно смогу помочь. Что за пример?",
			"Математика? Интересно! Покажи условие задачи.",
		}
	case strings.Contains(lower, "русск"):
		return []string{
			"С русским языком помогу! Что нужно — сочинение, диктант или разбор предложения?",
			"Русский язык — моя страсть! С чем нужна помощь?",
			"Давай разберём грамматику вместе. Что именно непонятно?",
		}
	default:
		return generalResponses
	}
}
