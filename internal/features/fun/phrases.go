// Package fun — развлекательные команды: случайные фразы, RP-действия
// и псевдо-ИИ «Милана». phrases.go содержит набор фраз для /fun.
package fun

var funPhrases = []string{
	"Код — это поэзия, только без рифмы.",
	"Пятница — маленький релиз счастья.",
	"Если ничего не работает — выключи и включи кофе.",
	"Scrum — это когда все бегают, но кто-то все равно фиксит прод.",
	"Тесты — это письма в будущее самому себе.",
}
