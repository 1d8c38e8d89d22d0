// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки ежедневного ритуала и восстановления
var (
	// ErrNoRecord — у пользователя ещё нет записи (показываем нули, не ошибку)
	ErrNoRecord = errors.New("нет данных о пользователе")
	// ErrRecoveryUnavailable — восстановление серии недоступно
	ErrRecoveryUnavailable = errors.New("нет доступного восстановления")
	// ErrRecoveryExpired — срок восстановления серии истёк
	ErrRecoveryExpired = errors.New("срок восстановления истёк")
	// ErrNothingToRestore — восстановление не увеличит текущую серию
	ErrNothingToRestore = errors.New("нечего восстанавливать")
)

// Ошибки рейтинга
var (
	// ErrUnknownUser — у одной из сторон матча нет записи, обновление пропущено
	ErrUnknownUser = errors.New("пользователь не найден в рейтинге")
)

// Ошибки магазина и титулов
var (
	// ErrInsufficientCoins — недостаточно монет на счёте
	ErrInsufficientCoins = errors.New("недостаточно монет")
	// ErrUnknownItem — нет такого товара в каталоге
	ErrUnknownItem = errors.New("нет такого товара")
	// ErrTitleNotOwned — титул не получен, надевать нечего
	ErrTitleNotOwned = errors.New("титул не получен")
)

// Ошибки админки
var (
	// ErrNotAdmin — пользователь не является администратором
	ErrNotAdmin = errors.New("у вас нет прав администратора")
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
	// ErrSessionExpired — сессия истекла
	ErrSessionExpired = errors.New("сессия истекла, авторизуйтесь заново")
)
