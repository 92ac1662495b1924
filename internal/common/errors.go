// Package common — errors.go определяет типизированные ошибки движка.
// Транспортный слой маппит их в статусы протокола (404/400/401/403/409/...),
// сам движок статусами не оперирует.
package common

import "errors"

// Ошибки "не найдено" (NotFound)
var (
	// ErrPlayerNotFound — игрок отсутствует в базе
	ErrPlayerNotFound = errors.New("not found player")
	// ErrDeviceNotFound — устройство (viewer) не привязано к игроку
	ErrDeviceNotFound = errors.New("not found player device")
	// ErrItemNotFound — шаблон предмета отсутствует или тип не совпал
	ErrItemNotFound = errors.New("not found item")
	// ErrCardNotFound — карта отсутствует или принадлежит другому игроку
	ErrCardNotFound = errors.New("not found card")
	// ErrDeckNotFound — у игрока нет активной колоды
	ErrDeckNotFound = errors.New("not found deck")
	// ErrGachaNotFound — гача не существует или не активна сейчас
	ErrGachaNotFound = errors.New("not found gacha")
	// ErrGachaPoolEmpty — у гачи не настроен пул выпадения
	ErrGachaPoolEmpty = errors.New("not found gacha item")
	// ErrRulesetNotFound — нет активной версии мастер-данных
	ErrRulesetNotFound = errors.New("active master version is not found")
)

// Ошибки валидации входа (InvalidInput)
var (
	// ErrInvalidInput — некорректные параметры запроса
	ErrInvalidInput = errors.New("invalid request body")
	// ErrInvalidItemType — неизвестный дискриминатор типа предмета
	ErrInvalidItemType = errors.New("invalid item type")
	// ErrInvalidDrawCount — количество круток не 1 и не 10
	ErrInvalidDrawCount = errors.New("invalid draw gacha times")
)

// Ошибки доступа (Unauthorized / Forbidden)
var (
	// ErrUnauthorized — сессия отсутствует или не найдена
	ErrUnauthorized = errors.New("unauthorized user")
	// ErrForbidden — сессия чужая либо игрок забанен
	ErrForbidden = errors.New("forbidden")
	// ErrSessionExpired — сессия истекла и погашена
	ErrSessionExpired = errors.New("session expired")
	// ErrInvalidToken — одноразовый токен отсутствует, истёк или уже использован
	ErrInvalidToken = errors.New("invalid token")
)

// Ошибки состояния (Conflict / AlreadyAtMax)
var (
	// ErrInsufficientCoin — не хватает монет на операцию
	ErrInsufficientCoin = errors.New("not enough coin")
	// ErrInsufficientMaterial — запрошено больше материала, чем есть
	ErrInsufficientMaterial = errors.New("item not enough")
	// ErrCardMaxLevel — карта уже на максимальном уровне
	ErrCardMaxLevel = errors.New("target card is max level")
)

// Внутренние ошибки (Internal) — неустранимые без вмешательства
var (
	// ErrLoginBonusRewardNotFound — расписание логин-бонуса без награды,
	// ошибка конфигурации мастер-данных, а не пользователя
	ErrLoginBonusRewardNotFound = errors.New("not found login bonus reward")
	// ErrIDGenerationFailed — генератор ID исчерпал попытки при конкуренции
	ErrIDGenerationFailed = errors.New("failed to generate id")
)
