package core

import (
	"fmt"

	"dungeon-crawler/pkg/logger"
)

// WelcomeMessage - первая строка журнала новой сессии
const WelcomeMessage = "Welcome to the dungeon!"

// GameLog - журнал сообщений для игрока. Каждая запись дублируется в логгер процесса.
type GameLog struct {
	Entries []string
}

func NewGameLog() *GameLog {
	return &GameLog{Entries: []string{WelcomeMessage}}
}

// Add добавляет запись
func (l *GameLog) Add(text string) {
	l.Entries = append(l.Entries, text)
	logger.For("game_log").Info(text)
}

// Addf - Add с форматированием
func (l *GameLog) Addf(format string, args ...any) {
	l.Add(fmt.Sprintf(format, args...))
}

// Recent возвращает до n последних записей, новые в конце.
func (l *GameLog) Recent(n int) []string {
	if n <= 0 || n >= len(l.Entries) {
		return append([]string(nil), l.Entries...)
	}
	return append([]string(nil), l.Entries[len(l.Entries)-n:]...)
}

// Last возвращает последнюю запись ("" для пустого журнала).
func (l *GameLog) Last() string {
	if len(l.Entries) == 0 {
		return ""
	}
	return l.Entries[len(l.Entries)-1]
}
