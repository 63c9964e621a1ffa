package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init работает с настройками logrus по умолчанию (нужно тестам).
var Log = logrus.New()

// Init инициализирует глобальный логгер из переменных окружения.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	// По умолчанию - "info". Для отладки можно выставить "debug".
	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	Configure(logLevel, os.Getenv("LOG_FORMAT"))
}

// Configure применяет уровень и формат (из конфига или окружения).
// "json" - для продакшена и сбора логов, всё остальное - текст для разработки.
func Configure(logLevel, logFormat string) {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(logFormat) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	Log.SetOutput(os.Stdout)

	// Пишем после смены форматтера, чтобы предупреждение вышло в нужном формате
	if err != nil && logLevel != "" {
		Log.WithField("level", logLevel).Warn("Unknown log level, using info.")
	}
}

// For возвращает логгер с полем component - так каждая система подписывает свои записи.
func For(component string) *logrus.Entry {
	return Log.WithField("component", component)
}
