package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// sessionPrefix отличает ID сессий от ID сущностей в логах
const sessionPrefix = "s-"

// NewSessionID создает случайный ID websocket-сессии: "s-" + 16 hex-символов.
func NewSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic("failed to generate session id: " + err.Error())
	}
	return sessionPrefix + hex.EncodeToString(b)
}

// IsSessionID проверяет формат, выданный NewSessionID
func IsSessionID(s string) bool {
	if len(s) != len(sessionPrefix)+16 || s[:len(sessionPrefix)] != sessionPrefix {
		return false
	}
	_, err := hex.DecodeString(s[len(sessionPrefix):])
	return err == nil
}
