package network

import (
	"sync"

	"dungeon-crawler/pkg/api"
)

// Broadcaster рассылает снимки подписчикам. Подписчик - одна websocket-сессия.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии -> личный канал
	subscribers map[string]chan api.ServerResponse
	buffer      int
}

func NewBroadcaster(buffer int) *Broadcaster {
	if buffer <= 0 {
		buffer = 16
	}
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
		buffer:      buffer,
	}
}

// Register создает личный канал сессии. Старый канал с тем же ID закрывается.
func (b *Broadcaster) Register(sessionID string) <-chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, b.buffer)
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister закрывает канал сессии; писатель увидит закрытие и завершит соединение.
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// SendTo отправляет снимок одной сессии. false - сессии нет или ее очередь переполнена.
func (b *Broadcaster) SendTo(sessionID string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[sessionID]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}

// Broadcast отправляет всем (уведомление об остановке сервера)
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключена ли сессия
func (b *Broadcaster) HasSubscriber(sessionID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[sessionID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
