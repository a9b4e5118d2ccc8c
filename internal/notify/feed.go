// Package notify records acknowledgements of completed actions and fans them
// out to live subscribers.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/models"
)

// Notifier receives a notification after each successful mutation.
// Notifications are observational and never affect state.
type Notifier interface {
	Notify(title, description string, severity models.Severity) models.Notification
}

// Feed is a Notifier that keeps a bounded history and publishes to subscribers
type Feed struct {
	mu          sync.RWMutex
	history     []models.Notification
	limit       int
	subscribers map[int]chan models.Notification
	nextSub     int
	log         zerolog.Logger
}

// NewFeed creates a feed that retains the last limit notifications
func NewFeed(limit int, log zerolog.Logger) *Feed {
	if limit <= 0 {
		limit = 100
	}
	return &Feed{
		limit:       limit,
		subscribers: make(map[int]chan models.Notification),
		log:         log.With().Str("component", "notify").Logger(),
	}
}

// Notify records the notification and publishes it without blocking.
// Subscribers that are not keeping up miss the message.
func (f *Feed) Notify(title, description string, severity models.Severity) models.Notification {
	if severity == "" {
		severity = models.SeverityInfo
	}
	n := models.Notification{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Severity:    severity,
		CreatedAt:   time.Now().UTC(),
	}

	f.mu.Lock()
	f.history = append(f.history, n)
	if len(f.history) > f.limit {
		f.history = append([]models.Notification(nil), f.history[len(f.history)-f.limit:]...)
	}
	for id, ch := range f.subscribers {
		select {
		case ch <- n:
		default:
			f.log.Warn().Int("subscriber", id).Str("title", title).Msg("Subscriber lagging, notification dropped")
		}
	}
	f.mu.Unlock()

	f.log.Debug().
		Str("title", title).
		Str("severity", string(severity)).
		Msg("Notification published")

	return n
}

// Recent returns up to n of the newest notifications, oldest first.
// n <= 0 returns the full history.
func (f *Feed) Recent(n int) []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()

	start := 0
	if n > 0 && n < len(f.history) {
		start = len(f.history) - n
	}
	return append([]models.Notification{}, f.history[start:]...)
}

// Subscribe registers a listener. The returned cancel func closes the channel.
func (f *Feed) Subscribe(buffer int) (<-chan models.Notification, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan models.Notification, buffer)

	f.mu.Lock()
	id := f.nextSub
	f.nextSub++
	f.subscribers[id] = ch
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subscribers, id)
			close(ch)
			f.mu.Unlock()
		})
	}
	return ch, cancel
}
