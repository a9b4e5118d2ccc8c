package mocks

import (
	"fmt"
	"sync"
	"time"

	"github.com/skillswap-api/internal/models"
	"github.com/skillswap-api/internal/service"
)

// MockFeed records notifications in memory
type MockFeed struct {
	mu            sync.Mutex
	Notifications []models.Notification
}

// Verify interface compliance
var _ service.Feed = (*MockFeed)(nil)

func NewMockFeed() *MockFeed {
	return &MockFeed{
		Notifications: make([]models.Notification, 0),
	}
}

func (m *MockFeed) Notify(title, description string, severity models.Severity) models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := models.Notification{
		ID:          fmt.Sprintf("n-%d", len(m.Notifications)+1),
		Title:       title,
		Description: description,
		Severity:    severity,
		CreatedAt:   time.Date(2024, 7, 12, 9, 0, len(m.Notifications), 0, time.UTC),
	}
	m.Notifications = append(m.Notifications, n)
	return n
}

func (m *MockFeed) Recent(n int) []models.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := 0
	if n > 0 && n < len(m.Notifications) {
		start = len(m.Notifications) - n
	}
	return append([]models.Notification{}, m.Notifications[start:]...)
}

// Titles returns the titles of every recorded notification in order
func (m *MockFeed) Titles() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	titles := make([]string, 0, len(m.Notifications))
	for _, n := range m.Notifications {
		titles = append(titles, n.Title)
	}
	return titles
}

// Reset forgets recorded notifications
func (m *MockFeed) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = m.Notifications[:0]
}
