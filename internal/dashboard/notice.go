package dashboard

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxNotices = 50

// Notice is a dismissible fetch-failure message.
type Notice struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	Count     int       `json:"count"`
}

// NoticeList holds active notices, oldest first. A repeat failure for the
// same source and subject updates the existing notice instead of stacking.
type NoticeList struct {
	mu    sync.Mutex
	items []Notice
}

func (l *NoticeList) Add(source, subject, message string, at time.Time) Notice {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.items {
		n := &l.items[i]
		if n.Source == source && n.Subject == subject {
			n.Message = message
			n.CreatedAt = at
			n.Count++
			return *n
		}
	}

	n := Notice{
		ID:        uuid.NewString(),
		Source:    source,
		Subject:   subject,
		Message:   message,
		CreatedAt: at,
		Count:     1,
	}
	l.items = append(l.items, n)
	if len(l.items) > maxNotices {
		l.items = l.items[len(l.items)-maxNotices:]
	}
	return n
}

// List returns a copy of the active notices.
func (l *NoticeList) List() []Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Notice{}, l.items...)
}

// Dismiss removes the notice with id and reports whether it existed.
func (l *NoticeList) Dismiss(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, n := range l.items {
		if n.ID == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}
