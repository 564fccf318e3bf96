package notifications

import (
	"context"
	"sort"
	"sync"
	"time"

	"echofeed/pkg/errs"
)

// NotificationsRepo owns the notification list. Like the user store it is
// memory-only: the substrate persists posts and comments, nothing else.
type NotificationsRepo struct {
	mu      *sync.Mutex
	data    []*Notification
	latency time.Duration
}

func NewNotificationsRepo(data []*Notification, latency time.Duration) *NotificationsRepo {
	return &NotificationsRepo{
		mu:      &sync.Mutex{},
		data:    data,
		latency: latency,
	}
}

func (repo *NotificationsRepo) wait() {
	if repo.latency > 0 {
		time.Sleep(repo.latency)
	}
}

// GetAll returns every notification, newest first.
func (repo *NotificationsRepo) GetAll(ctx context.Context) ([]*Notification, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	res := make([]*Notification, 0, len(repo.data))
	for _, n := range repo.data {
		res = append(res, n.Clone())
	}

	sort.SliceStable(res, func(i, j int) bool {
		return parseCreatedAt(res[i].CreatedAt).After(parseCreatedAt(res[j].CreatedAt))
	})

	return res, nil
}

func (repo *NotificationsRepo) UnreadCount(ctx context.Context) (int, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	count := 0
	for _, n := range repo.data {
		if !n.IsRead {
			count++
		}
	}

	return count, nil
}

func (repo *NotificationsRepo) MarkAsRead(ctx context.Context, id uint64) (*Notification, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, n := range repo.data {
		if n.ID == id {
			n.IsRead = true
			return n.Clone(), nil
		}
	}

	return nil, errs.ErrNotFound
}

// MarkAllAsRead is idempotent and always succeeds.
func (repo *NotificationsRepo) MarkAllAsRead(ctx context.Context) error {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, n := range repo.data {
		n.IsRead = true
	}

	return nil
}

func (repo *NotificationsRepo) Add(ctx context.Context, typ, message, fromUsername string, relatedPostID *uint64) (*Notification, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	n := &Notification{
		ID:            repo.nextID(),
		Type:          typ,
		Message:       message,
		FromUsername:  fromUsername,
		RelatedPostID: relatedPostID,
		IsRead:        false,
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	repo.data = append([]*Notification{n}, repo.data...)

	return n.Clone(), nil
}

// nextID must be called with the mutex held.
func (repo *NotificationsRepo) nextID() uint64 {
	var max uint64
	for _, n := range repo.data {
		if n.ID > max {
			max = n.ID
		}
	}

	return max + 1
}

func parseCreatedAt(raw string) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return t
}
