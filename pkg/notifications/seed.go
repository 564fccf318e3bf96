package notifications

import "time"

// Seed is the demo notification set the app starts with. Callers that want
// an empty store pass nil to NewNotificationsRepo instead.
func Seed() []*Notification {
	now := time.Now()

	at := func(ago time.Duration) string {
		return now.Add(-ago).UTC().Format(time.RFC3339)
	}

	postOne := uint64(1)

	return []*Notification{
		{
			ID:            1,
			Type:          TypeComment,
			Message:       "bob_smith commented on your post",
			FromUsername:  "bob_smith",
			RelatedPostID: &postOne,
			IsRead:        false,
			CreatedAt:     at(30 * time.Minute),
		},
		{
			ID:            2,
			Type:          TypeFollow,
			Message:       "carol_williams started following you",
			FromUsername:  "carol_williams",
			IsRead:        false,
			CreatedAt:     at(3 * time.Hour),
		},
		{
			ID:            3,
			Type:          TypeLike,
			Message:       "bob_smith liked your post",
			FromUsername:  "bob_smith",
			RelatedPostID: &postOne,
			IsRead:        true,
			CreatedAt:     at(26 * time.Hour),
		},
	}
}
