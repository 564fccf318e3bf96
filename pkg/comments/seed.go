package comments

import "time"

func seedComments() []*Comment {
	now := time.Now()

	at := func(ago time.Duration) (int64, string) {
		t := now.Add(-ago)
		return t.UnixNano() / int64(time.Millisecond), t.UTC().Format(time.RFC3339)
	}

	ts1, iso1 := at(time.Hour)
	ts2, iso2 := at(30 * time.Minute)
	ts3, iso3 := at(2 * time.Hour)

	parent := uint64(1)

	return []*Comment{
		{
			ID:        1,
			PostID:    1,
			Author:    "alice_johnson",
			Content:   "Great post! This really resonates with me.",
			Timestamp: ts1,
			CreatedAt: iso1,
		},
		{
			ID:        2,
			PostID:    1,
			ParentID:  &parent,
			Author:    "bob_smith",
			Content:   "I completely agree with Alice on this one.",
			Timestamp: ts2,
			CreatedAt: iso2,
		},
		{
			ID:        3,
			PostID:    2,
			Author:    "carol_williams",
			Content:   "Thanks for sharing your perspective!",
			Timestamp: ts3,
			CreatedAt: iso3,
		},
	}
}
