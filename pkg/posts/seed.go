package posts

import "time"

// seedPosts is the bundled starter feed used when the substrate holds no
// post collection yet.
func seedPosts() []*Post {
	now := time.Now()

	at := func(ago time.Duration) (int64, string) {
		t := now.Add(-ago)
		return t.UnixNano() / int64(time.Millisecond), t.UTC().Format(time.RFC3339)
	}

	ts1, iso1 := at(2 * time.Hour)
	ts2, iso2 := at(5 * time.Hour)
	ts3, iso3 := at(26 * time.Hour)

	return []*Post{
		{
			ID:        1,
			Author:    "alice_johnson",
			Content:   "Just finished reading a great book on distributed systems. Highly recommend it to anyone curious about how large services stay up.",
			Timestamp: ts1,
			CreatedAt: iso1,
			Images:    []Image{},
			IsLiked:   false,
			LikeCount: 12,
		},
		{
			ID:        2,
			Author:    "bob_smith",
			Content:   "Morning run done. The park was beautiful today.",
			Timestamp: ts2,
			CreatedAt: iso2,
			Images:    []Image{},
			IsLiked:   false,
			LikeCount: 5,
		},
		{
			ID:        3,
			Author:    "carol_williams",
			Content:   "Trying out a new recipe tonight. Wish me luck!",
			Timestamp: ts3,
			CreatedAt: iso3,
			Images:    []Image{},
			IsLiked:   false,
			LikeCount: 3,
		},
	}
}
