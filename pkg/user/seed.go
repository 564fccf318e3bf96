package user

func seedUsers() []*User {
	return []*User{
		{
			ID:          1,
			Username:    "alice_johnson",
			DisplayName: "Alice Johnson",
			Avatar:      "https://i.pravatar.cc/150?u=alice_johnson",
			Bio:         "Backend engineer. I like books, coffee and long walks through server logs.",
			Location:    "Portland, OR",
			Website:     "https://alice.example.com",
			JoinedDate:  "2021-03-14",
		},
		{
			ID:          2,
			Username:    "bob_smith",
			DisplayName: "Bob Smith",
			Avatar:      "https://i.pravatar.cc/150?u=bob_smith",
			Bio:         "Runner, photographer, occasional blogger.",
			Location:    "Austin, TX",
			Website:     "",
			JoinedDate:  "2020-11-02",
		},
		{
			ID:          3,
			Username:    "carol_williams",
			DisplayName: "Carol Williams",
			Avatar:      "https://i.pravatar.cc/150?u=carol_williams",
			Bio:         "Home cook sharing recipes and kitchen experiments.",
			Location:    "Chicago, IL",
			Website:     "https://carolcooks.example.com",
			JoinedDate:  "2022-06-21",
		},
	}
}

func seedFollowEdges() []FollowEdge {
	return []FollowEdge{
		{FollowerID: 2, FollowingID: 1},
		{FollowerID: 3, FollowingID: 1},
		{FollowerID: 1, FollowingID: 3},
	}
}
