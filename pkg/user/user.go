package user

type User struct {
	ID          uint64 `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Avatar      string `json:"avatar"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	JoinedDate  string `json:"joinedDate"`
}

func (u *User) Clone() *User {
	cp := *u
	return &cp
}

// FollowEdge is a directed relationship: the follower's feed treats the
// followee as followed. At most one edge per ordered pair, no self-edges.
type FollowEdge struct {
	FollowerID  uint64 `json:"followerId"`
	FollowingID uint64 `json:"followingId"`
}

type FollowerStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}
