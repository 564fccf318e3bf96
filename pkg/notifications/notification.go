package notifications

const (
	TypeLike    = "like"
	TypeComment = "comment"
	TypeFollow  = "follow"
)

type Notification struct {
	ID            uint64  `json:"id"`
	Type          string  `json:"type"`
	Message       string  `json:"message"`
	FromUsername  string  `json:"fromUsername"`
	RelatedPostID *uint64 `json:"relatedPostId"`
	IsRead        bool    `json:"isRead"`
	CreatedAt     string  `json:"createdAt"`
}

func (n *Notification) Clone() *Notification {
	cp := *n
	if n.RelatedPostID != nil {
		postID := *n.RelatedPostID
		cp.RelatedPostID = &postID
	}
	return &cp
}
