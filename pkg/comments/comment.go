package comments

const MaxContentLength = 280

type Comment struct {
	ID        uint64  `json:"id"`
	PostID    uint64  `json:"postId"`
	ParentID  *uint64 `json:"parentId"`
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	Timestamp int64   `json:"timestamp"`
	CreatedAt string  `json:"createdAt"`
}

// Clone returns an independent copy so callers never hold references into
// repo-internal state.
func (c *Comment) Clone() *Comment {
	cp := *c
	if c.ParentID != nil {
		parent := *c.ParentID
		cp.ParentID = &parent
	}
	return &cp
}

// CommentNode is a comment with its replies attached, as produced by the
// tree reconstruction in GetByPostID.
type CommentNode struct {
	Comment
	Replies []*CommentNode `json:"replies"`
}

// CommentUpdate carries the mutable subset of comment fields, nil means
// unchanged. Id, postId and parentId are immutable.
type CommentUpdate struct {
	Content *string `json:"content"`
}
