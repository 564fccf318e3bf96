package posts

const (
	MaxContentLength = 500
	MaxImages        = 4
	DefaultAuthor    = "Anonymous"
)

// Image is an attachment inlined directly into the post record. Data holds
// the encoded bytes (a data-URI), there is no separate file storage.
type Image struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Data string `json:"data"`
	Size int64  `json:"size"`
}

type Post struct {
	ID        uint64  `json:"id"`
	Author    string  `json:"author"`
	Content   string  `json:"content"`
	Timestamp int64   `json:"timestamp"`
	CreatedAt string  `json:"createdAt"`
	Images    []Image `json:"images"`
	IsLiked   bool    `json:"isLiked"`
	LikeCount int     `json:"likeCount"`
}

// Clone returns an independent copy so callers never hold references into
// repo-internal state.
func (p *Post) Clone() *Post {
	cp := *p
	if p.Images != nil {
		cp.Images = append([]Image(nil), p.Images...)
	}
	return &cp
}

// PostUpdate carries the mutable subset of post fields, nil means unchanged.
type PostUpdate struct {
	Author  *string `json:"author"`
	Content *string `json:"content"`
}
