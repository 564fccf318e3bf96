package comments

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"echofeed/pkg/errs"
	"echofeed/pkg/storage"

	"go.uber.org/zap"
)

const StorageKey = "echofeed:comments"

// CommentsRepo owns the flat comment collection. Threading is reconstructed
// on read, the stored records only carry parent ids.
type CommentsRepo struct {
	mu      *sync.Mutex
	data    []*Comment
	kv      storage.KV
	latency time.Duration
	logger  *zap.SugaredLogger
}

func NewCommentsRepo(kv storage.KV, logger *zap.SugaredLogger, latency time.Duration) *CommentsRepo {
	repo := &CommentsRepo{
		mu:      &sync.Mutex{},
		kv:      kv,
		latency: latency,
		logger:  logger,
	}
	repo.data = repo.load()
	return repo
}

func (repo *CommentsRepo) load() []*Comment {
	raw, err := repo.kv.Get(context.Background(), StorageKey)
	if err == storage.ErrNoRecord {
		return seedComments()
	}
	if err != nil {
		repo.logger.Errorf("comments: loading stored collection: %v", err)
		return seedComments()
	}

	var stored []*Comment
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		repo.logger.Errorf("comments: parsing stored collection: %v", err)
		return seedComments()
	}

	return stored
}

// persist must be called with the mutex held.
func (repo *CommentsRepo) persist() {
	raw, err := json.Marshal(repo.data)
	if err != nil {
		repo.logger.Errorf("comments: serializing collection: %v", err)
		return
	}

	if err := repo.kv.Set(context.Background(), StorageKey, string(raw)); err != nil {
		repo.logger.Errorf("comments: persisting collection: %v", err)
	}
}

func (repo *CommentsRepo) wait() {
	if repo.latency > 0 {
		time.Sleep(repo.latency)
	}
}

// GetByPostID returns the post's comments as a reply tree, oldest first at
// every level.
func (repo *CommentsRepo) GetByPostID(ctx context.Context, postID uint64) ([]*CommentNode, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	flat := make([]*Comment, 0, 10)
	for _, c := range repo.data {
		if c.PostID == postID {
			flat = append(flat, c)
		}
	}

	sort.SliceStable(flat, func(i, j int) bool { return flat[i].Timestamp < flat[j].Timestamp })

	return buildTree(flat), nil
}

// buildTree reorganizes a time-ordered flat list into a reply tree. A
// comment whose parent id is not present in the list (parent deleted, or on
// another post) is an orphan and is dropped from the result, never an error.
func buildTree(flat []*Comment) []*CommentNode {
	nodes := make(map[uint64]*CommentNode, len(flat))
	for _, c := range flat {
		nodes[c.ID] = &CommentNode{Comment: *c.Clone(), Replies: make([]*CommentNode, 0, 2)}
	}

	top := make([]*CommentNode, 0, len(flat))
	for _, c := range flat {
		node := nodes[c.ID]
		if c.ParentID == nil {
			top = append(top, node)
			continue
		}

		parent, ok := nodes[*c.ParentID]
		if !ok {
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}

	return top
}

func (repo *CommentsRepo) GetByID(ctx context.Context, id uint64) (*Comment, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, c := range repo.data {
		if c.ID == id {
			return c.Clone(), nil
		}
	}

	return nil, errs.ErrNotFound
}

func (repo *CommentsRepo) Add(ctx context.Context, postID uint64, parentID *uint64, author, content string) (*Comment, error) {
	repo.wait()

	cv := errs.NewValidator("content", &content)
	av := errs.NewValidator("author", &author)
	if err := errs.Merge(cv.NotBlank(), cv.MaxLength(MaxContentLength), av.NotBlank(), validatePostID(postID)); err != nil {
		return nil, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := time.Now()
	comment := &Comment{
		ID:        repo.nextID(),
		PostID:    postID,
		ParentID:  parentID,
		Author:    author,
		Content:   strings.TrimSpace(content),
		Timestamp: now.UnixNano() / int64(time.Millisecond),
		CreatedAt: now.UTC().Format(time.RFC3339),
	}

	repo.data = append(repo.data, comment)
	repo.persist()

	return comment.Clone(), nil
}

func (repo *CommentsRepo) Update(ctx context.Context, id uint64, upd *CommentUpdate) (*Comment, error) {
	repo.wait()

	if upd.Content != nil {
		v := errs.NewValidator("content", upd.Content)
		if err := errs.Merge(v.MaxLength(MaxContentLength)); err != nil {
			return nil, err
		}
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, c := range repo.data {
		if c.ID != id {
			continue
		}

		if upd.Content != nil {
			c.Content = *upd.Content
		}

		repo.persist()
		return c.Clone(), nil
	}

	return nil, errs.ErrNotFound
}

// Delete removes the comment and its whole reply subtree, so the stored set
// stays closed under parent references and later tree builds see no strays.
func (repo *CommentsRepo) Delete(ctx context.Context, id uint64) (*Comment, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	var removed *Comment
	for _, c := range repo.data {
		if c.ID == id {
			removed = c
			break
		}
	}

	if removed == nil {
		return nil, errs.ErrNotFound
	}

	doomed := map[uint64]bool{id: true}
	for queue := []uint64{id}; len(queue) > 0; {
		parent := queue[0]
		queue = queue[1:]
		for _, c := range repo.data {
			if c.ParentID != nil && *c.ParentID == parent && !doomed[c.ID] {
				doomed[c.ID] = true
				queue = append(queue, c.ID)
			}
		}
	}

	kept := make([]*Comment, 0, len(repo.data))
	for _, c := range repo.data {
		if !doomed[c.ID] {
			kept = append(kept, c)
		}
	}

	repo.data = kept
	repo.persist()

	return removed.Clone(), nil
}

// nextID must be called with the mutex held.
func (repo *CommentsRepo) nextID() uint64 {
	var max uint64
	for _, c := range repo.data {
		if c.ID > max {
			max = c.ID
		}
	}

	return max + 1
}

func validatePostID(postID uint64) *errs.ValidationError {
	if postID == 0 {
		return &errs.ValidationError{Field: "postId", Msg: "is required"}
	}

	return nil
}
