package posts

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"echofeed/pkg/errs"
	"echofeed/pkg/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const StorageKey = "echofeed:posts"

// PostsRepo owns the post collection. The collection lives in memory and is
// flushed to the storage substrate as a JSON array after every mutation,
// a failed flush is logged and the mutation still succeeds.
type PostsRepo struct {
	mu      *sync.Mutex
	data    []*Post
	kv      storage.KV
	latency time.Duration
	logger  *zap.SugaredLogger
}

// NewPostsRepo loads the collection from the substrate once, falling back to
// the bundled seed records when nothing was stored yet. latency is slept
// before every operation to emulate a network round-trip, pass 0 in tests.
func NewPostsRepo(kv storage.KV, logger *zap.SugaredLogger, latency time.Duration) *PostsRepo {
	repo := &PostsRepo{
		mu:      &sync.Mutex{},
		kv:      kv,
		latency: latency,
		logger:  logger,
	}
	repo.data = repo.load()
	return repo
}

func (repo *PostsRepo) load() []*Post {
	raw, err := repo.kv.Get(context.Background(), StorageKey)
	if err == storage.ErrNoRecord {
		return seedPosts()
	}
	if err != nil {
		repo.logger.Errorf("posts: loading stored collection: %v", err)
		return seedPosts()
	}

	var stored []*Post
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		repo.logger.Errorf("posts: parsing stored collection: %v", err)
		return seedPosts()
	}

	return stored
}

// persist must be called with the mutex held.
func (repo *PostsRepo) persist() {
	raw, err := json.Marshal(repo.data)
	if err != nil {
		repo.logger.Errorf("posts: serializing collection: %v", err)
		return
	}

	if err := repo.kv.Set(context.Background(), StorageKey, string(raw)); err != nil {
		repo.logger.Errorf("posts: persisting collection: %v", err)
	}
}

func (repo *PostsRepo) wait() {
	if repo.latency > 0 {
		time.Sleep(repo.latency)
	}
}

// GetAll returns the feed: every post, newest first.
func (repo *PostsRepo) GetAll(ctx context.Context) ([]*Post, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	res := make([]*Post, 0, len(repo.data))
	for _, p := range repo.data {
		res = append(res, p.Clone())
	}

	sort.SliceStable(res, func(i, j int) bool { return res[i].Timestamp > res[j].Timestamp })

	return res, nil
}

func (repo *PostsRepo) GetByID(ctx context.Context, id uint64) (*Post, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, p := range repo.data {
		if p.ID == id {
			return p.Clone(), nil
		}
	}

	return nil, errs.ErrNotFound
}

func (repo *PostsRepo) Add(ctx context.Context, author, content string, images []Image) (*Post, error) {
	repo.wait()

	v := errs.NewValidator("content", &content)
	if err := errs.Merge(v.NotBlank(), v.MaxLength(MaxContentLength), validateImages(images)); err != nil {
		return nil, err
	}

	if author == "" {
		author = DefaultAuthor
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	now := time.Now()
	post := &Post{
		ID:        repo.nextID(),
		Author:    author,
		Content:   strings.TrimSpace(content),
		Timestamp: now.UnixNano() / int64(time.Millisecond),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Images:    make([]Image, 0, len(images)),
	}

	for _, img := range images {
		if img.ID == "" {
			img.ID = uuid.New().String()
		}
		post.Images = append(post.Images, img)
	}

	repo.data = append(repo.data, post)
	repo.persist()

	return post.Clone(), nil
}

func (repo *PostsRepo) Update(ctx context.Context, id uint64, upd *PostUpdate) (*Post, error) {
	repo.wait()

	if upd.Content != nil {
		v := errs.NewValidator("content", upd.Content)
		if err := errs.Merge(v.MaxLength(MaxContentLength)); err != nil {
			return nil, err
		}
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, p := range repo.data {
		if p.ID != id {
			continue
		}

		if upd.Author != nil {
			p.Author = *upd.Author
		}
		if upd.Content != nil {
			p.Content = *upd.Content
		}

		repo.persist()
		return p.Clone(), nil
	}

	return nil, errs.ErrNotFound
}

// Delete removes the post and returns it. Comments referencing the post are
// left in place, the comment store drops them from view on its own.
func (repo *PostsRepo) Delete(ctx context.Context, id uint64) (*Post, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for i, p := range repo.data {
		if p.ID == id {
			repo.data = append(repo.data[:i], repo.data[i+1:]...)
			repo.persist()
			return p.Clone(), nil
		}
	}

	return nil, errs.ErrNotFound
}

// Like marks the post liked. Liking an already liked post is a conflict.
func (repo *PostsRepo) Like(ctx context.Context, id uint64) (*Post, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, p := range repo.data {
		if p.ID != id {
			continue
		}

		if p.IsLiked {
			return nil, errs.ErrConflict
		}

		p.IsLiked = true
		p.LikeCount++
		repo.persist()
		return p.Clone(), nil
	}

	return nil, errs.ErrNotFound
}

// Unlike reverses Like. The count never drops below zero.
func (repo *PostsRepo) Unlike(ctx context.Context, id uint64) (*Post, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, p := range repo.data {
		if p.ID != id {
			continue
		}

		if !p.IsLiked {
			return nil, errs.ErrConflict
		}

		p.IsLiked = false
		if p.LikeCount > 0 {
			p.LikeCount--
		}
		repo.persist()
		return p.Clone(), nil
	}

	return nil, errs.ErrNotFound
}

// nextID must be called with the mutex held. Ids are one greater than the
// current maximum, so deleting the newest post frees its id for reuse.
func (repo *PostsRepo) nextID() uint64 {
	var max uint64
	for _, p := range repo.data {
		if p.ID > max {
			max = p.ID
		}
	}

	return max + 1
}

func validateImages(images []Image) *errs.ValidationError {
	if len(images) > MaxImages {
		return &errs.ValidationError{Field: "images", Msg: "must contain at most 4 images"}
	}

	return nil
}
