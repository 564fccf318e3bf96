package user

import (
	"context"
	"sync"
	"time"

	"echofeed/pkg/errs"
	"echofeed/pkg/posts"
)

// PostsSource is how the user store reads posts: through the post store's
// public interface only, never a shared reference into its collection.
type PostsSource interface {
	GetAll(ctx context.Context) ([]*posts.Post, error)
}

// UsersRepo owns the user profiles and the follow graph. Both are seeded at
// construction and live in memory only, they are not flushed to the
// substrate (the reference keeps one persisted key per collection for posts
// and comments alone).
type UsersRepo struct {
	mu      *sync.Mutex
	users   []*User
	edges   []FollowEdge
	posts   PostsSource
	latency time.Duration
}

func NewUsersRepo(src PostsSource, latency time.Duration) *UsersRepo {
	return &UsersRepo{
		mu:      &sync.Mutex{},
		users:   seedUsers(),
		edges:   seedFollowEdges(),
		posts:   src,
		latency: latency,
	}
}

func (repo *UsersRepo) wait() {
	if repo.latency > 0 {
		time.Sleep(repo.latency)
	}
}

// findByUsername must be called with the mutex held.
func (repo *UsersRepo) findByUsername(username string) *User {
	for _, u := range repo.users {
		if u.Username == username {
			return u
		}
	}

	return nil
}

// hasEdge must be called with the mutex held.
func (repo *UsersRepo) hasEdge(followerID, followingID uint64) bool {
	for _, e := range repo.edges {
		if e.FollowerID == followerID && e.FollowingID == followingID {
			return true
		}
	}

	return false
}

func (repo *UsersRepo) GetAll(ctx context.Context) ([]*User, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	res := make([]*User, 0, len(repo.users))
	for _, u := range repo.users {
		res = append(res, u.Clone())
	}

	return res, nil
}

func (repo *UsersRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if u := repo.findByUsername(username); u != nil {
		return u.Clone(), nil
	}

	return nil, errs.ErrNotFound
}

func (repo *UsersRepo) GetByID(ctx context.Context, id uint64) (*User, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, u := range repo.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}

	return nil, errs.ErrNotFound
}

// GetUserPosts joins against the post store, filtering the full feed by
// author. An unknown username yields an empty result, not an error.
func (repo *UsersRepo) GetUserPosts(ctx context.Context, username string) ([]*posts.Post, error) {
	repo.wait()

	repo.mu.Lock()
	known := repo.findByUsername(username) != nil
	repo.mu.Unlock()

	if !known {
		return []*posts.Post{}, nil
	}

	all, err := repo.posts.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*posts.Post, 0, 10)
	for _, p := range all {
		if p.Author == username {
			res = append(res, p)
		}
	}

	return res, nil
}

func (repo *UsersRepo) GetUserPostCount(ctx context.Context, username string) (int, error) {
	userPosts, err := repo.GetUserPosts(ctx, username)
	if err != nil {
		return 0, err
	}

	return len(userPosts), nil
}

func (repo *UsersRepo) Follow(ctx context.Context, followerUsername, followingUsername string) error {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	follower := repo.findByUsername(followerUsername)
	following := repo.findByUsername(followingUsername)
	if follower == nil || following == nil {
		return errs.ValidationErrors{{Field: "username", Msg: "is unknown"}}
	}

	if follower.ID == following.ID {
		return errs.ErrConflict
	}

	if repo.hasEdge(follower.ID, following.ID) {
		return errs.ErrConflict
	}

	repo.edges = append(repo.edges, FollowEdge{FollowerID: follower.ID, FollowingID: following.ID})
	return nil
}

func (repo *UsersRepo) Unfollow(ctx context.Context, followerUsername, followingUsername string) error {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	follower := repo.findByUsername(followerUsername)
	following := repo.findByUsername(followingUsername)
	if follower == nil || following == nil {
		return errs.ValidationErrors{{Field: "username", Msg: "is unknown"}}
	}

	for i, e := range repo.edges {
		if e.FollowerID == follower.ID && e.FollowingID == following.ID {
			repo.edges = append(repo.edges[:i], repo.edges[i+1:]...)
			return nil
		}
	}

	return errs.ErrConflict
}

// IsFollowing reports whether a follows b. Unknown usernames read as false,
// not as an error.
func (repo *UsersRepo) IsFollowing(ctx context.Context, followerUsername, followingUsername string) (bool, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	follower := repo.findByUsername(followerUsername)
	following := repo.findByUsername(followingUsername)
	if follower == nil || following == nil {
		return false, nil
	}

	return repo.hasEdge(follower.ID, following.ID), nil
}

// GetFollowerStats counts edges in both directions. Unknown usernames get
// zero counts rather than an error.
func (repo *UsersRepo) GetFollowerStats(ctx context.Context, username string) (*FollowerStats, error) {
	repo.wait()
	repo.mu.Lock()
	defer repo.mu.Unlock()

	stats := &FollowerStats{}
	u := repo.findByUsername(username)
	if u == nil {
		return stats, nil
	}

	for _, e := range repo.edges {
		if e.FollowingID == u.ID {
			stats.Followers++
		}
		if e.FollowerID == u.ID {
			stats.Following++
		}
	}

	return stats, nil
}
