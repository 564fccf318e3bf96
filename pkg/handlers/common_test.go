package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"echofeed/pkg/comments"
	"echofeed/pkg/notifications"
	"echofeed/pkg/posts"
	"echofeed/pkg/storage"
	"echofeed/pkg/user"

	"go.uber.org/zap"
)

type env struct {
	posts         *posts.PostsRepo
	comments      *comments.CommentsRepo
	users         *user.UsersRepo
	notifications *notifications.NotificationsRepo

	postHandler         *PostHandler
	commentHandler      *CommentHandler
	userHandler         *UserHandler
	notificationHandler *NotificationHandler
}

// newEnv wires real stores over an in-memory substrate with zero latency.
// Post, comment and notification collections start empty, user profiles and
// follow edges come from the seed set.
func newEnv(t *testing.T) *env {
	t.Helper()

	kv := storage.NewMemoryKV()
	ctx := context.Background()
	if err := kv.Set(ctx, posts.StorageKey, "[]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := kv.Set(ctx, comments.StorageKey, "[]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger := zap.NewNop().Sugar()

	e := &env{}
	e.posts = posts.NewPostsRepo(kv, logger, 0)
	e.comments = comments.NewCommentsRepo(kv, logger, 0)
	e.users = user.NewUsersRepo(e.posts, 0)
	e.notifications = notifications.NewNotificationsRepo(nil, 0)

	e.postHandler = &PostHandler{PostsRepo: e.posts, CommentsRepo: e.comments, Logger: logger}
	e.commentHandler = &CommentHandler{CommentsRepo: e.comments, PostsRepo: e.posts, NotificationsRepo: e.notifications, Logger: logger}
	e.userHandler = &UserHandler{UsersRepo: e.users, NotificationsRepo: e.notifications, Logger: logger}
	e.notificationHandler = &NotificationHandler{NotificationsRepo: e.notifications, Logger: logger}

	return e
}

func TestWriteResponse(t *testing.T) {
	w := httptest.NewRecorder()
	WriteResponse(w, "test_message", http.StatusOK)

	if w.Code != http.StatusOK {
		t.Errorf("expected %v but was %v", http.StatusOK, w.Code)
	}
}

func TestParseUintParam(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/post/12", nil)
	r = withVars(r, map[string]string{"id": "12"})

	val, err := ParseUintParam(r, "id")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if val != 12 {
		t.Errorf("expected %v but was %v", 12, val)
	}

	r = withVars(httptest.NewRequest(http.MethodGet, "/api/post/abc", nil), map[string]string{"id": "abc"})
	if _, err := ParseUintParam(r, "id"); err == nil {
		t.Errorf("expected error for a non-numeric id but was nil")
	}
}
