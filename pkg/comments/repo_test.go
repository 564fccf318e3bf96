package comments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"echofeed/pkg/errs"
	"echofeed/pkg/storage"

	"go.uber.org/zap"
)

func emptyRepo(t *testing.T) *CommentsRepo {
	t.Helper()
	kv := storage.NewMemoryKV()
	if err := kv.Set(context.Background(), StorageKey, "[]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewCommentsRepo(kv, zap.NewNop().Sugar(), 0)
}

func ptr(id uint64) *uint64 { return &id }

func TestTreeReconstruction(t *testing.T) {
	repo := emptyRepo(t)
	repo.data = []*Comment{
		{ID: 1, PostID: 7, Author: "a", Content: "top", Timestamp: 100},
		{ID: 2, PostID: 7, ParentID: ptr(1), Author: "b", Content: "reply", Timestamp: 200},
		{ID: 3, PostID: 7, ParentID: ptr(2), Author: "c", Content: "nested", Timestamp: 300},
		{ID: 4, PostID: 7, ParentID: ptr(99), Author: "d", Content: "orphan", Timestamp: 400},
	}

	tree, err := repo.GetByPostID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree) != 1 {
		t.Fatalf("expected 1 top-level comment but was %d", len(tree))
	}
	if tree[0].ID != 1 || len(tree[0].Replies) != 1 {
		t.Fatalf("expected id 1 with one reply but was %+v", tree[0])
	}

	reply := tree[0].Replies[0]
	if reply.ID != 2 || len(reply.Replies) != 1 || reply.Replies[0].ID != 3 {
		t.Errorf("expected chain 1 -> 2 -> 3 but was %+v", reply)
	}
	// The orphan (parent 99 absent) is dropped entirely.
}

func TestTreeOrdering(t *testing.T) {
	repo := emptyRepo(t)
	repo.data = []*Comment{
		{ID: 1, PostID: 7, Author: "a", Content: "second", Timestamp: 200},
		{ID: 2, PostID: 7, Author: "b", Content: "first", Timestamp: 100},
		{ID: 3, PostID: 7, ParentID: ptr(2), Author: "c", Content: "late reply", Timestamp: 400},
		{ID: 4, PostID: 7, ParentID: ptr(2), Author: "d", Content: "early reply", Timestamp: 300},
		{ID: 5, PostID: 8, Author: "e", Content: "other post", Timestamp: 50},
	}

	tree, err := repo.GetByPostID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree) != 2 || tree[0].ID != 2 || tree[1].ID != 1 {
		t.Fatalf("expected top level [2 1] but was %+v", tree)
	}

	replies := tree[0].Replies
	if len(replies) != 2 || replies[0].ID != 4 || replies[1].ID != 3 {
		t.Errorf("expected replies [4 3] but was %+v", replies)
	}
}

func TestAddValidation(t *testing.T) {
	repo := emptyRepo(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		postID  uint64
		author  string
		content string
		fail    bool
	}{
		{name: "Valid", postID: 1, author: "alice_johnson", content: "nice"},
		{name: "EmptyContent", postID: 1, author: "alice_johnson", content: "", fail: true},
		{name: "BlankContent", postID: 1, author: "alice_johnson", content: "  ", fail: true},
		{name: "OverLimit", postID: 1, author: "alice_johnson", content: strings.Repeat("a", MaxContentLength+1), fail: true},
		{name: "AtLimit", postID: 1, author: "alice_johnson", content: strings.Repeat("a", MaxContentLength)},
		{name: "NoAuthor", postID: 1, author: "", content: "hi", fail: true},
		{name: "NoPost", postID: 0, author: "alice_johnson", content: "hi", fail: true},
	}

	for _, c := range cases {
		_, err := repo.Add(ctx, c.postID, nil, c.author, c.content)
		if c.fail && !errs.IsValidation(err) {
			t.Errorf("%s: expected validation error but was %v", c.name, err)
		}
		if !c.fail && err != nil {
			t.Errorf("%s: unexpected error: %v", c.name, err)
		}
	}
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	repo := emptyRepo(t)
	ctx := context.Background()

	c1, err := repo.Add(ctx, 1, nil, "alice_johnson", "first")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c2, err := repo.Add(ctx, 1, ptr(c1.ID), "bob_smith", "second")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c1.ID != 1 || c2.ID != 2 {
		t.Errorf("expected ids 1, 2 but was %v, %v", c1.ID, c2.ID)
	}
	if c2.ParentID == nil || *c2.ParentID != c1.ID {
		t.Errorf("expected parent %v but was %v", c1.ID, c2.ParentID)
	}
}

func TestUpdate(t *testing.T) {
	repo := emptyRepo(t)
	ctx := context.Background()

	c, _ := repo.Add(ctx, 1, nil, "alice_johnson", "original")

	edited := "edited"
	got, err := repo.Update(ctx, c.ID, &CommentUpdate{Content: &edited})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != "edited" || got.ID != c.ID || got.PostID != c.PostID {
		t.Errorf("expected content change only but was %+v", got)
	}

	tooLong := strings.Repeat("a", MaxContentLength+1)
	if _, err := repo.Update(ctx, c.ID, &CommentUpdate{Content: &tooLong}); !errs.IsValidation(err) {
		t.Errorf("expected validation error but was %v", err)
	}

	if _, err := repo.Update(ctx, 404, &CommentUpdate{Content: &edited}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected not found but was %v", err)
	}
}

func TestDeleteCascadesSubtree(t *testing.T) {
	repo := emptyRepo(t)
	repo.data = []*Comment{
		{ID: 1, PostID: 7, Author: "a", Content: "root", Timestamp: 100},
		{ID: 2, PostID: 7, ParentID: ptr(1), Author: "b", Content: "child", Timestamp: 200},
		{ID: 3, PostID: 7, ParentID: ptr(2), Author: "c", Content: "grandchild", Timestamp: 300},
		{ID: 4, PostID: 7, Author: "d", Content: "bystander", Timestamp: 400},
	}

	removed, err := repo.Delete(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.ID != 1 {
		t.Errorf("expected %v but was %v", 1, removed.ID)
	}

	tree, err := repo.GetByPostID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree) != 1 || tree[0].ID != 4 {
		t.Errorf("expected only the bystander to survive but was %+v", tree)
	}

	for _, id := range []uint64{1, 2, 3} {
		if _, err := repo.GetByID(context.Background(), id); !errors.Is(err, errs.ErrNotFound) {
			t.Errorf("expected comment %d gone but was %v", id, err)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := emptyRepo(t)

	if _, err := repo.Delete(context.Background(), 404); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected not found but was %v", err)
	}
}

func TestTreeIsACopy(t *testing.T) {
	repo := emptyRepo(t)
	repo.data = []*Comment{
		{ID: 1, PostID: 7, Author: "a", Content: "original", Timestamp: 100},
	}

	tree, _ := repo.GetByPostID(context.Background(), 7)
	tree[0].Content = "mutated by caller"

	stored, err := repo.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Content != "original" {
		t.Errorf("caller mutation leaked into the repo: %v", stored.Content)
	}
}

func TestCollectionSurvivesReload(t *testing.T) {
	kv := storage.NewMemoryKV()
	if err := kv.Set(context.Background(), StorageKey, "[]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo := NewCommentsRepo(kv, zap.NewNop().Sugar(), 0)
	c, err := repo.Add(context.Background(), 1, nil, "alice_johnson", "durable")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded := NewCommentsRepo(kv, zap.NewNop().Sugar(), 0)
	got, err := reloaded.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Content != "durable" || got.PostID != 1 {
		t.Errorf("expected the stored comment back but was %+v", got)
	}
}
