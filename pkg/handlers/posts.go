package handlers

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"echofeed/pkg/comments"
	"echofeed/pkg/posts"

	"go.uber.org/zap"
)

type PostsRepo interface {
	GetAll(ctx context.Context) ([]*posts.Post, error)
	GetByID(ctx context.Context, id uint64) (*posts.Post, error)
	Add(ctx context.Context, author, content string, images []posts.Image) (*posts.Post, error)
	Update(ctx context.Context, id uint64, upd *posts.PostUpdate) (*posts.Post, error)
	Delete(ctx context.Context, id uint64) (*posts.Post, error)
	Like(ctx context.Context, id uint64) (*posts.Post, error)
	Unlike(ctx context.Context, id uint64) (*posts.Post, error)
}

type PostHandler struct {
	PostsRepo    PostsRepo
	CommentsRepo CommentsRepo
	Logger       *zap.SugaredLogger
}

// PostResponse is a post joined with its reply tree.
type PostResponse struct {
	*posts.Post
	Comments []*comments.CommentNode `json:"comments"`
}

type CreatePostReq struct {
	Author  string        `json:"author"`
	Content string        `json:"content"`
	Images  []posts.Image `json:"images"`
}

func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	feed, err := h.PostsRepo.GetAll(r.Context())
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, feed, http.StatusOK)
}

func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.PostsRepo.GetByID(r.Context(), id)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	tree, err := h.CommentsRepo.GetByPostID(r.Context(), id)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, &PostResponse{Post: post, Comments: tree}, http.StatusOK)
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var req CreatePostReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	post, err := h.PostsRepo.Add(r.Context(), req.Author, req.Content, req.Images)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, post, http.StatusCreated)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var upd posts.PostUpdate
	err = json.Unmarshal(body, &upd)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	post, err := h.PostsRepo.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, post, http.StatusOK)
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := h.PostsRepo.Delete(r.Context(), id)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, post, http.StatusOK)
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.PostsRepo.Like)
}

func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.PostsRepo.Unlike)
}

func (h *PostHandler) toggleLike(w http.ResponseWriter, r *http.Request,
	toggle func(context.Context, uint64) (*posts.Post, error)) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	post, err := toggle(r.Context(), id)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, post, http.StatusOK)
}
