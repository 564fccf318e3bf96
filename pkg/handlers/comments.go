package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"echofeed/pkg/comments"
	"echofeed/pkg/notifications"

	"go.uber.org/zap"
)

type CommentsRepo interface {
	GetByPostID(ctx context.Context, postID uint64) ([]*comments.CommentNode, error)
	GetByID(ctx context.Context, id uint64) (*comments.Comment, error)
	Add(ctx context.Context, postID uint64, parentID *uint64, author, content string) (*comments.Comment, error)
	Update(ctx context.Context, id uint64, upd *comments.CommentUpdate) (*comments.Comment, error)
	Delete(ctx context.Context, id uint64) (*comments.Comment, error)
}

type CommentHandler struct {
	CommentsRepo      CommentsRepo
	PostsRepo         PostsRepo
	NotificationsRepo NotificationsRepo
	Logger            *zap.SugaredLogger
}

type AddCommentReq struct {
	Author   string  `json:"author"`
	Content  string  `json:"content"`
	ParentID *uint64 `json:"parentId"`
}

func (h *CommentHandler) GetByPostID(w http.ResponseWriter, r *http.Request) {
	postID, err := ParseUintParam(r, "post_id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid post id", http.StatusBadRequest)
		return
	}

	tree, err := h.CommentsRepo.GetByPostID(r.Context(), postID)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, tree, http.StatusOK)
}

func (h *CommentHandler) Add(w http.ResponseWriter, r *http.Request) {
	postID, err := ParseUintParam(r, "post_id")
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

	var req AddCommentReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	post, err := h.PostsRepo.GetByID(r.Context(), postID)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	comment, err := h.CommentsRepo.Add(r.Context(), postID, req.ParentID, req.Author, req.Content)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	if post.Author != comment.Author {
		msg := fmt.Sprintf("%s commented on your post", comment.Author)
		_, nerr := h.NotificationsRepo.Add(r.Context(), notifications.TypeComment, msg, comment.Author, &postID)
		if nerr != nil {
			h.Logger.Errorf("recording comment notification: %v", nerr)
		}
	}

	writeJSON(h.Logger, w, comment, http.StatusCreated)
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var upd comments.CommentUpdate
	err = json.Unmarshal(body, &upd)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentsRepo.Update(r.Context(), id, &upd)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, comment, http.StatusOK)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid comment id", http.StatusBadRequest)
		return
	}

	comment, err := h.CommentsRepo.Delete(r.Context(), id)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, comment, http.StatusOK)
}
