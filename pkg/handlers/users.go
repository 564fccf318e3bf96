package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"echofeed/pkg/notifications"
	"echofeed/pkg/posts"
	"echofeed/pkg/user"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type UsersRepo interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetUserPosts(ctx context.Context, username string) ([]*posts.Post, error)
	GetUserPostCount(ctx context.Context, username string) (int, error)
	Follow(ctx context.Context, followerUsername, followingUsername string) error
	Unfollow(ctx context.Context, followerUsername, followingUsername string) error
	IsFollowing(ctx context.Context, followerUsername, followingUsername string) (bool, error)
	GetFollowerStats(ctx context.Context, username string) (*user.FollowerStats, error)
}

type UserHandler struct {
	UsersRepo         UsersRepo
	NotificationsRepo NotificationsRepo
	Logger            *zap.SugaredLogger
}

// ProfileResponse is the profile-page aggregate: the user record joined
// with the follow graph counts and the post count.
type ProfileResponse struct {
	*user.User
	Followers int `json:"followers"`
	Following int `json:"following"`
	PostCount int `json:"postCount"`
}

type FollowReq struct {
	Follower string `json:"follower"`
}

type IsFollowingResponse struct {
	IsFollowing bool `json:"isFollowing"`
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	u, err := h.UsersRepo.GetByUsername(r.Context(), username)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	stats, err := h.UsersRepo.GetFollowerStats(r.Context(), username)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	count, err := h.UsersRepo.GetUserPostCount(r.Context(), username)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	resp := &ProfileResponse{
		User:      u,
		Followers: stats.Followers,
		Following: stats.Following,
		PostCount: count,
	}

	writeJSON(h.Logger, w, resp, http.StatusOK)
}

func (h *UserHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	userPosts, err := h.UsersRepo.GetUserPosts(r.Context(), username)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, userPosts, http.StatusOK)
}

func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	req, ok := h.readFollowReq(w, r)
	if !ok {
		return
	}

	if err := h.UsersRepo.Follow(r.Context(), req.Follower, username); err != nil {
		writeError(h.Logger, w, err)
		return
	}

	msg := fmt.Sprintf("%s started following you", req.Follower)
	_, nerr := h.NotificationsRepo.Add(r.Context(), notifications.TypeFollow, msg, req.Follower, nil)
	if nerr != nil {
		h.Logger.Errorf("recording follow notification: %v", nerr)
	}

	WriteResponse(w, "success", http.StatusOK)
}

func (h *UserHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	req, ok := h.readFollowReq(w, r)
	if !ok {
		return
	}

	if err := h.UsersRepo.Unfollow(r.Context(), req.Follower, username); err != nil {
		writeError(h.Logger, w, err)
		return
	}

	WriteResponse(w, "success", http.StatusOK)
}

func (h *UserHandler) IsFollowing(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	following, err := h.UsersRepo.IsFollowing(r.Context(), vars["username"], vars["target"])
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, &IsFollowingResponse{IsFollowing: following}, http.StatusOK)
}

func (h *UserHandler) readFollowReq(w http.ResponseWriter, r *http.Request) (*FollowReq, bool) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return nil, false
	}

	var req FollowReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}
