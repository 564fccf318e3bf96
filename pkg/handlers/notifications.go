package handlers

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"

	"echofeed/pkg/notifications"

	"go.uber.org/zap"
)

type NotificationsRepo interface {
	GetAll(ctx context.Context) ([]*notifications.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkAsRead(ctx context.Context, id uint64) (*notifications.Notification, error)
	MarkAllAsRead(ctx context.Context) error
	Add(ctx context.Context, typ, message, fromUsername string, relatedPostID *uint64) (*notifications.Notification, error)
}

type NotificationHandler struct {
	NotificationsRepo NotificationsRepo
	Logger            *zap.SugaredLogger
}

type CreateNotificationReq struct {
	Type          string  `json:"type"`
	Message       string  `json:"message"`
	FromUsername  string  `json:"fromUsername"`
	RelatedPostID *uint64 `json:"relatedPostId"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

func (h *NotificationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	list, err := h.NotificationsRepo.GetAll(r.Context())
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, list, http.StatusOK)
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.NotificationsRepo.UnreadCount(r.Context())
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, &UnreadCountResponse{Count: count}, http.StatusOK)
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	var req CreateNotificationReq
	err = json.Unmarshal(body, &req)
	if err != nil {
		WriteResponse(w, "bad request", http.StatusBadRequest)
		return
	}

	n, err := h.NotificationsRepo.Add(r.Context(), req.Type, req.Message, req.FromUsername, req.RelatedPostID)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, n, http.StatusCreated)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := ParseUintParam(r, "id")
	if err != nil {
		h.Logger.Error(err.Error())
		WriteResponse(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	n, err := h.NotificationsRepo.MarkAsRead(r.Context(), id)
	if err != nil {
		writeError(h.Logger, w, err)
		return
	}

	writeJSON(h.Logger, w, n, http.StatusOK)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.NotificationsRepo.MarkAllAsRead(r.Context()); err != nil {
		writeError(h.Logger, w, err)
		return
	}

	WriteResponse(w, "success", http.StatusOK)
}
