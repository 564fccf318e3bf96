package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"echofeed/pkg/notifications"
)

func TestNotificationsLifecycle(t *testing.T) {
	e := newEnv(t)

	body, _ := json.Marshal(&CreateNotificationReq{
		Type:         notifications.TypeFollow,
		Message:      "carol_williams started following you",
		FromUsername: "carol_williams",
	})
	w := httptest.NewRecorder()
	e.notificationHandler.Create(w, httptest.NewRequest(http.MethodPost, "/api/notifications", bytes.NewReader(body)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected %v but was %v: %s", http.StatusCreated, w.Code, w.Body.String())
	}

	var created notifications.Notification
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.IsRead {
		t.Errorf("expected the new notification unread")
	}

	w = httptest.NewRecorder()
	e.notificationHandler.UnreadCount(w, httptest.NewRequest(http.MethodGet, "/api/notifications/unread_count", nil))
	var count UnreadCountResponse
	if err := json.Unmarshal(w.Body.Bytes(), &count); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count.Count != 1 {
		t.Errorf("expected 1 unread but was %v", count.Count)
	}

	idStr := strconv.FormatUint(created.ID, 10)
	r := withVars(httptest.NewRequest(http.MethodPost, "/api/notification/"+idStr+"/read", nil),
		map[string]string{"id": idStr})
	w = httptest.NewRecorder()
	e.notificationHandler.MarkAsRead(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected %v but was %v", http.StatusOK, w.Code)
	}

	w = httptest.NewRecorder()
	e.notificationHandler.UnreadCount(w, httptest.NewRequest(http.MethodGet, "/api/notifications/unread_count", nil))
	json.Unmarshal(w.Body.Bytes(), &count)
	if count.Count != 0 {
		t.Errorf("expected 0 unread but was %v", count.Count)
	}
}

func TestMarkAsReadNotFound(t *testing.T) {
	e := newEnv(t)

	r := withVars(httptest.NewRequest(http.MethodPost, "/api/notification/404/read", nil),
		map[string]string{"id": "404"})
	w := httptest.NewRecorder()
	e.notificationHandler.MarkAsRead(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected %v but was %v", http.StatusNotFound, w.Code)
	}
}

func TestMarkAllAsRead(t *testing.T) {
	e := newEnv(t)

	w := httptest.NewRecorder()
	e.notificationHandler.MarkAllAsRead(w, httptest.NewRequest(http.MethodPost, "/api/notifications/read_all", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected %v but was %v", http.StatusOK, w.Code)
	}
}
