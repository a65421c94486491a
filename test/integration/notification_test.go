package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"rtw_backend/internal/models"
	"rtw_backend/internal/repositories"
	"rtw_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationListBody struct {
	Notifications []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		Title  string `json:"title"`
		IsRead bool   `json:"is_read"`
	} `json:"notifications"`
	UnreadCount int64 `json:"unread_count"`
	Meta        struct {
		Total int64 `json:"total"`
	} `json:"meta"`
}

func TestListNotifications_ScopedToRecipient(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)
	_, other := helpers.CreateAndLoginCandidate(t, ts)

	mine := helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeInterviewInvitation, "You have been invited")
	helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, other.ID,
		repositories.NotificationTypeInterviewInvitation, "Someone else's invite")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed notificationListBody
	decode(t, body, &parsed)
	require.Len(t, parsed.Notifications, 1, "only the caller's notifications may appear")
	assert.Equal(t, mine.ID, parsed.Notifications[0].ID)
	assert.False(t, parsed.Notifications[0].IsRead)
	assert.Equal(t, int64(1), parsed.UnreadCount)
}

func TestListNotifications_UnreadFilter(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)

	read := helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeWelcome, "Welcome")
	require.NoError(t, ts.DB.Model(&models.Notification{}).
		Where("id = ?", read.ID).Update("is_read", true).Error)
	unread := helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeInterviewInvitation, "New invitation")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications?unread_only=true", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed notificationListBody
	decode(t, body, &parsed)
	require.Len(t, parsed.Notifications, 1)
	assert.Equal(t, unread.ID, parsed.Notifications[0].ID)
}

func TestMarkNotificationRead(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)
	notification := helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeWelcome, "Welcome")

	path := fmt.Sprintf("/api/v1/notifications/%s/read", notification.ID)
	res, body := ts.SendRequest(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var updated models.Notification
	require.NoError(t, ts.DB.First(&updated, "id = ?", notification.ID).Error)
	assert.True(t, updated.IsRead)
	assert.NotNil(t, updated.ReadAt)

	// Marking an already-read notification is a no-op, not an error.
	res, body = ts.SendRequest(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)
}

func TestMarkNotificationRead_ForeignNotification(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, _ := helpers.CreateAndLoginCandidate(t, ts)
	_, other := helpers.CreateAndLoginCandidate(t, ts)
	foreign := helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, other.ID,
		repositories.NotificationTypeWelcome, "Not yours")

	res, body := ts.SendRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/notifications/%s/read", foreign.ID), token, nil)
	require.Equal(t, http.StatusNotFound, res.StatusCode, "unexpected response: %s", body)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	// The foreign row stays untouched.
	var check models.Notification
	require.NoError(t, ts.DB.First(&check, "id = ?", foreign.ID).Error)
	assert.False(t, check.IsRead)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)
	helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeWelcome, "One")
	helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeInterviewInvitation, "Two")

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		Success bool  `json:"success"`
		Marked  int64 `json:"marked"`
	}
	decode(t, body, &parsed)
	assert.True(t, parsed.Success)
	assert.Equal(t, int64(2), parsed.Marked)

	// Second call has nothing left to mark.
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/notifications/read-all", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)
	decode(t, body, &parsed)
	assert.Zero(t, parsed.Marked)
}

func TestUnreadCount(t *testing.T) {
	t.Parallel()
	ts := GetTestEnv(t).NewTestServer(t)

	token, candidate := helpers.CreateAndLoginCandidate(t, ts)
	helpers.CreateNotification(t, ts.DB, models.AccountKindCandidate, candidate.ID,
		repositories.NotificationTypeWelcome, "Welcome")

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected response: %s", body)

	var parsed struct {
		UnreadCount int64 `json:"unread_count"`
	}
	decode(t, body, &parsed)
	assert.Equal(t, int64(1), parsed.UnreadCount)
}
