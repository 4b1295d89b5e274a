package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-projects-nosql/internal/application/notification"
	"github.com/go-projects-nosql/internal/domain"
)

// NotificationHandler handles the deadline notification feed.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// DeadlineCheckResult is the manual trigger's response body.
type DeadlineCheckResult struct {
	Message              string `json:"message"`
	PassedTasksFound     int    `json:"passedTasksFound"`
	NotificationsCreated int    `json:"notificationsCreated"`
}

type markAllResponse struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	ns, err := h.svc.List(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	if ns == nil {
		ns = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, ns)
}

func (h *NotificationHandler) Deadlines(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	tasks, err := h.svc.Deadlines(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	n, err := h.svc.MarkAllRead(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, markAllResponse{Message: "All notifications marked as read", Updated: n})
}

func (h *NotificationHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	n, err := h.svc.Count(r.Context(), userID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CountEnvelope{Count: n})
}

// TriggerDeadlineCheck runs the overdue pass synchronously. It answers 409
// while a scheduled check is running.
func (h *NotificationHandler) TriggerDeadlineCheck(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	res, err := h.svc.TriggerPassedCheck(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeadlineCheckResult{
		Message:              "Passed deadline check completed",
		PassedTasksFound:     res.Found,
		NotificationsCreated: res.Created,
	})
}
