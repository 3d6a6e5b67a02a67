package notification

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/wicaksana/hr-workflow/internal/account"
	"github.com/wicaksana/hr-workflow/internal/auth"
	"github.com/wicaksana/hr-workflow/internal/transport"
)

type ServiceAPI interface {
	Inbox(userID account.ID, limit, offset int) ([]*Notification, error)
	MarkRead(id int64, userID account.ID) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(nil),
		Service:     service,
	}
}

// GetInbox lists the authenticated account's notifications, newest first.
func (h *Handler) GetInbox(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	notifications, err := h.Service.Inbox(actor.AccountID, limit, offset)
	if err != nil {
		h.Logger.Error("GetInbox: service error", "error", err, "account_id", actor.AccountID)
		h.WriteError(w, http.StatusInternalServerError, "failed to get notifications")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"limit":         limit,
		"offset":        offset,
	})
}

// MarkRead flips the read flag on one of the caller's notifications.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid notification ID")
		return
	}

	if err := h.Service.MarkRead(id, actor.AccountID); err != nil {
		h.Logger.Error("MarkRead: service error", "error", err, "notification_id", id)
		h.WriteError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
