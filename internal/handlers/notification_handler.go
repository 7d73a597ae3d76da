package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agendamento-api/internal/httpresp"
	"github.com/BruksfildServices01/agendamento-api/internal/notification"
)

type NotificationHandler struct {
	store *notification.Store
}

func NewNotificationHandler(store *notification.Store) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// ListForUser: GET /notificacoes/usuario/:usuarioId
func (h *NotificationHandler) ListForUser(c *gin.Context) {
	userID, ok := pathID(c, "usuarioId")
	if !ok || !canManage(c, userID) {
		return
	}

	list, err := h.store.ListForRecipient(c.Request.Context(), userID)
	if err != nil {
		dbError(c, err, "Notificação não encontrada.")
		return
	}

	httpresp.List(c, list)
}

// MarkRead: PATCH /notificacoes/:id/lida
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	n, err := h.store.Get(ctx, id)
	if err != nil {
		dbError(c, err, "Notificação não encontrada.")
		return
	}
	if !canManage(c, n.RecipientID) {
		return
	}

	if err := h.store.MarkRead(ctx, n); err != nil {
		dbError(c, err, "Notificação não encontrada.")
		return
	}

	httpresp.OK(c, n)
}

// MarkAllRead: PATCH /notificacoes/usuario/:usuarioId/lidas
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := pathID(c, "usuarioId")
	if !ok || !canManage(c, userID) {
		return
	}

	updated, err := h.store.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		dbError(c, err, "Notificação não encontrada.")
		return
	}

	httpresp.OK(c, gin.H{"atualizadas": updated})
}
