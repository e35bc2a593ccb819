package handlers

import (
	"net/http"

	request "brcargo_cotacoes/internal/adapter/http/dto/request"
	response "brcargo_cotacoes/internal/adapter/http/dto/response"
	"brcargo_cotacoes/internal/adapter/http/middleware"
	"brcargo_cotacoes/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	usecase usecase.INotificationUseCase
}

func NewNotificationHandler(uc usecase.INotificationUseCase) *NotificationHandler {
	return &NotificationHandler{usecase: uc}
}

// ListNotifications godoc
// @Summary  Caller's inbox, newest first
// @Tags     notifications
// @Produce  json
// @Param    X-User-ID header string true "Caller id"
// @Param    unread_only query bool false "Only unread"
// @Param    limit query int false "Maximum items"
// @Success  200 {object} response.InboxResponse
// @Router   /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var query request.InboxQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeAppError(c, errInvalidQuery)
		return
	}
	inbox, err := h.usecase.List(c.Request.Context(), middleware.Caller(c), query.UnreadOnly, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromInbox(inbox.Items, inbox.Unread))
}

// MarkRead godoc
// @Summary  Mark one notification as read
// @Tags     notifications
// @Param    X-User-ID header string true "Caller id"
// @Param    id path string true "Notification id"
// @Success  204
// @Failure  404 {object} pkg.HTTPError
// @Router   /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.usecase.MarkRead(c.Request.Context(), middleware.Caller(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkAllRead godoc
// @Summary  Mark every notification of the caller as read
// @Tags     notifications
// @Param    X-User-ID header string true "Caller id"
// @Success  200 {object} response.MarkedResponse
// @Router   /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	n, err := h.usecase.MarkAllRead(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.MarkedResponse{Marked: n})
}
