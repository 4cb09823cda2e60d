package controller

import (
	"net/http"
	"sync"

	"github.com/chelaniparth/arms11/middleware"
	"github.com/chelaniparth/arms11/repository/xormimplement"
	"github.com/chelaniparth/arms11/service/notification"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

var (
	notificationServiceOnce sync.Once
	notificationService     *notification.Service
)

// getNotificationService 获取通知服务单例
func getNotificationService() *notification.Service {
	notificationServiceOnce.Do(func() {
		var err error
		notificationService, err = notification.NewService(xormimplement.GetRepositoryFactoryInstance())
		if err != nil {
			log.Fatalf("Failed to create notification service: %v", err)
		}
	})
	return notificationService
}

// ListNotifications 列出当前用户通知
// @Summary 列出当前用户通知
// @Tags Notification
// @Produce json
// @Param limit query int false "条数上限"
// @Success 200 {array} entity.Notification
// @Router /api/v1/notifications [get]
func ListNotifications(ctx *gin.Context) {
	results, serviceErr := getNotificationService().List(ctx, middleware.CurrentUser(ctx), cast.ToInt(ctx.Query("limit")))
	if serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// MarkNotificationRead 标记通知已读
// @Summary 标记单条通知已读
// @Tags Notification
// @Produce json
// @Param notification_id path int true "通知 id"
// @Success 200 {object} gin.H
// @Router /api/v1/notifications/{notification_id}/read [post]
func MarkNotificationRead(ctx *gin.Context) {
	notificationID, err := cast.ToInt64E(ctx.Param("notification_id"))
	if err != nil || notificationID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification_id"})
		return
	}

	if serviceErr := getNotificationService().MarkRead(ctx, notificationID, middleware.CurrentUser(ctx)); serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead 标记全部通知已读
// @Summary 标记当前用户全部通知已读
// @Tags Notification
// @Produce json
// @Success 200 {object} gin.H
// @Router /api/v1/notifications/read-all [post]
func MarkAllNotificationsRead(ctx *gin.Context) {
	if serviceErr := getNotificationService().MarkAllRead(ctx, middleware.CurrentUser(ctx)); serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}
