package routes

import (
	"time"

	"boat-rental-server/models"
	"boat-rental-server/storage"
	"boat-rental-server/utils"

	"github.com/kataras/iris/v12"
)

// GetNotifications lists the caller's notifications, newest first.
func GetNotifications(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var notifications []models.Notification
	if err := storage.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(notifications)
}

// MarkNotificationRead flags one of the caller's notifications as read.
func MarkNotificationRead(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	notificationID := ctx.Params().GetUintDefault("id", 0)
	if notificationID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Invalid notification ID.", ctx)
		return
	}

	var notification models.Notification
	if err := storage.DB.Where("id = ? AND user_id = ?", notificationID, userID).
		First(&notification).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	now := time.Now()
	notification.IsRead = true
	notification.ReadAt = &now
	if err := storage.DB.Save(&notification).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&notification)
}
