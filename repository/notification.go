package repository

import (
	"github.com/chelaniparth/arms11/entity"
)

// NotificationRepository 通知仓库接口
type NotificationRepository interface {
	// Insert 插入通知
	Insert(notification *entity.Notification) error
	// ListByUser 按用户倒序列出通知
	ListByUser(userID string, limit int) ([]*entity.Notification, error)
	// MarkRead 标记单条已读，返回是否命中
	MarkRead(notificationID int64, userID string) (bool, error)
	// MarkAllRead 标记全部已读
	MarkAllRead(userID string) error
}
