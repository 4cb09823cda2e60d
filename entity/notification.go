package entity

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 通知表 ==========

const (
	TableNameNotification = "notifications"

	NotificationFieldID        = "notification_id"
	NotificationFieldUserID    = "user_id"
	NotificationFieldTitle     = "title"
	NotificationFieldMessage   = "message"
	NotificationFieldType      = "type"
	NotificationFieldIsRead    = "is_read"
	NotificationFieldLink      = "link"
	NotificationFieldCreatedAt = "created_at"
)

// Notification 通知数据库实体
type Notification struct {
	ID        int64                     `xorm:"pk autoincr 'notification_id'" json:"notification_id"`
	UserID    string                    `xorm:"varchar(64) index 'user_id'" json:"user_id"`
	Title     string                    `xorm:"varchar(255) 'title'" json:"title"`
	Message   string                    `xorm:"text 'message'" json:"message"`
	Type      constant.NotificationType `xorm:"varchar(16) 'type'" json:"type"`
	IsRead    bool                      `xorm:"bool 'is_read'" json:"is_read"`
	Link      string                    `xorm:"varchar(500) 'link'" json:"link"`
	CreatedAt time.Time                 `xorm:"created 'created_at'" json:"created_at"`
}

func (e *Notification) TableName() string {
	return TableNameNotification
}
