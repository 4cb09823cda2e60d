package xormimplement

import (
	"fmt"

	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/repository"
	"xorm.io/builder"
)

// ========== NotificationRepository 实现 ==========

type NotificationRepository struct {
	session *Session
}

func NewNotificationRepository(session *Session) repository.NotificationRepository {
	return &NotificationRepository{session: session}
}

func (r *NotificationRepository) Insert(notification *entity.Notification) error {
	if notification == nil {
		return fmt.Errorf("notification cannot be nil")
	}
	if notification.UserID == "" {
		return fmt.Errorf("user_id is required")
	}

	_, err := r.session.Table(entity.TableNameNotification).Insert(notification)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (r *NotificationRepository) ListByUser(userID string, limit int) ([]*entity.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	session := r.session.Table(entity.TableNameNotification).
		Where(builder.Eq{entity.NotificationFieldUserID: userID}).
		Desc(entity.NotificationFieldCreatedAt)
	if limit > 0 {
		session = session.Limit(limit, 0)
	}

	var results []*entity.Notification
	err := session.Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return results, nil
}

func (r *NotificationRepository) MarkRead(notificationID int64, userID string) (bool, error) {
	if notificationID <= 0 {
		return false, fmt.Errorf("notification_id is required")
	}
	if userID == "" {
		return false, fmt.Errorf("user_id is required")
	}

	affected, err := r.session.Table(entity.TableNameNotification).
		Where(builder.Eq{
			entity.NotificationFieldID:     notificationID,
			entity.NotificationFieldUserID: userID,
		}).
		Update(map[string]interface{}{entity.NotificationFieldIsRead: true})
	if err != nil {
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return affected > 0, nil
}

func (r *NotificationRepository) MarkAllRead(userID string) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	_, err := r.session.Table(entity.TableNameNotification).
		Where(builder.Eq{
			entity.NotificationFieldUserID: userID,
			entity.NotificationFieldIsRead: false,
		}).
		Update(map[string]interface{}{entity.NotificationFieldIsRead: true})
	if err != nil {
		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}
