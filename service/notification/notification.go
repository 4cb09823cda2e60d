package notification

import (
	"context"
	"fmt"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/pkg/tools"
	"github.com/chelaniparth/arms11/repository/factory"
)

// Service 通知服务，只能操作自己名下的通知
type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) (*Service, error) {
	if repositoryFactory == nil {
		return nil, fmt.Errorf("repository factory is required")
	}
	return &Service{repositoryFactory: repositoryFactory}, nil
}

// List 列出当前用户的通知，按创建时间倒序
func (s *Service) List(ctx context.Context, actor *entity.User, limit int) ([]*entity.Notification, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if limit <= 0 {
		limit = constant.DefaultNotificationLimit
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list notifications session")

	notificationRepo, err := s.repositoryFactory.NewNotificationRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	results, err := notificationRepo.ListByUser(actor.ID, limit)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return results, nil
}

// MarkRead 标记单条通知已读，非本人的通知视同不存在
func (s *Service) MarkRead(ctx context.Context, notificationID int64, actor *entity.User) *model.Error {
	if actor == nil {
		return model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "mark notification read session, notification_id=%d", notificationID)

	notificationRepo, err := s.repositoryFactory.NewNotificationRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	matched, err := notificationRepo.MarkRead(notificationID, actor.ID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if !matched {
		return model.NewError(model.ErrorNotificationNotFound, fmt.Errorf("notification %d not found for user %s", notificationID, actor.ID))
	}
	return nil
}

// MarkAllRead 标记当前用户全部通知已读
func (s *Service) MarkAllRead(ctx context.Context, actor *entity.User) *model.Error {
	if actor == nil {
		return model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "mark all notifications read session")

	notificationRepo, err := s.repositoryFactory.NewNotificationRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	if err := notificationRepo.MarkAllRead(actor.ID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}
