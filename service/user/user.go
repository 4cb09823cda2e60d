package user

import (
	"context"
	"fmt"
	"time"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/pkg/tools"
	"github.com/chelaniparth/arms11/repository/factory"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Service 用户管理服务。用户 id 为服务端生成的 uuid。
type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) (*Service, error) {
	if repositoryFactory == nil {
		return nil, fmt.Errorf("repository factory is required")
	}
	return &Service{repositoryFactory: repositoryFactory}, nil
}

// Create 创建用户，仅 admin 可用。用户名和邮箱全局唯一。
func (s *Service) Create(ctx context.Context, condition *model.CreateUserCondition, actor *entity.User) (*entity.User, *model.Error) {
	if actor == nil || actor.Role != constant.UserRoleAdmin {
		return nil, model.NewError(model.ErrorNoPermission, fmt.Errorf("create user requires admin role"))
	}
	if condition == nil || condition.Username == constant.EmptyString || condition.Email == constant.EmptyString {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("username and email are required"))
	}
	if condition.Role != constant.EmptyString && !condition.Role.IsValid() {
		return nil, model.NewError(model.ErrorInvalidRole, fmt.Errorf("invalid role: %s", condition.Role))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "create user session")

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	existing, err := userRepo.GetByUsername(condition.Username)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if existing != nil {
		return nil, model.NewError(model.ErrorUsernameExists, fmt.Errorf("username %s already exists", condition.Username))
	}

	existing, err = userRepo.GetByEmail(condition.Email)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if existing != nil {
		return nil, model.NewError(model.ErrorEmailExists, fmt.Errorf("email %s already exists", condition.Email))
	}

	newUser := &entity.User{
		ID:       uuid.NewString(),
		Username: condition.Username,
		Email:    condition.Email,
		FullName: condition.FullName,
		Role:     condition.Role,
		IsActive: condition.IsActive,
	}
	if newUser.Role == constant.EmptyString {
		newUser.Role = constant.UserRoleAnalyst
	}

	if err := userRepo.Insert(newUser); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	log.Infof("user created, user_id=%s, username=%s, actor=%s", newUser.ID, newUser.Username, actor.ID)
	return newUser, nil
}

// Get 获取单个用户
func (s *Service) Get(ctx context.Context, userID string) (*entity.User, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "get user session, user_id=%s", userID)

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	result, err := userRepo.Get(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if result == nil {
		return nil, model.NewError(model.ErrorUserNotFound, fmt.Errorf("user %s not found", userID))
	}
	return result, nil
}

// List 列出用户
func (s *Service) List(ctx context.Context, pager *model.Pager) ([]*entity.User, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list users session")

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	results, err := userRepo.List(pager)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return results, nil
}

// Update 更新用户资料。改角色仅 admin 可用，其余字段本人或 admin 可改。
func (s *Service) Update(ctx context.Context, userID string, condition *model.UpdateUserCondition, actor *entity.User) (*entity.User, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if condition == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("update condition is required"))
	}
	if actor.ID != userID && actor.Role != constant.UserRoleAdmin {
		return nil, model.NewError(model.ErrorNoPermission, fmt.Errorf("user %s cannot update user %s", actor.ID, userID))
	}
	if condition.Role != nil {
		if actor.Role != constant.UserRoleAdmin {
			return nil, model.NewError(model.ErrorNoPermission, fmt.Errorf("changing role requires admin role"))
		}
		if !condition.Role.IsValid() {
			return nil, model.NewError(model.ErrorInvalidRole, fmt.Errorf("invalid role: %s", *condition.Role))
		}
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "update user session, user_id=%s", userID)

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	current, err := userRepo.Get(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if current == nil {
		return nil, model.NewError(model.ErrorUserNotFound, fmt.Errorf("user %s not found", userID))
	}

	if condition.Email != nil && *condition.Email != current.Email {
		existing, err := userRepo.GetByEmail(*condition.Email)
		if err != nil {
			return nil, model.NewError(model.ErrorDB, err)
		}
		if existing != nil {
			return nil, model.NewError(model.ErrorEmailExists, fmt.Errorf("email %s already exists", *condition.Email))
		}
	}

	if err := userRepo.Update(userID, condition); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	updated, err := userRepo.Get(userID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return updated, nil
}

// TouchLastLogin 更新用户最近活跃时间，鉴权中间件命中时调用
func (s *Service) TouchLastLogin(ctx context.Context, userID string) *model.Error {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "touch last login session, user_id=%s", userID)

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	now := time.Now()
	if err := userRepo.Update(userID, &model.UpdateUserCondition{LastLogin: &now}); err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	return nil
}

// Delete 删除用户，仅 admin 可用，不允许删除自己
func (s *Service) Delete(ctx context.Context, userID string, actor *entity.User) *model.Error {
	if actor == nil || actor.Role != constant.UserRoleAdmin {
		return model.NewError(model.ErrorNoPermission, fmt.Errorf("delete user requires admin role"))
	}
	if actor.ID == userID {
		return model.NewError(model.ErrorParams, fmt.Errorf("cannot delete yourself"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "delete user session, user_id=%s", userID)

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	current, err := userRepo.Get(userID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if current == nil {
		return model.NewError(model.ErrorUserNotFound, fmt.Errorf("user %s not found", userID))
	}

	if err := userRepo.Delete(userID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}

	log.Infof("user deleted, user_id=%s, actor=%s", userID, actor.ID)
	return nil
}
