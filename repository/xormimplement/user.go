package xormimplement

import (
	"fmt"

	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository"
	"xorm.io/builder"
)

// ========== UserRepository 实现 ==========

type UserRepository struct {
	session *Session
}

func NewUserRepository(session *Session) repository.UserRepository {
	return &UserRepository{session: session}
}

func (r *UserRepository) Insert(user *entity.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}
	if user.ID == "" {
		return fmt.Errorf("user id is required")
	}

	_, err := r.session.Table(entity.TableNameUser).Insert(user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) Get(userID string) (*entity.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	result := &entity.User{}
	ok, err := r.session.Table(entity.TableNameUser).
		Where(builder.Eq{entity.UserFieldID: userID}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	result := &entity.User{}
	ok, err := r.session.Table(entity.TableNameUser).
		Where(builder.Eq{entity.UserFieldEmail: email}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *UserRepository) GetByUsername(username string) (*entity.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}

	result := &entity.User{}
	ok, err := r.session.Table(entity.TableNameUser).
		Where(builder.Eq{entity.UserFieldUsername: username}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *UserRepository) List(pager *model.Pager) ([]*entity.User, error) {
	session := r.session.Table(entity.TableNameUser)
	if pager != nil && pager.Limit > 0 {
		session = session.Limit(pager.Limit, pager.Offset)
	}

	var results []*entity.User
	err := session.Asc(entity.UserFieldUsername).Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return results, nil
}

func (r *UserRepository) Update(userID string, req *model.UpdateUserCondition) error {
	if req == nil {
		return fmt.Errorf("update request cannot be nil")
	}
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	updateData := make(map[string]interface{})
	if req.Email != nil {
		updateData[entity.UserFieldEmail] = *req.Email
	}
	if req.FullName != nil {
		updateData[entity.UserFieldFullName] = *req.FullName
	}
	if req.Role != nil {
		updateData[entity.UserFieldRole] = req.Role.String()
	}
	if req.IsActive != nil {
		updateData[entity.UserFieldIsActive] = *req.IsActive
	}
	if req.LastLogin != nil {
		updateData[entity.UserFieldLastLogin] = *req.LastLogin
	}

	if len(updateData) == 0 {
		return nil
	}

	_, err := r.session.Table(entity.TableNameUser).
		Where(builder.Eq{entity.UserFieldID: userID}).
		Update(updateData)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(userID string) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}

	_, err := r.session.Table(entity.TableNameUser).
		Where(builder.Eq{entity.UserFieldID: userID}).
		Delete(&entity.User{})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}
