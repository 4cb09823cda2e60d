package repository

import (
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
)

// UserRepository 用户仓库接口
type UserRepository interface {
	// Insert 插入用户
	Insert(user *entity.User) error
	// Get 获取单个用户，不存在返回 nil
	Get(userID string) (*entity.User, error)
	// GetByEmail 按邮箱获取用户，不存在返回 nil
	GetByEmail(email string) (*entity.User, error)
	// GetByUsername 按用户名获取用户，不存在返回 nil
	GetByUsername(username string) (*entity.User, error)
	// List 列出用户
	List(pager *model.Pager) ([]*entity.User, error)
	// Update 按条件更新，nil 字段不动
	Update(userID string, req *model.UpdateUserCondition) error
	// Delete 删除用户
	Delete(userID string) error
}
