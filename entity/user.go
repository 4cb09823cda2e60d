package entity

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 用户表 ==========

const (
	TableNameUser = "users"

	UserFieldID        = "id"
	UserFieldUsername  = "username"
	UserFieldEmail     = "email"
	UserFieldFullName  = "full_name"
	UserFieldRole      = "role"
	UserFieldIsActive  = "is_active"
	UserFieldCreatedAt = "created_at"
	UserFieldUpdatedAt = "updated_at"
	UserFieldLastLogin = "last_login"
)

// User 用户数据库实体
type User struct {
	ID        string            `xorm:"pk varchar(64) 'id'" json:"id"`
	Username  string            `xorm:"varchar(50) unique 'username'" json:"username"`
	Email     string            `xorm:"varchar(255) unique 'email'" json:"email"`
	FullName  string            `xorm:"varchar(255) 'full_name'" json:"full_name"`
	Role      constant.UserRole `xorm:"varchar(16) 'role'" json:"role"`
	IsActive  bool              `xorm:"bool 'is_active'" json:"is_active"`
	CreatedAt time.Time         `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt time.Time         `xorm:"updated 'updated_at'" json:"updated_at"`
	LastLogin *time.Time        `xorm:"'last_login'" json:"last_login"`
}

func (e *User) TableName() string {
	return TableNameUser
}
