package repository

import (
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
)

// WorkflowConfigRepository 工作流配置仓库接口
type WorkflowConfigRepository interface {
	// Insert 插入工作流配置，回填自增 id
	Insert(config *entity.WorkflowConfig) error
	// Get 获取单个配置，不存在返回 nil
	Get(configID int64) (*entity.WorkflowConfig, error)
	// GetByName 按名称获取配置，不存在返回 nil
	GetByName(name string) (*entity.WorkflowConfig, error)
	// List 列出配置
	List(pager *model.Pager) ([]*entity.WorkflowConfig, error)
	// Update 按条件更新，nil 字段不动
	Update(configID int64, req *model.UpdateWorkflowCondition) error
	// Delete 删除配置
	Delete(configID int64) error
}
