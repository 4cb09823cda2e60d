package repository

import (
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
)

// TaskRepository 任务仓库接口
type TaskRepository interface {
	// Insert 插入任务，回填自增 id
	Insert(task *entity.Task) error
	// Get 获取单个任务，不存在返回 nil
	Get(taskID int64) (*entity.Task, error)
	// ListByIDs 按 id 列表获取任务
	ListByIDs(taskIDs []int64) ([]*entity.Task, error)
	// Query 高级查询（支持分页、排序、过滤）
	Query(condition *model.TaskQueryCondition) ([]*entity.Task, int64, error)
	// ListAll 按创建时间倒序获取全部任务（导出用）
	ListAll() ([]*entity.Task, error)
	// Update 按条件更新任务字段，nil 字段不动
	Update(taskID int64, req *model.UpdateTaskCondition) error
	// UpdateColumns 直接按列更新（生命周期流转用）
	UpdateColumns(taskID int64, data map[string]interface{}) error
	// Delete 删除单个任务
	Delete(taskID int64) error
	// DeleteByIDs 批量删除，返回删除行数
	DeleteByIDs(taskIDs []int64) (int64, error)
	// CountActive 统计 Pending + In Progress 任务数
	CountActive() (int64, error)
	// CountByStatus 按状态统计任务数
	CountByStatus() (map[string]int64, error)
}
