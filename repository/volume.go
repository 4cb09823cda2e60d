package repository

import (
	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
)

// VolumeRepository 工作流每日量仓库接口，键为 (workflow_type, date, analyst-or-null)。
//
// 同一任务会两次累加同一键：创建时按 target_qty（收件量），完成时按
// achieved_qty（产出量），两者叠加是有意为之的口径。
type VolumeRepository interface {
	// Increment 累加 qty，行不存在时惰性创建
	Increment(workflowType constant.WorkflowType, date string, analystID *string, qty int) error
	// Decrement 扣减 qty，下限截断为 0
	Decrement(workflowType constant.WorkflowType, date string, analystID *string, qty int) error
	// Get 只读查询，行不存在返回零值记录，不建行
	Get(workflowType constant.WorkflowType, date string, analystID *string) (*entity.WorkflowDailyVolume, error)
	// Set 手工登记，直接覆盖 quantity（工作流模块的人工补录入口）
	Set(workflowType constant.WorkflowType, date string, analystID *string, qty int) (*entity.WorkflowDailyVolume, error)
	// List 按条件列出每日量
	List(condition *model.VolumeListCondition) ([]*entity.WorkflowDailyVolume, error)
}
