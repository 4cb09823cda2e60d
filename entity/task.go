package entity

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 任务表 ==========

const (
	TableNameTask = "tasks"

	TaskFieldID                 = "task_id"
	TaskFieldTaskType           = "task_type"
	TaskFieldCompanyName        = "company_name"
	TaskFieldDocumentType       = "document_type"
	TaskFieldPriority           = "priority"
	TaskFieldStatus             = "status"
	TaskFieldAssignedUserID     = "assigned_user_id"
	TaskFieldAssignedAt         = "assigned_at"
	TaskFieldCreatedAt          = "created_at"
	TaskFieldUpdatedAt          = "updated_at"
	TaskFieldDescription        = "description"
	TaskFieldNotes              = "notes"
	TaskFieldSource             = "source"
	TaskFieldSlaHours           = "sla_hours"
	TaskFieldDueDate            = "due_date"
	TaskFieldTargetQty          = "target_qty"
	TaskFieldAchievedQty        = "achieved_qty"
	TaskFieldRating             = "rating"
	TaskFieldRemarks            = "remarks"
	TaskFieldPickedAt           = "picked_at"
	TaskFieldCompletedAt        = "completed_at"
	TaskFieldWorkflowConfigID   = "workflow_config_id"
	TaskFieldCustomWorkflowName = "custom_workflow_name"
)

// Task 任务数据库实体
//
// 衍生的聚合计数表（user_performance / workflow_daily_volumes）没有独立的
// 事件日志，删除任务时只能依据这里的 assigned_at / picked_at / completed_at
// 等字段反推曾经应用过的计数，字段一旦被多次覆盖，反推即失真。
type Task struct {
	ID                 int64                 `xorm:"pk autoincr 'task_id'" json:"task_id"`
	TaskType           constant.TaskType     `xorm:"varchar(32) 'task_type'" json:"task_type"`
	CompanyName        string                `xorm:"varchar(500) 'company_name'" json:"company_name"`
	DocumentType       string                `xorm:"varchar(100) 'document_type'" json:"document_type"`
	Priority           constant.TaskPriority `xorm:"varchar(16) 'priority'" json:"priority"`
	Status             constant.TaskStatus   `xorm:"varchar(32) index 'status'" json:"status"`
	AssignedUserID     *string               `xorm:"varchar(64) index 'assigned_user_id'" json:"assigned_user_id"`
	AssignedAt         *time.Time            `xorm:"'assigned_at'" json:"assigned_at"`
	CreatedAt          time.Time             `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt          time.Time             `xorm:"updated 'updated_at'" json:"updated_at"`
	Description        string                `xorm:"text 'description'" json:"description"`
	Notes              string                `xorm:"text 'notes'" json:"notes"`
	Source             string                `xorm:"varchar(100) 'source'" json:"source"`
	SlaHours           int                   `xorm:"int 'sla_hours'" json:"sla_hours"`
	DueDate            *time.Time            `xorm:"'due_date'" json:"due_date"`
	TargetQty          int                   `xorm:"int 'target_qty'" json:"target_qty"`
	AchievedQty        int                   `xorm:"int 'achieved_qty'" json:"achieved_qty"`
	Rating             *int                  `xorm:"int 'rating'" json:"rating"`
	Remarks            string                `xorm:"text 'remarks'" json:"remarks"`
	PickedAt           *time.Time            `xorm:"'picked_at'" json:"picked_at"`
	CompletedAt        *time.Time            `xorm:"'completed_at'" json:"completed_at"`
	WorkflowConfigID   *int64                `xorm:"'workflow_config_id'" json:"workflow_config_id"`
	CustomWorkflowName string                `xorm:"varchar(255) 'custom_workflow_name'" json:"custom_workflow_name"`
}

func (e *Task) TableName() string {
	return TableNameTask
}
