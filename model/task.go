package model

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 任务创建/更新条件 ==========

// CreateTaskCondition 创建任务条件
type CreateTaskCondition struct {
	TaskType           constant.TaskType     `json:"task_type" binding:"required"`
	CompanyName        string                `json:"company_name" binding:"required"`
	DocumentType       string                `json:"document_type" binding:"required"`
	Priority           constant.TaskPriority `json:"priority"`
	Status             constant.TaskStatus   `json:"status"`
	Description        string                `json:"description"`
	Notes              string                `json:"notes"`
	Source             string                `json:"source"`
	SlaHours           int                   `json:"sla_hours"`
	DueDate            *time.Time            `json:"due_date"`
	TargetQty          int                   `json:"target_qty"`
	AchievedQty        int                   `json:"achieved_qty"`
	AssignedUserID     *string               `json:"assigned_user_id"`
	WorkflowConfigID   *int64                `json:"workflow_config_id"`
	CustomWorkflowName string                `json:"custom_workflow_name"`
}

// UpdateTaskCondition 更新任务条件，nil 字段不参与更新
type UpdateTaskCondition struct {
	TaskType           *constant.TaskType     `json:"task_type"`
	CompanyName        *string                `json:"company_name"`
	DocumentType       *string                `json:"document_type"`
	Priority           *constant.TaskPriority `json:"priority"`
	Status             *constant.TaskStatus   `json:"status"`
	Description        *string                `json:"description"`
	Notes              *string                `json:"notes"`
	SlaHours           *int                   `json:"sla_hours"`
	DueDate            *time.Time             `json:"due_date"`
	TargetQty          *int                   `json:"target_qty"`
	AchievedQty        *int                   `json:"achieved_qty"`
	Rating             *int                   `json:"rating"`
	Remarks            *string                `json:"remarks"`
	AssignedUserID     *string                `json:"assigned_user_id"`
	WorkflowConfigID   *int64                 `json:"workflow_config_id"`
	CustomWorkflowName *string                `json:"custom_workflow_name"`
}

// CompleteTaskCondition 完成任务条件
type CompleteTaskCondition struct {
	AchievedQty int    `json:"achieved_qty"`
	Remarks     string `json:"remarks"`
}

// ========== 任务查询条件 ==========

// TaskQueryCondition 任务查询条件（支持分页、排序、过滤）
type TaskQueryCondition struct {
	Status           *constant.TaskStatus `json:"status"`
	AssignedUserID   *string              `json:"assigned_user_id"`
	WorkflowConfigID *int64               `json:"workflow_config_id"`
	Keyword          *string              `json:"keyword"`
	StartDate        *time.Time           `json:"start_date"`
	EndDate          *time.Time           `json:"end_date"`
	*Pager
	*Order
}

func (c *TaskQueryCondition) GetPager() *Pager {
	return c.Pager
}

func (c *TaskQueryCondition) GetOrder() *Order {
	return c.Order
}

// ========== 批量操作 ==========

// BulkAssignCondition 批量分配条件
type BulkAssignCondition struct {
	TaskIDs []int64 `json:"task_ids" binding:"required"`
	UserID  string  `json:"user_id" binding:"required"`
}

// BulkDeleteCondition 批量删除条件
type BulkDeleteCondition struct {
	TaskIDs []int64 `json:"task_ids" binding:"required"`
}

// ========== 批量导入 ==========

// ImportRow 导入的一行数据，按列名取值
type ImportRow map[string]string

// ImportReport 批量导入结果报告，校验失败的行记入 Errors，整批继续
type ImportReport struct {
	TotalProcessed int      `json:"total_processed"`
	SuccessCount   int      `json:"success_count"`
	FailedCount    int      `json:"failed_count"`
	Errors         []string `json:"errors"`
}

// ========== 导出 ==========

// TaskExportRow 任务导出行
type TaskExportRow struct {
	TaskID       int64  `json:"task_id"`
	CompanyName  string `json:"company_name"`
	TaskType     string `json:"task_type"`
	DocumentType string `json:"document_type"`
	Status       string `json:"status"`
	Priority     string `json:"priority"`
	TargetQty    int    `json:"target_qty"`
	AchievedQty  int    `json:"achieved_qty"`
	CreatedAt    string `json:"created_at"`
	AssignedTo   string `json:"assigned_to"`
}
