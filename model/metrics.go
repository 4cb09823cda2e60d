package model

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 仪表盘统计 ==========

// MyStats 当前用户当日绩效
type MyStats struct {
	TasksAssignedToday  int `json:"tasks_assigned_today"`
	TasksCompletedToday int `json:"tasks_completed_today"`
	TasksInProgress     int `json:"tasks_in_progress"`
}

// TopPerformer 当日完成数最多的用户
type TopPerformer struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
}

// SystemStats 系统整体统计
type SystemStats struct {
	TotalActiveTasks int64            `json:"total_active_tasks"`
	StatusBreakdown  map[string]int64 `json:"status_breakdown"`
	TopPerformers    []*TopPerformer  `json:"top_performers"`
}

// DashboardStats 仪表盘统计响应
type DashboardStats struct {
	MyStats     *MyStats     `json:"my_stats"`
	SystemStats *SystemStats `json:"system_stats"`
}

// ========== 工作流量查询 ==========

// VolumeListCondition 每日量列表查询条件
type VolumeListCondition struct {
	Date         *string                `json:"date"`
	WorkflowType *constant.WorkflowType `json:"workflow_type"`
	AnalystID    *string                `json:"analyst_id"`
	Limit        int                    `json:"limit"`
}

// RecordVolumeCondition 手工登记每日量条件，直接覆盖 quantity
type RecordVolumeCondition struct {
	WorkflowType constant.WorkflowType `json:"workflow_type" binding:"required"`
	Date         string                `json:"date" binding:"required"`
	Quantity     int                   `json:"quantity"`
	AnalystID    *string               `json:"analyst_id"`
}

// ========== 工作流配置 ==========

// CreateWorkflowCondition 创建工作流配置条件
type CreateWorkflowCondition struct {
	WorkflowName    string                `json:"workflow_name" binding:"required"`
	WorkflowType    constant.WorkflowType `json:"workflow_type" binding:"required"`
	PrimaryPocID    *string               `json:"primary_poc_id"`
	SecondaryPocID  *string               `json:"secondary_poc_id"`
	TargetMetric    string                `json:"target_metric"`
	MeasurementUnit string                `json:"measurement_unit"`
	MonthlyTarget   string                `json:"monthly_target"`
	Priority        constant.TaskPriority `json:"priority"`
	SlaHours        int                   `json:"sla_hours"`
	QualityRequired bool                  `json:"quality_required"`
}

// UpdateWorkflowCondition 更新工作流配置条件，nil 字段不参与更新
type UpdateWorkflowCondition struct {
	WorkflowName    *string                `json:"workflow_name"`
	WorkflowType    *constant.WorkflowType `json:"workflow_type"`
	PrimaryPocID    *string                `json:"primary_poc_id"`
	SecondaryPocID  *string                `json:"secondary_poc_id"`
	TargetMetric    *string                `json:"target_metric"`
	MeasurementUnit *string                `json:"measurement_unit"`
	MonthlyTarget   *string                `json:"monthly_target"`
	Priority        *constant.TaskPriority `json:"priority"`
	SlaHours        *int                   `json:"sla_hours"`
	QualityRequired *bool                  `json:"quality_required"`
	IsActive        *bool                  `json:"is_active"`
}

// ========== 用户 ==========

// CreateUserCondition 创建用户条件
type CreateUserCondition struct {
	Username string            `json:"username" binding:"required"`
	Email    string            `json:"email" binding:"required"`
	FullName string            `json:"full_name" binding:"required"`
	Role     constant.UserRole `json:"role"`
	IsActive bool              `json:"is_active"`
}

// UpdateUserCondition 更新用户条件，nil 字段不参与更新
type UpdateUserCondition struct {
	Email    *string            `json:"email"`
	FullName *string            `json:"full_name"`
	Role     *constant.UserRole `json:"role"`
	IsActive *bool              `json:"is_active"`
	LastLogin *time.Time        `json:"last_login"`
}
