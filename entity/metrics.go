package entity

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 用户绩效表 ==========
//
// (user_id, metric_date) 唯一。计数行在首次写入时惰性创建，
// 日期统一使用 "2006-01-02" 字符串键。

const (
	TableNameUserPerformance = "user_performance"

	UserPerformanceFieldID              = "performance_id"
	UserPerformanceFieldUserID          = "user_id"
	UserPerformanceFieldMetricDate      = "metric_date"
	UserPerformanceFieldTasksAssigned   = "tasks_assigned"
	UserPerformanceFieldTasksInProgress = "tasks_in_progress"
	UserPerformanceFieldTasksCompleted  = "tasks_completed"
	UserPerformanceFieldCreatedAt       = "created_at"
)

// UserPerformance 用户每日绩效计数实体
type UserPerformance struct {
	ID              int64     `xorm:"pk autoincr 'performance_id'" json:"performance_id"`
	UserID          string    `xorm:"varchar(64) unique(uq_user_date) 'user_id'" json:"user_id"`
	MetricDate      string    `xorm:"varchar(16) unique(uq_user_date) 'metric_date'" json:"metric_date"`
	TasksAssigned   int       `xorm:"int 'tasks_assigned'" json:"tasks_assigned"`
	TasksInProgress int       `xorm:"int 'tasks_in_progress'" json:"tasks_in_progress"`
	TasksCompleted  int       `xorm:"int 'tasks_completed'" json:"tasks_completed"`
	CreatedAt       time.Time `xorm:"created 'created_at'" json:"created_at"`
}

func (e *UserPerformance) TableName() string {
	return TableNameUserPerformance
}

// ========== 工作流每日量表 ==========
//
// (workflow_type, date, analyst_id) 唯一，analyst_id 可为 NULL。
// 唯一索引需要 NULLS NOT DISTINCT（Postgres 15+），否则 NULL 分析师
// 的行不会触发冲突合并。

const (
	TableNameWorkflowDailyVolume = "workflow_daily_volumes"

	WorkflowDailyVolumeFieldID           = "volume_id"
	WorkflowDailyVolumeFieldWorkflowType = "workflow_type"
	WorkflowDailyVolumeFieldDate         = "date"
	WorkflowDailyVolumeFieldQuantity     = "quantity"
	WorkflowDailyVolumeFieldAnalystID    = "analyst_id"
	WorkflowDailyVolumeFieldRecordedAt   = "recorded_at"
)

// WorkflowDailyVolume 工作流每日量计数实体
type WorkflowDailyVolume struct {
	ID           int64                 `xorm:"pk autoincr 'volume_id'" json:"volume_id"`
	WorkflowType constant.WorkflowType `xorm:"varchar(32) 'workflow_type'" json:"workflow_type"`
	Date         string                `xorm:"varchar(16) 'date'" json:"date"`
	Quantity     int                   `xorm:"int 'quantity'" json:"quantity"`
	AnalystID    *string               `xorm:"varchar(64) 'analyst_id'" json:"analyst_id"`
	RecordedAt   time.Time             `xorm:"created 'recorded_at'" json:"recorded_at"`
}

func (e *WorkflowDailyVolume) TableName() string {
	return TableNameWorkflowDailyVolume
}
