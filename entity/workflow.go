package entity

import (
	"time"

	"github.com/chelaniparth/arms11/constant"
)

// ========== 工作流配置表 ==========

const (
	TableNameWorkflowConfig = "workflow_configs"

	WorkflowConfigFieldID              = "config_id"
	WorkflowConfigFieldWorkflowName    = "workflow_name"
	WorkflowConfigFieldWorkflowType    = "workflow_type"
	WorkflowConfigFieldPrimaryPocID    = "primary_poc_id"
	WorkflowConfigFieldSecondaryPocID  = "secondary_poc_id"
	WorkflowConfigFieldTargetMetric    = "target_metric"
	WorkflowConfigFieldMeasurementUnit = "measurement_unit"
	WorkflowConfigFieldMonthlyTarget   = "monthly_target"
	WorkflowConfigFieldPriority        = "priority"
	WorkflowConfigFieldSlaHours        = "sla_hours"
	WorkflowConfigFieldQualityRequired = "quality_required"
	WorkflowConfigFieldIsActive        = "is_active"
	WorkflowConfigFieldCreatedAt       = "created_at"
	WorkflowConfigFieldUpdatedAt       = "updated_at"
	WorkflowConfigFieldCreatedBy       = "created_by"
)

// WorkflowConfig 工作流配置数据库实体
type WorkflowConfig struct {
	ID              int64                 `xorm:"pk autoincr 'config_id'" json:"config_id"`
	WorkflowName    string                `xorm:"varchar(255) unique 'workflow_name'" json:"workflow_name"`
	WorkflowType    constant.WorkflowType `xorm:"varchar(32) 'workflow_type'" json:"workflow_type"`
	PrimaryPocID    *string               `xorm:"varchar(64) 'primary_poc_id'" json:"primary_poc_id"`
	SecondaryPocID  *string               `xorm:"varchar(64) 'secondary_poc_id'" json:"secondary_poc_id"`
	TargetMetric    string                `xorm:"varchar(100) 'target_metric'" json:"target_metric"`
	MeasurementUnit string                `xorm:"varchar(100) 'measurement_unit'" json:"measurement_unit"`
	MonthlyTarget   string                `xorm:"varchar(100) 'monthly_target'" json:"monthly_target"`
	Priority        constant.TaskPriority `xorm:"varchar(16) 'priority'" json:"priority"`
	SlaHours        int                   `xorm:"int 'sla_hours'" json:"sla_hours"`
	QualityRequired bool                  `xorm:"bool 'quality_required'" json:"quality_required"`
	IsActive        bool                  `xorm:"bool 'is_active'" json:"is_active"`
	CreatedAt       time.Time             `xorm:"created 'created_at'" json:"created_at"`
	UpdatedAt       time.Time             `xorm:"updated 'updated_at'" json:"updated_at"`
	CreatedBy       *string               `xorm:"varchar(64) 'created_by'" json:"created_by"`
}

func (e *WorkflowConfig) TableName() string {
	return TableNameWorkflowConfig
}
