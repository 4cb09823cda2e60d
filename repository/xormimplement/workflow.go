package xormimplement

import (
	"fmt"

	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository"
	"xorm.io/builder"
)

// ========== WorkflowConfigRepository 实现 ==========

type WorkflowConfigRepository struct {
	session *Session
}

func NewWorkflowConfigRepository(session *Session) repository.WorkflowConfigRepository {
	return &WorkflowConfigRepository{session: session}
}

func (r *WorkflowConfigRepository) Insert(config *entity.WorkflowConfig) error {
	if config == nil {
		return fmt.Errorf("workflow config cannot be nil")
	}

	_, err := r.session.Table(entity.TableNameWorkflowConfig).Insert(config)
	if err != nil {
		return fmt.Errorf("failed to insert workflow config: %w", err)
	}

	return nil
}

func (r *WorkflowConfigRepository) Get(configID int64) (*entity.WorkflowConfig, error) {
	if configID <= 0 {
		return nil, fmt.Errorf("config_id is required")
	}

	result := &entity.WorkflowConfig{}
	ok, err := r.session.Table(entity.TableNameWorkflowConfig).
		Where(builder.Eq{entity.WorkflowConfigFieldID: configID}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow config: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *WorkflowConfigRepository) GetByName(name string) (*entity.WorkflowConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("workflow_name is required")
	}

	result := &entity.WorkflowConfig{}
	ok, err := r.session.Table(entity.TableNameWorkflowConfig).
		Where(builder.Eq{entity.WorkflowConfigFieldWorkflowName: name}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow config by name: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *WorkflowConfigRepository) List(pager *model.Pager) ([]*entity.WorkflowConfig, error) {
	session := r.session.Table(entity.TableNameWorkflowConfig)
	if pager != nil && pager.Limit > 0 {
		session = session.Limit(pager.Limit, pager.Offset)
	}

	var results []*entity.WorkflowConfig
	err := session.Asc(entity.WorkflowConfigFieldID).Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow configs: %w", err)
	}

	return results, nil
}

func (r *WorkflowConfigRepository) Update(configID int64, req *model.UpdateWorkflowCondition) error {
	if req == nil {
		return fmt.Errorf("update request cannot be nil")
	}
	if configID <= 0 {
		return fmt.Errorf("config_id is required")
	}

	updateData := make(map[string]interface{})
	if req.WorkflowName != nil {
		updateData[entity.WorkflowConfigFieldWorkflowName] = *req.WorkflowName
	}
	if req.WorkflowType != nil {
		updateData[entity.WorkflowConfigFieldWorkflowType] = req.WorkflowType.String()
	}
	if req.PrimaryPocID != nil {
		updateData[entity.WorkflowConfigFieldPrimaryPocID] = *req.PrimaryPocID
	}
	if req.SecondaryPocID != nil {
		updateData[entity.WorkflowConfigFieldSecondaryPocID] = *req.SecondaryPocID
	}
	if req.TargetMetric != nil {
		updateData[entity.WorkflowConfigFieldTargetMetric] = *req.TargetMetric
	}
	if req.MeasurementUnit != nil {
		updateData[entity.WorkflowConfigFieldMeasurementUnit] = *req.MeasurementUnit
	}
	if req.MonthlyTarget != nil {
		updateData[entity.WorkflowConfigFieldMonthlyTarget] = *req.MonthlyTarget
	}
	if req.Priority != nil {
		updateData[entity.WorkflowConfigFieldPriority] = req.Priority.String()
	}
	if req.SlaHours != nil {
		updateData[entity.WorkflowConfigFieldSlaHours] = *req.SlaHours
	}
	if req.QualityRequired != nil {
		updateData[entity.WorkflowConfigFieldQualityRequired] = *req.QualityRequired
	}
	if req.IsActive != nil {
		updateData[entity.WorkflowConfigFieldIsActive] = *req.IsActive
	}

	if len(updateData) == 0 {
		return nil
	}

	_, err := r.session.Table(entity.TableNameWorkflowConfig).
		Where(builder.Eq{entity.WorkflowConfigFieldID: configID}).
		Update(updateData)
	if err != nil {
		return fmt.Errorf("failed to update workflow config: %w", err)
	}

	return nil
}

func (r *WorkflowConfigRepository) Delete(configID int64) error {
	if configID <= 0 {
		return fmt.Errorf("config_id is required")
	}

	_, err := r.session.Table(entity.TableNameWorkflowConfig).
		Where(builder.Eq{entity.WorkflowConfigFieldID: configID}).
		Delete(&entity.WorkflowConfig{})
	if err != nil {
		return fmt.Errorf("failed to delete workflow config: %w", err)
	}

	return nil
}
