package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	prjtime "github.com/chelaniparth/arms11/pkg/time"
	"github.com/chelaniparth/arms11/pkg/tools"
	"github.com/chelaniparth/arms11/repository/factory"
	log "github.com/sirupsen/logrus"
)

// Service 工作流配置与每日量服务
type Service struct {
	repositoryFactory factory.Factory
}

func NewService(repositoryFactory factory.Factory) (*Service, error) {
	if repositoryFactory == nil {
		return nil, fmt.Errorf("repository factory is required")
	}
	return &Service{repositoryFactory: repositoryFactory}, nil
}

// Create 创建工作流配置，名称全局唯一
func (s *Service) Create(ctx context.Context, condition *model.CreateWorkflowCondition, actor *entity.User) (*entity.WorkflowConfig, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if condition == nil || condition.WorkflowName == constant.EmptyString {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("workflow_name is required"))
	}
	if !condition.WorkflowType.IsValid() {
		return nil, model.NewError(model.ErrorInvalidWorkflow, fmt.Errorf("invalid workflow_type: %s", condition.WorkflowType))
	}
	if condition.Priority != constant.EmptyString && !condition.Priority.IsValid() {
		return nil, model.NewError(model.ErrorInvalidPriority, fmt.Errorf("invalid priority: %s", condition.Priority))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "create workflow session")

	workflowRepo, err := s.repositoryFactory.NewWorkflowConfigRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	existing, err := workflowRepo.GetByName(condition.WorkflowName)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if existing != nil {
		return nil, model.NewError(model.ErrorWorkflowNameExists, fmt.Errorf("workflow name %s already exists", condition.WorkflowName))
	}

	config := &entity.WorkflowConfig{
		WorkflowName:    condition.WorkflowName,
		WorkflowType:    condition.WorkflowType,
		PrimaryPocID:    condition.PrimaryPocID,
		SecondaryPocID:  condition.SecondaryPocID,
		TargetMetric:    condition.TargetMetric,
		MeasurementUnit: condition.MeasurementUnit,
		MonthlyTarget:   condition.MonthlyTarget,
		Priority:        condition.Priority,
		SlaHours:        condition.SlaHours,
		QualityRequired: condition.QualityRequired,
		IsActive:        true,
		CreatedBy:       &actor.ID,
	}
	if config.Priority == constant.EmptyString {
		config.Priority = constant.TaskPriorityMedium
	}
	if config.SlaHours <= 0 {
		config.SlaHours = constant.DefaultSlaHours
	}

	if err := workflowRepo.Insert(config); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	log.Infof("workflow config created, config_id=%d, name=%s, actor=%s", config.ID, config.WorkflowName, actor.ID)
	return config, nil
}

// Get 获取单个工作流配置
func (s *Service) Get(ctx context.Context, configID int64) (*entity.WorkflowConfig, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "get workflow session, config_id=%d", configID)

	workflowRepo, err := s.repositoryFactory.NewWorkflowConfigRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	config, err := workflowRepo.Get(configID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if config == nil {
		return nil, model.NewError(model.ErrorWorkflowNotFound, fmt.Errorf("workflow config %d not found", configID))
	}
	return config, nil
}

// List 列出工作流配置
func (s *Service) List(ctx context.Context, pager *model.Pager) ([]*entity.WorkflowConfig, *model.Error) {
	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list workflows session")

	workflowRepo, err := s.repositoryFactory.NewWorkflowConfigRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	configs, err := workflowRepo.List(pager)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return configs, nil
}

// Update 更新工作流配置
func (s *Service) Update(ctx context.Context, configID int64, condition *model.UpdateWorkflowCondition, actor *entity.User) (*entity.WorkflowConfig, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if condition == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("update condition is required"))
	}
	if condition.WorkflowType != nil && !condition.WorkflowType.IsValid() {
		return nil, model.NewError(model.ErrorInvalidWorkflow, fmt.Errorf("invalid workflow_type: %s", *condition.WorkflowType))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "update workflow session, config_id=%d", configID)

	workflowRepo, err := s.repositoryFactory.NewWorkflowConfigRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	config, err := workflowRepo.Get(configID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if config == nil {
		return nil, model.NewError(model.ErrorWorkflowNotFound, fmt.Errorf("workflow config %d not found", configID))
	}

	if condition.WorkflowName != nil && *condition.WorkflowName != config.WorkflowName {
		existing, err := workflowRepo.GetByName(*condition.WorkflowName)
		if err != nil {
			return nil, model.NewError(model.ErrorDB, err)
		}
		if existing != nil {
			return nil, model.NewError(model.ErrorWorkflowNameExists, fmt.Errorf("workflow name %s already exists", *condition.WorkflowName))
		}
	}

	if err := workflowRepo.Update(configID, condition); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	updated, err := workflowRepo.Get(configID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return updated, nil
}

// Delete 删除工作流配置，仅 admin 可用。不级联处理存量任务的
// workflow_config_id，关联失效后台账同步按无配置静默跳过。
func (s *Service) Delete(ctx context.Context, configID int64, actor *entity.User) *model.Error {
	if actor == nil || actor.Role != constant.UserRoleAdmin {
		return model.NewError(model.ErrorNoPermission, fmt.Errorf("delete workflow requires admin role"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "delete workflow session, config_id=%d", configID)

	workflowRepo, err := s.repositoryFactory.NewWorkflowConfigRepository(session)
	if err != nil {
		return model.NewError(model.ErrorNewRepo, err)
	}

	config, err := workflowRepo.Get(configID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if config == nil {
		return model.NewError(model.ErrorWorkflowNotFound, fmt.Errorf("workflow config %d not found", configID))
	}

	if err := workflowRepo.Delete(configID); err != nil {
		return model.NewError(model.ErrorDB, err)
	}

	log.Infof("workflow config deleted, config_id=%d, actor=%s", configID, actor.ID)
	return nil
}

// RecordVolume 手工登记每日量，直接覆盖对应键的 quantity（不累加）。
// analyst_id 缺省登记到操作人本人，analyst 角色只能给自己登记。
func (s *Service) RecordVolume(ctx context.Context, condition *model.RecordVolumeCondition, actor *entity.User) (*entity.WorkflowDailyVolume, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if condition == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("record condition is required"))
	}
	analystID := condition.AnalystID
	if analystID == nil {
		analystID = &actor.ID
	}
	if !actor.Role.IsElevated() && *analystID != actor.ID {
		return nil, model.NewError(model.ErrorNoPermission, fmt.Errorf("analysts can only record their own volume"))
	}
	if !condition.WorkflowType.IsValid() {
		return nil, model.NewError(model.ErrorInvalidWorkflow, fmt.Errorf("invalid workflow_type: %s", condition.WorkflowType))
	}
	if condition.Quantity < 0 {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("quantity must be >= 0"))
	}
	if _, err := time.Parse(prjtime.TimeFormatCommonStyleDay, condition.Date); err != nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("invalid date %s: %w", condition.Date, err))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "record volume session")

	volumeRepo, err := s.repositoryFactory.NewVolumeRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	record, err := volumeRepo.Set(condition.WorkflowType, condition.Date, analystID, condition.Quantity)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	log.Infof("workflow volume recorded, type=%s, date=%s, qty=%d, actor=%s", condition.WorkflowType, condition.Date, condition.Quantity, actor.ID)
	return record, nil
}

// ListVolumes 按条件列出每日量
func (s *Service) ListVolumes(ctx context.Context, condition *model.VolumeListCondition) ([]*entity.WorkflowDailyVolume, *model.Error) {
	if condition == nil {
		condition = &model.VolumeListCondition{}
	}
	if condition.WorkflowType != nil && !condition.WorkflowType.IsValid() {
		return nil, model.NewError(model.ErrorInvalidWorkflow, fmt.Errorf("invalid workflow_type: %s", *condition.WorkflowType))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "list volumes session")

	volumeRepo, err := s.repositoryFactory.NewVolumeRepository(session)
	if err != nil {
		return nil, model.NewError(model.ErrorNewRepo, err)
	}

	volumes, err := volumeRepo.List(condition)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return volumes, nil
}
