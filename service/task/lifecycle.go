package task

import (
	"context"
	"fmt"
	"time"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/pkg/tools"
	log "github.com/sirupsen/logrus"
)

// Create 创建任务。有工作流关联时按 target_qty 登记当日收件量，
// 收件量记在创建时指定的被分配人名下（未分配记 null 行）。
func (s *Service) Create(ctx context.Context, condition *model.CreateTaskCondition, actor *entity.User) (*entity.Task, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if serviceErr := validateCreateCondition(condition); serviceErr != nil {
		return nil, serviceErr
	}

	newTask := &entity.Task{
		TaskType:           condition.TaskType,
		CompanyName:        condition.CompanyName,
		DocumentType:       condition.DocumentType,
		Priority:           condition.Priority,
		Status:             condition.Status,
		Description:        condition.Description,
		Notes:              condition.Notes,
		Source:             condition.Source,
		SlaHours:           condition.SlaHours,
		DueDate:            condition.DueDate,
		TargetQty:          condition.TargetQty,
		AchievedQty:        condition.AchievedQty,
		AssignedUserID:     condition.AssignedUserID,
		WorkflowConfigID:   condition.WorkflowConfigID,
		CustomWorkflowName: condition.CustomWorkflowName,
	}
	if newTask.Priority == constant.EmptyString {
		newTask.Priority = constant.TaskPriorityMedium
	}
	if newTask.Status == constant.EmptyString {
		newTask.Status = constant.TaskStatusPending
	}
	if newTask.TargetQty <= 0 {
		newTask.TargetQty = constant.DefaultTargetQty
	}
	if newTask.SlaHours <= 0 {
		newTask.SlaHours = constant.DefaultSlaHours
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "create task session")

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := repos.task.Insert(newTask); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	if err := coordinator.applyIntakeVolume(newTask, newTask.AssignedUserID, today(), newTask.TargetQty); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	log.Infof("task created, task_id=%d, company=%s, actor=%s", newTask.ID, newTask.CompanyName, actor.ID)
	return newTask, nil
}

// Pick 认领待处理任务：分配给操作者并置为进行中
func (s *Service) Pick(ctx context.Context, taskID int64, actor *entity.User) (*entity.Task, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "pick task session, task_id=%d", taskID)

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	currentTask, err := repos.task.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if currentTask == nil {
		return nil, model.NewError(model.ErrorTaskNotFound, fmt.Errorf("task %d not found", taskID))
	}
	if currentTask.Status != constant.TaskStatusPending {
		return nil, model.NewError(model.ErrorTaskNotPending, fmt.Errorf("task %d status is %s", taskID, currentTask.Status))
	}
	if currentTask.AssignedUserID != nil {
		return nil, model.NewError(model.ErrorTaskNotPending, fmt.Errorf("task %d is already assigned to %s", taskID, *currentTask.AssignedUserID))
	}

	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	now := time.Now()
	if err := repos.task.UpdateColumns(taskID, map[string]interface{}{
		entity.TaskFieldStatus:         constant.TaskStatusInProgress,
		entity.TaskFieldAssignedUserID: actor.ID,
		entity.TaskFieldAssignedAt:     now,
		entity.TaskFieldPickedAt:       now,
	}); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	if err := coordinator.applyPickEffects(actor.ID, today()); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	currentTask.Status = constant.TaskStatusInProgress
	currentTask.AssignedUserID = &actor.ID
	currentTask.AssignedAt = &now
	currentTask.PickedAt = &now
	return currentTask, nil
}

// Unpick 取消认领：任务回到待处理并清空分配。绩效扣的是操作者当日的
// in_progress 行，跨天或代操作时口径会偏，保留不修正。
func (s *Service) Unpick(ctx context.Context, taskID int64, actor *entity.User) (*entity.Task, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "unpick task session, task_id=%d", taskID)

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	currentTask, err := repos.task.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if currentTask == nil {
		return nil, model.NewError(model.ErrorTaskNotFound, fmt.Errorf("task %d not found", taskID))
	}
	if !isOwnerOrElevated(currentTask, actor) {
		return nil, model.NewError(model.ErrorNotTaskOwner, fmt.Errorf("task %d is not assigned to user %s", taskID, actor.ID))
	}
	if currentTask.Status != constant.TaskStatusInProgress {
		return nil, model.NewError(model.ErrorTaskNotInProgress, fmt.Errorf("task %d status is %s", taskID, currentTask.Status))
	}

	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := repos.task.UpdateColumns(taskID, map[string]interface{}{
		entity.TaskFieldStatus:         constant.TaskStatusPending,
		entity.TaskFieldAssignedUserID: nil,
		entity.TaskFieldAssignedAt:     nil,
		entity.TaskFieldPickedAt:       nil,
	}); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	if err := coordinator.applyUnpickEffects(actor.ID, today()); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	currentTask.Status = constant.TaskStatusPending
	currentTask.AssignedUserID = nil
	currentTask.AssignedAt = nil
	currentTask.PickedAt = nil
	return currentTask, nil
}

// Complete 完成任务并登记成果量。绩效和产出量都记在操作者名下，
// manager 代完成时量会归到 manager。
func (s *Service) Complete(ctx context.Context, taskID int64, condition *model.CompleteTaskCondition, actor *entity.User) (*entity.Task, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if condition == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("complete condition is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "complete task session, task_id=%d", taskID)

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	currentTask, err := repos.task.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if currentTask == nil {
		return nil, model.NewError(model.ErrorTaskNotFound, fmt.Errorf("task %d not found", taskID))
	}
	if !isOwnerOrElevated(currentTask, actor) {
		return nil, model.NewError(model.ErrorNotTaskOwner, fmt.Errorf("task %d is not assigned to user %s", taskID, actor.ID))
	}
	if currentTask.Status == constant.TaskStatusCompleted {
		return nil, model.NewError(model.ErrorTaskCompleted, fmt.Errorf("task %d is already completed", taskID))
	}

	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	now := time.Now()
	if err := repos.task.UpdateColumns(taskID, map[string]interface{}{
		entity.TaskFieldStatus:      constant.TaskStatusCompleted,
		entity.TaskFieldAchievedQty: condition.AchievedQty,
		entity.TaskFieldRemarks:     condition.Remarks,
		entity.TaskFieldCompletedAt: now,
	}); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	currentTask.Status = constant.TaskStatusCompleted
	currentTask.AchievedQty = condition.AchievedQty
	currentTask.Remarks = condition.Remarks
	currentTask.CompletedAt = &now

	coordinator := newSyncCoordinator(repos)
	if err := coordinator.applyCompleteEffects(currentTask, actor.ID, today()); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	log.Infof("task completed, task_id=%d, achieved_qty=%d, actor=%s", taskID, condition.AchievedQty, actor.ID)
	return currentTask, nil
}

// Update 部分更新任务字段。已完成任务仅 admin/manager 可编辑；
// 状态被改成已完成时触发一次完成台账同步（记在操作者名下）。
func (s *Service) Update(ctx context.Context, taskID int64, condition *model.UpdateTaskCondition, actor *entity.User) (*entity.Task, *model.Error) {
	if actor == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("actor is required"))
	}
	if condition == nil {
		return nil, model.NewError(model.ErrorParams, fmt.Errorf("update condition is required"))
	}
	if condition.Status != nil && !condition.Status.IsValid() {
		return nil, model.NewError(model.ErrorInvalidStatus, fmt.Errorf("invalid status: %s", *condition.Status))
	}
	if condition.Priority != nil && !condition.Priority.IsValid() {
		return nil, model.NewError(model.ErrorInvalidPriority, fmt.Errorf("invalid priority: %s", *condition.Priority))
	}
	if condition.TaskType != nil && !condition.TaskType.IsValid() {
		return nil, model.NewError(model.ErrorInvalidTaskType, fmt.Errorf("invalid task_type: %s", *condition.TaskType))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "update task session, task_id=%d", taskID)

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return nil, serviceErr
	}

	currentTask, err := repos.task.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	if currentTask == nil {
		return nil, model.NewError(model.ErrorTaskNotFound, fmt.Errorf("task %d not found", taskID))
	}
	if currentTask.Status == constant.TaskStatusCompleted && !actor.Role.IsElevated() {
		return nil, model.NewError(model.ErrorCompletedTaskLocked, fmt.Errorf("completed task %d can only be edited by admin/manager", taskID))
	}

	oldStatus := currentTask.Status
	newStatus := oldStatus
	if condition.Status != nil {
		newStatus = *condition.Status
	}
	becameCompleted := oldStatus != constant.TaskStatusCompleted && newStatus == constant.TaskStatusCompleted

	if err := session.Begin(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	if err := repos.task.Update(taskID, condition); err != nil {
		_ = session.Rollback()
		return nil, model.NewError(model.ErrorDB, err)
	}

	if becameCompleted {
		if err := repos.task.UpdateColumns(taskID, map[string]interface{}{
			entity.TaskFieldCompletedAt: time.Now(),
		}); err != nil {
			_ = session.Rollback()
			return nil, model.NewError(model.ErrorDB, err)
		}

		// 用更新后的字段值计算台账增量
		effectTask := *currentTask
		if condition.AchievedQty != nil {
			effectTask.AchievedQty = *condition.AchievedQty
		}
		if condition.WorkflowConfigID != nil {
			effectTask.WorkflowConfigID = condition.WorkflowConfigID
		}

		coordinator := newSyncCoordinator(repos)
		if err := coordinator.applyCompleteEffects(&effectTask, actor.ID, today()); err != nil {
			_ = session.Rollback()
			return nil, model.NewError(model.ErrorDB, err)
		}
	}

	if err := session.Commit(); err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}

	updatedTask, err := repos.task.Get(taskID)
	if err != nil {
		return nil, model.NewError(model.ErrorDB, err)
	}
	return updatedTask, nil
}

// isOwnerOrElevated 被分配人本人或 admin/manager
func isOwnerOrElevated(t *entity.Task, actor *entity.User) bool {
	if actor.Role.IsElevated() {
		return true
	}
	return t.AssignedUserID != nil && *t.AssignedUserID == actor.ID
}
