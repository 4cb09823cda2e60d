package xormimplement

import (
	"fmt"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository"
	"xorm.io/builder"
)

// ========== TaskRepository 实现 ==========

type TaskRepository struct {
	session *Session
}

func NewTaskRepository(session *Session) repository.TaskRepository {
	return &TaskRepository{session: session}
}

func (r *TaskRepository) Insert(task *entity.Task) error {
	if task == nil {
		return fmt.Errorf("task cannot be nil")
	}

	_, err := r.session.Table(entity.TableNameTask).Insert(task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

func (r *TaskRepository) Get(taskID int64) (*entity.Task, error) {
	if taskID <= 0 {
		return nil, fmt.Errorf("task_id is required")
	}

	result := &entity.Task{}
	ok, err := r.session.Table(entity.TableNameTask).
		Where(builder.Eq{entity.TaskFieldID: taskID}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	if !ok {
		return nil, nil
	}

	return result, nil
}

func (r *TaskRepository) ListByIDs(taskIDs []int64) ([]*entity.Task, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}

	var results []*entity.Task
	err := r.session.Table(entity.TableNameTask).
		In(entity.TaskFieldID, taskIDs).
		Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks by ids: %w", err)
	}

	return results, nil
}

func (r *TaskRepository) Query(condition *model.TaskQueryCondition) ([]*entity.Task, int64, error) {
	if condition == nil {
		condition = &model.TaskQueryCondition{}
	}

	// 构建查询条件
	var conds []builder.Cond
	if condition.Status != nil && *condition.Status != "" {
		conds = append(conds, builder.Eq{entity.TaskFieldStatus: condition.Status.String()})
	}
	if condition.AssignedUserID != nil && *condition.AssignedUserID != "" {
		conds = append(conds, builder.Eq{entity.TaskFieldAssignedUserID: *condition.AssignedUserID})
	}
	if condition.WorkflowConfigID != nil {
		conds = append(conds, builder.Eq{entity.TaskFieldWorkflowConfigID: *condition.WorkflowConfigID})
	}
	if condition.Keyword != nil && *condition.Keyword != "" {
		conds = append(conds, builder.Like{entity.TaskFieldCompanyName, *condition.Keyword})
	}
	if condition.StartDate != nil {
		conds = append(conds, builder.Gte{entity.TaskFieldCreatedAt: *condition.StartDate})
	}
	if condition.EndDate != nil {
		conds = append(conds, builder.Lte{entity.TaskFieldCreatedAt: *condition.EndDate})
	}

	whereCond := builder.NewCond()
	if len(conds) > 0 {
		whereCond = builder.And(conds...)
	}

	// 计算总数
	total, err := r.session.Table(entity.TableNameTask).Where(whereCond).Count(&entity.Task{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	// 查询数据
	session := r.session.Table(entity.TableNameTask).Where(whereCond)
	pagerOrder(session, condition, WithDefaultOrderField(entity.TaskFieldCreatedAt))

	var results []*entity.Task
	err = session.Find(&results)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tasks: %w", err)
	}

	return results, total, nil
}

func (r *TaskRepository) ListAll() ([]*entity.Task, error) {
	var results []*entity.Task
	err := r.session.Table(entity.TableNameTask).
		Desc(entity.TaskFieldCreatedAt).
		Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return results, nil
}

func (r *TaskRepository) Update(taskID int64, req *model.UpdateTaskCondition) error {
	if req == nil {
		return fmt.Errorf("update request cannot be nil")
	}
	if taskID <= 0 {
		return fmt.Errorf("task_id is required")
	}

	updateData := make(map[string]interface{})
	if req.TaskType != nil {
		updateData[entity.TaskFieldTaskType] = req.TaskType.String()
	}
	if req.CompanyName != nil {
		updateData[entity.TaskFieldCompanyName] = *req.CompanyName
	}
	if req.DocumentType != nil {
		updateData[entity.TaskFieldDocumentType] = *req.DocumentType
	}
	if req.Priority != nil {
		updateData[entity.TaskFieldPriority] = req.Priority.String()
	}
	if req.Status != nil {
		updateData[entity.TaskFieldStatus] = req.Status.String()
	}
	if req.Description != nil {
		updateData[entity.TaskFieldDescription] = *req.Description
	}
	if req.Notes != nil {
		updateData[entity.TaskFieldNotes] = *req.Notes
	}
	if req.SlaHours != nil {
		updateData[entity.TaskFieldSlaHours] = *req.SlaHours
	}
	if req.DueDate != nil {
		updateData[entity.TaskFieldDueDate] = *req.DueDate
	}
	if req.TargetQty != nil {
		updateData[entity.TaskFieldTargetQty] = *req.TargetQty
	}
	if req.AchievedQty != nil {
		updateData[entity.TaskFieldAchievedQty] = *req.AchievedQty
	}
	if req.Rating != nil {
		updateData[entity.TaskFieldRating] = *req.Rating
	}
	if req.Remarks != nil {
		updateData[entity.TaskFieldRemarks] = *req.Remarks
	}
	if req.AssignedUserID != nil {
		updateData[entity.TaskFieldAssignedUserID] = *req.AssignedUserID
	}
	if req.WorkflowConfigID != nil {
		updateData[entity.TaskFieldWorkflowConfigID] = *req.WorkflowConfigID
	}
	if req.CustomWorkflowName != nil {
		updateData[entity.TaskFieldCustomWorkflowName] = *req.CustomWorkflowName
	}

	if len(updateData) == 0 {
		return nil
	}

	return r.UpdateColumns(taskID, updateData)
}

func (r *TaskRepository) UpdateColumns(taskID int64, data map[string]interface{}) error {
	if taskID <= 0 {
		return fmt.Errorf("task_id is required")
	}
	if len(data) == 0 {
		return nil
	}

	_, err := r.session.Table(entity.TableNameTask).
		Where(builder.Eq{entity.TaskFieldID: taskID}).
		Update(data)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return nil
}

func (r *TaskRepository) Delete(taskID int64) error {
	if taskID <= 0 {
		return fmt.Errorf("task_id is required")
	}

	_, err := r.session.Table(entity.TableNameTask).
		Where(builder.Eq{entity.TaskFieldID: taskID}).
		Delete(&entity.Task{})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

func (r *TaskRepository) DeleteByIDs(taskIDs []int64) (int64, error) {
	if len(taskIDs) == 0 {
		return 0, nil
	}

	affected, err := r.session.Table(entity.TableNameTask).
		In(entity.TaskFieldID, taskIDs).
		Delete(&entity.Task{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete tasks: %w", err)
	}

	return affected, nil
}

func (r *TaskRepository) CountActive() (int64, error) {
	count, err := r.session.Table(entity.TableNameTask).
		In(entity.TaskFieldStatus, []string{
			constant.TaskStatusPending.String(),
			constant.TaskStatusInProgress.String(),
		}).
		Count(&entity.Task{})
	if err != nil {
		return 0, fmt.Errorf("failed to count active tasks: %w", err)
	}

	return count, nil
}

func (r *TaskRepository) CountByStatus() (map[string]int64, error) {
	type statusCount struct {
		Status string `xorm:"'status'"`
		Count  int64  `xorm:"'count'"`
	}

	var rows []statusCount
	err := r.session.Table(entity.TableNameTask).
		Select("status, count(*) as count").
		GroupBy(entity.TaskFieldStatus).
		Find(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks by status: %w", err)
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Status] = row.Count
	}

	return result, nil
}
