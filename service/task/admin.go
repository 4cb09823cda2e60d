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

// Delete 删除任务，仅 admin/manager 可用。删除前按任务当前字段反推并
// 回退历史台账效果，回退和删除同一事务提交。
func (s *Service) Delete(ctx context.Context, taskID int64, actor *entity.User) *model.Error {
	if actor == nil || !actor.Role.IsElevated() {
		return model.NewError(model.ErrorNoPermission, fmt.Errorf("delete requires admin or manager role"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "delete task session, task_id=%d", taskID)

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return serviceErr
	}

	currentTask, err := repos.task.Get(taskID)
	if err != nil {
		return model.NewError(model.ErrorDB, err)
	}
	if currentTask == nil {
		return model.NewError(model.ErrorTaskNotFound, fmt.Errorf("task %d not found", taskID))
	}

	if err := session.Begin(); err != nil {
		return model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	if err := coordinator.reverseTaskEffects(currentTask); err != nil {
		_ = session.Rollback()
		return model.NewError(model.ErrorDB, err)
	}

	if err := repos.task.Delete(taskID); err != nil {
		_ = session.Rollback()
		return model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return model.NewError(model.ErrorDB, err)
	}

	log.Infof("task deleted, task_id=%d, actor=%s", taskID, actor.ID)
	return nil
}

// BulkDelete 批量删除，逐个回退台账效果后整批删除，返回删除行数
func (s *Service) BulkDelete(ctx context.Context, condition *model.BulkDeleteCondition, actor *entity.User) (int64, *model.Error) {
	if actor == nil || !actor.Role.IsElevated() {
		return 0, model.NewError(model.ErrorNoPermission, fmt.Errorf("bulk delete requires admin or manager role"))
	}
	if condition == nil || len(condition.TaskIDs) == 0 {
		return 0, model.NewError(model.ErrorEmptyTaskIDs, fmt.Errorf("task_ids is empty"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "bulk delete session, count=%d", len(condition.TaskIDs))

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return 0, serviceErr
	}

	tasks, err := repos.task.ListByIDs(condition.TaskIDs)
	if err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}

	if err := session.Begin(); err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	for _, t := range tasks {
		if err := coordinator.reverseTaskEffects(t); err != nil {
			_ = session.Rollback()
			return 0, model.NewError(model.ErrorDB, err)
		}
	}

	deleted, err := repos.task.DeleteByIDs(condition.TaskIDs)
	if err != nil {
		_ = session.Rollback()
		return 0, model.NewError(model.ErrorDB, err)
	}

	if err := session.Commit(); err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}

	log.Infof("tasks bulk deleted, count=%d, actor=%s", deleted, actor.ID)
	return deleted, nil
}

// BulkAssign 批量分配给指定用户，返回实际分配的任务数。每个命中任务都
// 让目标用户当日 assigned +1，已分配过的任务重新分配照样累加。分配完成
// 后给目标用户插入一条通知。
func (s *Service) BulkAssign(ctx context.Context, condition *model.BulkAssignCondition, actor *entity.User) (int, *model.Error) {
	if actor == nil || !actor.Role.IsElevated() {
		return 0, model.NewError(model.ErrorNoPermission, fmt.Errorf("bulk assign requires admin or manager role"))
	}
	if condition == nil || len(condition.TaskIDs) == 0 {
		return 0, model.NewError(model.ErrorEmptyTaskIDs, fmt.Errorf("task_ids is empty"))
	}
	if condition.UserID == constant.EmptyString {
		return 0, model.NewError(model.ErrorParams, fmt.Errorf("user_id is required"))
	}

	session := s.repositoryFactory.NewSession(ctx)
	defer tools.ErrorWithPrintContext(session.Close, "bulk assign session, count=%d", len(condition.TaskIDs))

	repos, serviceErr := s.newRepos(session)
	if serviceErr != nil {
		return 0, serviceErr
	}

	userRepo, err := s.repositoryFactory.NewUserRepository(session)
	if err != nil {
		return 0, model.NewError(model.ErrorNewRepo, err)
	}
	assignee, err := userRepo.Get(condition.UserID)
	if err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}
	if assignee == nil {
		return 0, model.NewError(model.ErrorUserNotFound, fmt.Errorf("user %s not found", condition.UserID))
	}

	tasks, err := repos.task.ListByIDs(condition.TaskIDs)
	if err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}

	if err := session.Begin(); err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}

	coordinator := newSyncCoordinator(repos)
	now := time.Now()
	assignedCount := 0
	for _, t := range tasks {
		if err := repos.task.UpdateColumns(t.ID, map[string]interface{}{
			entity.TaskFieldAssignedUserID: condition.UserID,
			entity.TaskFieldAssignedAt:     now,
		}); err != nil {
			_ = session.Rollback()
			return 0, model.NewError(model.ErrorDB, err)
		}

		if err := coordinator.applyAssignEffect(condition.UserID, today()); err != nil {
			_ = session.Rollback()
			return 0, model.NewError(model.ErrorDB, err)
		}
		assignedCount++
	}

	if assignedCount > 0 {
		notification := &entity.Notification{
			UserID:  condition.UserID,
			Title:   "New tasks assigned",
			Message: fmt.Sprintf("You have been assigned %d task(s) by %s", assignedCount, actor.FullName),
			Type:    constant.NotificationTypeInfo,
		}
		if err := repos.notification.Insert(notification); err != nil {
			_ = session.Rollback()
			return 0, model.NewError(model.ErrorDB, err)
		}
	}

	if err := session.Commit(); err != nil {
		return 0, model.NewError(model.ErrorDB, err)
	}

	log.Infof("tasks bulk assigned, count=%d, user_id=%s, actor=%s", assignedCount, condition.UserID, actor.ID)
	return assignedCount, nil
}
