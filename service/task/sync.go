package task

import (
	"fmt"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/repository"
	prjtime "github.com/chelaniparth/arms11/pkg/time"
	log "github.com/sirupsen/logrus"
)

// syncCoordinator 任务台账同步器：把任务生命周期变更翻译成绩效/每日量两本
// 台账的增减。正向操作（创建/认领/完成等）在调用点就知道方向，直接累加；
// 删除没有历史流水可查，只能从任务当前字段反推曾经发生过的效果并逐项回退，
// 字段在删除前被改写过时回退口径会失真，截断到 0 兜底。
type syncCoordinator struct {
	performanceRepo repository.PerformanceRepository
	volumeRepo      repository.VolumeRepository
	workflowRepo    repository.WorkflowConfigRepository
}

func newSyncCoordinator(repos *taskRepos) *syncCoordinator {
	return &syncCoordinator{
		performanceRepo: repos.performance,
		volumeRepo:      repos.volume,
		workflowRepo:    repos.workflow,
	}
}

// resolveWorkflowType 反查工作流类型，配置不存在时返回 false（不报错，台账静默跳过）
func (c *syncCoordinator) resolveWorkflowType(configID int64) (constant.WorkflowType, bool, error) {
	config, err := c.workflowRepo.Get(configID)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve workflow config %d: %w", configID, err)
	}
	if config == nil {
		log.Warnf("workflow config %d not found, skip volume sync", configID)
		return "", false, nil
	}
	return config.WorkflowType, true, nil
}

// applyIntakeVolume 创建/导入任务时登记收件量
func (c *syncCoordinator) applyIntakeVolume(task *entity.Task, analystID *string, date string, qty int) error {
	if task.WorkflowConfigID == nil {
		return nil
	}

	workflowType, ok, err := c.resolveWorkflowType(*task.WorkflowConfigID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if qty <= 0 {
		qty = 1
	}
	return c.volumeRepo.Increment(workflowType, date, analystID, qty)
}

// applyPickEffects 认领任务：操作者当日 in_progress +1
func (c *syncCoordinator) applyPickEffects(actorID, date string) error {
	return c.performanceRepo.IncrementInProgress(actorID, date)
}

// applyUnpickEffects 取消认领：操作者当日 in_progress -1。
// 按当日而非原认领日扣减，跨天取消会扣错日期的行，口径保留不修正。
func (c *syncCoordinator) applyUnpickEffects(actorID, date string) error {
	return c.performanceRepo.DecrementInProgress(actorID, date)
}

// applyCompleteEffects 完成任务：操作者当日 in_progress -1、completed +1，
// 有工作流关联时按 achieved_qty（为 0 取 1）登记产出量。产出量记在操作者
// 名下，操作者与被分配人不同时（manager 代完成）量会记到操作者头上。
func (c *syncCoordinator) applyCompleteEffects(task *entity.Task, actorID, date string) error {
	if err := c.performanceRepo.DecrementInProgress(actorID, date); err != nil {
		return err
	}
	if err := c.performanceRepo.IncrementCompleted(actorID, date); err != nil {
		return err
	}

	if task.WorkflowConfigID == nil {
		return nil
	}

	workflowType, ok, err := c.resolveWorkflowType(*task.WorkflowConfigID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	qty := task.AchievedQty
	if qty <= 0 {
		qty = 1
	}
	return c.volumeRepo.Increment(workflowType, date, &actorID, qty)
}

// applyAssignEffect 批量分配：目标用户当日 assigned +1，不管任务先前是否已分配
func (c *syncCoordinator) applyAssignEffect(userID, date string) error {
	return c.performanceRepo.IncrementAssigned(userID, date)
}

// reverseTaskEffects 删除任务前的补偿回退。没有流水可回放，只能按任务当前
// 字段逐项反推：
//   - assigned_at 有值：按 assigned_at 当日回退 assigned
//   - 已完成且 completed_at 有值：按 completed_at 当日回退 completed，
//     有工作流关联时同步回退产出量（收件量无反推依据，不回退）
//   - 进行中且 picked_at 有值：按 picked_at 当日回退 in_progress
//
// 未分配的任务没有可回退的绩效效果，直接返回。字段被改写过（如完成后又改
// 派）时回退目标会算错，属已知口径问题，靠截断到 0 兜底。
func (c *syncCoordinator) reverseTaskEffects(task *entity.Task) error {
	if task.AssignedUserID == nil {
		return nil
	}
	userID := *task.AssignedUserID

	if task.AssignedAt != nil {
		date := task.AssignedAt.Format(prjtime.TimeFormatCommonStyleDay)
		if err := c.performanceRepo.DecrementAssigned(userID, date); err != nil {
			return err
		}
	}

	if task.Status == constant.TaskStatusCompleted && task.CompletedAt != nil {
		date := task.CompletedAt.Format(prjtime.TimeFormatCommonStyleDay)
		if err := c.performanceRepo.DecrementCompleted(userID, date); err != nil {
			return err
		}

		if task.WorkflowConfigID != nil {
			workflowType, ok, err := c.resolveWorkflowType(*task.WorkflowConfigID)
			if err != nil {
				return err
			}
			if ok {
				qty := task.AchievedQty
				if qty <= 0 {
					qty = 1
				}
				if err := c.volumeRepo.Decrement(workflowType, date, task.AssignedUserID, qty); err != nil {
					return err
				}
			}
		}
	}

	if task.Status == constant.TaskStatusInProgress && task.PickedAt != nil {
		date := task.PickedAt.Format(prjtime.TimeFormatCommonStyleDay)
		if err := c.performanceRepo.DecrementInProgress(userID, date); err != nil {
			return err
		}
	}

	return nil
}
