package xormimplement

import (
	"fmt"
	"time"

	"github.com/chelaniparth/arms11/constant"
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository"
	"xorm.io/builder"
)

// ========== VolumeRepository 实现 ==========

// 同 user_performance：增减在数据库侧原子完成。analyst_id 可为 NULL，
// 唯一索引必须声明 NULLS NOT DISTINCT，否则 NULL 分析师的行每次都会
// 走 INSERT 分支而不是合并累加。
const upsertVolumeSQL = `
INSERT INTO workflow_daily_volumes (workflow_type, date, analyst_id, quantity, recorded_at)
VALUES ($1, $2, $3, GREATEST($4, 0), now())
ON CONFLICT (workflow_type, date, analyst_id) DO UPDATE SET
	quantity = GREATEST(workflow_daily_volumes.quantity + $4, 0)`

type VolumeRepository struct {
	session *Session
}

func NewVolumeRepository(session *Session) repository.VolumeRepository {
	return &VolumeRepository{session: session}
}

func (r *VolumeRepository) add(workflowType constant.WorkflowType, date string, analystID *string, qty int) error {
	if workflowType == "" {
		return fmt.Errorf("workflow_type is required")
	}
	if date == "" {
		return fmt.Errorf("date is required")
	}

	_, err := r.session.Exec(upsertVolumeSQL, workflowType.String(), date, analystID, qty)
	if err != nil {
		return fmt.Errorf("failed to upsert workflow_daily_volumes: %w", err)
	}

	return nil
}

func (r *VolumeRepository) Increment(workflowType constant.WorkflowType, date string, analystID *string, qty int) error {
	return r.add(workflowType, date, analystID, qty)
}

func (r *VolumeRepository) Decrement(workflowType constant.WorkflowType, date string, analystID *string, qty int) error {
	return r.add(workflowType, date, analystID, -qty)
}

func (r *VolumeRepository) keyCond(workflowType constant.WorkflowType, date string, analystID *string) builder.Cond {
	cond := builder.And(
		builder.Eq{entity.WorkflowDailyVolumeFieldWorkflowType: workflowType.String()},
		builder.Eq{entity.WorkflowDailyVolumeFieldDate: date},
	)
	if analystID == nil {
		return cond.And(builder.IsNull{entity.WorkflowDailyVolumeFieldAnalystID})
	}
	return cond.And(builder.Eq{entity.WorkflowDailyVolumeFieldAnalystID: *analystID})
}

func (r *VolumeRepository) Get(workflowType constant.WorkflowType, date string, analystID *string) (*entity.WorkflowDailyVolume, error) {
	if workflowType == "" {
		return nil, fmt.Errorf("workflow_type is required")
	}
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}

	result := &entity.WorkflowDailyVolume{}
	ok, err := r.session.Table(entity.TableNameWorkflowDailyVolume).
		Where(r.keyCond(workflowType, date, analystID)).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow_daily_volume: %w", err)
	}

	// 行不存在返回零值记录，不建行
	if !ok {
		return &entity.WorkflowDailyVolume{
			WorkflowType: workflowType,
			Date:         date,
			AnalystID:    analystID,
		}, nil
	}

	return result, nil
}

func (r *VolumeRepository) Set(workflowType constant.WorkflowType, date string, analystID *string, qty int) (*entity.WorkflowDailyVolume, error) {
	if workflowType == "" {
		return nil, fmt.Errorf("workflow_type is required")
	}
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if qty < 0 {
		qty = 0
	}

	existing := &entity.WorkflowDailyVolume{}
	ok, err := r.session.Table(entity.TableNameWorkflowDailyVolume).
		Where(r.keyCond(workflowType, date, analystID)).
		Get(existing)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing workflow_daily_volume: %w", err)
	}

	if ok {
		// 手工登记直接覆盖 quantity
		_, err = r.session.Table(entity.TableNameWorkflowDailyVolume).
			Where(builder.Eq{entity.WorkflowDailyVolumeFieldID: existing.ID}).
			Update(map[string]interface{}{
				entity.WorkflowDailyVolumeFieldQuantity:   qty,
				entity.WorkflowDailyVolumeFieldRecordedAt: time.Now(),
			})
		if err != nil {
			return nil, fmt.Errorf("failed to update workflow_daily_volume: %w", err)
		}
		existing.Quantity = qty
		return existing, nil
	}

	newVolume := &entity.WorkflowDailyVolume{
		WorkflowType: workflowType,
		Date:         date,
		Quantity:     qty,
		AnalystID:    analystID,
	}
	_, err = r.session.Table(entity.TableNameWorkflowDailyVolume).Insert(newVolume)
	if err != nil {
		return nil, fmt.Errorf("failed to insert workflow_daily_volume: %w", err)
	}

	return newVolume, nil
}

func (r *VolumeRepository) List(condition *model.VolumeListCondition) ([]*entity.WorkflowDailyVolume, error) {
	session := r.session.Table(entity.TableNameWorkflowDailyVolume)

	var conds []builder.Cond
	if condition != nil {
		if condition.Date != nil && *condition.Date != "" {
			conds = append(conds, builder.Eq{entity.WorkflowDailyVolumeFieldDate: *condition.Date})
		}
		if condition.WorkflowType != nil && *condition.WorkflowType != "" {
			conds = append(conds, builder.Eq{entity.WorkflowDailyVolumeFieldWorkflowType: condition.WorkflowType.String()})
		}
		if condition.AnalystID != nil && *condition.AnalystID != "" {
			conds = append(conds, builder.Eq{entity.WorkflowDailyVolumeFieldAnalystID: *condition.AnalystID})
		}
	}

	if len(conds) > 0 {
		session = session.Where(builder.And(conds...))
	}
	if condition != nil && condition.Limit > 0 {
		session = session.Limit(condition.Limit, 0)
	}

	var results []*entity.WorkflowDailyVolume
	err := session.Desc(entity.WorkflowDailyVolumeFieldDate).Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflow_daily_volumes: %w", err)
	}

	return results, nil
}
