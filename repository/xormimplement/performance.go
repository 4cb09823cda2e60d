package xormimplement

import (
	"fmt"

	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
	"github.com/chelaniparth/arms11/repository"
	"xorm.io/builder"
)

// ========== PerformanceRepository 实现 ==========

// 计数增减统一走一条原子 upsert-and-add 语句：行不存在则插入，存在则
// 在数据库侧累加，避免应用层读-改-写在并发下丢更新。GREATEST 兜底
// 保证计数不为负（减到 0 为止，不报错）。
const upsertPerformanceSQL = `
INSERT INTO user_performance (user_id, metric_date, tasks_assigned, tasks_in_progress, tasks_completed, created_at)
VALUES ($1, $2, GREATEST($3, 0), GREATEST($4, 0), GREATEST($5, 0), now())
ON CONFLICT (user_id, metric_date) DO UPDATE SET
	tasks_assigned    = GREATEST(user_performance.tasks_assigned + $3, 0),
	tasks_in_progress = GREATEST(user_performance.tasks_in_progress + $4, 0),
	tasks_completed   = GREATEST(user_performance.tasks_completed + $5, 0)`

const topPerformersSQL = `
SELECT p.user_id, u.full_name AS name, p.tasks_completed AS completed
FROM user_performance p
JOIN users u ON u.id = p.user_id
WHERE p.metric_date = $1
ORDER BY p.tasks_completed DESC
LIMIT $2`

type PerformanceRepository struct {
	session *Session
}

func NewPerformanceRepository(session *Session) repository.PerformanceRepository {
	return &PerformanceRepository{session: session}
}

func (r *PerformanceRepository) add(userID, date string, dAssigned, dInProgress, dCompleted int) error {
	if userID == "" {
		return fmt.Errorf("user_id is required")
	}
	if date == "" {
		return fmt.Errorf("date is required")
	}

	_, err := r.session.Exec(upsertPerformanceSQL, userID, date, dAssigned, dInProgress, dCompleted)
	if err != nil {
		return fmt.Errorf("failed to upsert user_performance: %w", err)
	}

	return nil
}

func (r *PerformanceRepository) IncrementAssigned(userID, date string) error {
	return r.add(userID, date, 1, 0, 0)
}

func (r *PerformanceRepository) DecrementAssigned(userID, date string) error {
	return r.add(userID, date, -1, 0, 0)
}

func (r *PerformanceRepository) IncrementInProgress(userID, date string) error {
	return r.add(userID, date, 0, 1, 0)
}

func (r *PerformanceRepository) DecrementInProgress(userID, date string) error {
	return r.add(userID, date, 0, -1, 0)
}

func (r *PerformanceRepository) IncrementCompleted(userID, date string) error {
	return r.add(userID, date, 0, 0, 1)
}

func (r *PerformanceRepository) DecrementCompleted(userID, date string) error {
	return r.add(userID, date, 0, 0, -1)
}

func (r *PerformanceRepository) Get(userID, date string) (*entity.UserPerformance, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}

	result := &entity.UserPerformance{}
	ok, err := r.session.Table(entity.TableNameUserPerformance).
		Where(builder.Eq{
			entity.UserPerformanceFieldUserID:     userID,
			entity.UserPerformanceFieldMetricDate: date,
		}).
		Get(result)
	if err != nil {
		return nil, fmt.Errorf("failed to get user_performance: %w", err)
	}

	// 行不存在返回零值记录，不建行
	if !ok {
		return &entity.UserPerformance{UserID: userID, MetricDate: date}, nil
	}

	return result, nil
}

func (r *PerformanceRepository) TopPerformers(date string, limit int) ([]*model.TopPerformer, error) {
	if date == "" {
		return nil, fmt.Errorf("date is required")
	}
	if limit <= 0 {
		return nil, nil
	}

	var results []*model.TopPerformer
	err := r.session.SQL(topPerformersSQL, date, limit).Find(&results)
	if err != nil {
		return nil, fmt.Errorf("failed to query top performers: %w", err)
	}

	return results, nil
}
