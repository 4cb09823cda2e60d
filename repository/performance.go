package repository

import (
	"github.com/chelaniparth/arms11/entity"
	"github.com/chelaniparth/arms11/model"
)

// PerformanceRepository 用户每日绩效计数仓库接口。
//
// 所有增减操作在存储层以原子 upsert-and-add 实现并在首次写入时惰性建行；
// 每次调用恰好 ±1，重复调用效果叠加。减操作下限截断为 0。
type PerformanceRepository interface {
	IncrementAssigned(userID, date string) error
	DecrementAssigned(userID, date string) error
	IncrementInProgress(userID, date string) error
	DecrementInProgress(userID, date string) error
	IncrementCompleted(userID, date string) error
	// DecrementCompleted 仅用于删除任务时的补偿回退
	DecrementCompleted(userID, date string) error
	// Get 只读查询，行不存在时返回零值记录，不建行
	Get(userID, date string) (*entity.UserPerformance, error)
	// TopPerformers 指定日期完成数 TopN
	TopPerformers(date string, limit int) ([]*model.TopPerformer, error)
}
